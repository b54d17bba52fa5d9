package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/jwebster45206/ringtrail/pkg/state"
)

// arriveAt drives a traveling run onto the landmark 5 distance ahead.
func arriveAt(t *testing.T, e *Engine, gs *state.GameState, from string, distance float64) {
	t.Helper()
	gs.MarkVisited(from)
	gs.Mode = state.ModeTraveling
	gs.DistanceTraveled = distance
	if _, err := e.Tick(gs); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
}

func TestResolveChoice_NoPending(t *testing.T) {
	e := newTestEngine(t)
	gs := newTestRun(t, e, DebugFlags{})
	startTraveling(t, e, gs)

	if _, err := e.ResolveChoice(gs, 0); !errors.Is(err, ErrNoPendingChoice) {
		t.Errorf("expected ErrNoPendingChoice, got %v", err)
	}
}

func TestResolveChoice_StaleLabelLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t)
	gs := newTestRun(t, e, DebugFlags{StoryOnly: true})
	startTraveling(t, e, gs)
	arriveAt(t, e, gs, "bree", 145)

	if gs.Pending == nil {
		t.Fatal("expected the weathertop prompt")
	}
	gs.Pending.Options[0] = "not a real option"
	before := gs.OpCount

	_, err := e.ResolveChoice(gs, 0)
	if !errors.Is(err, ErrStaleOption) {
		t.Fatalf("expected ErrStaleOption, got %v", err)
	}
	if gs.Pending == nil {
		t.Error("a stale selection must leave the prompt pending")
	}
	if gs.OpCount != before {
		t.Error("a stale selection must not consume a roll step")
	}
}

func TestWeathertop_ResistWoundsFrodo(t *testing.T) {
	e := newTestEngine(t)
	gs := newTestRun(t, e, DebugFlags{StoryOnly: true})
	startTraveling(t, e, gs)
	arriveAt(t, e, gs, "bree", 145)

	if gs.Pending == nil || gs.Pending.EncounterID != "weathertop" {
		t.Fatalf("expected the weathertop prompt, got %+v", gs.Pending)
	}

	healthBefore := gs.FindMember("Frodo").Health
	if _, err := e.ResolveChoice(gs, 0); err != nil {
		t.Fatalf("choice failed: %v", err)
	}

	lost := healthBefore - gs.FindMember("Frodo").Health
	if lost < 15 || lost > 34 {
		t.Errorf("expected a Morgul wound of 15-34, got %.0f", lost)
	}
	if gs.Morale != 70 {
		t.Errorf("expected morale 70, got %.0f", gs.Morale)
	}

	// The narrative resolves onto a continue screen; dismissing it resumes
	// the paused travel view.
	if gs.Pending == nil || !gs.Pending.Continue {
		t.Fatalf("expected a continue screen, got %+v", gs.Pending)
	}
	if _, err := e.ResolveChoice(gs, 0); err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	if gs.Mode != state.ModePaused || gs.Pending != nil {
		t.Errorf("expected paused travel view, got mode %s pending %+v", gs.Mode, gs.Pending)
	}
}

func TestCaradhras_TurnBackReroutesThroughMoria(t *testing.T) {
	e := newTestEngine(t)
	gs := newTestRun(t, e, DebugFlags{StoryOnly: true})
	startTraveling(t, e, gs)
	arriveAt(t, e, gs, "rivendell", 295)

	if gs.Pending == nil || gs.Pending.EncounterID != "caradhras_pass" {
		t.Fatalf("expected the caradhras prompt, got %+v", gs.Pending)
	}

	// Option 1 is the voluntary retreat into Moria.
	idx := -1
	for i, label := range gs.Pending.Options {
		if strings.Contains(label, "Moria") {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("no Moria option in %v", gs.Pending.Options)
	}
	if _, err := e.ResolveChoice(gs, idx); err != nil {
		t.Fatalf("choice failed: %v", err)
	}

	if gs.Location != "moria" {
		t.Errorf("expected reroute to moria, got %q", gs.Location)
	}
	for _, key := range gs.PathTaken {
		if key == "caradhras_pass" {
			t.Errorf("the failed pass must be removed from the path: %v", gs.PathTaken)
		}
	}

	// The retreat narrative chains into the West-gate puzzle.
	if gs.Pending == nil || !gs.Pending.Continue {
		t.Fatalf("expected a continue screen, got %+v", gs.Pending)
	}
	if _, err := e.ResolveChoice(gs, 0); err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	if gs.Pending == nil || gs.Pending.EncounterID != "west_gate_of_moria" {
		t.Fatalf("expected the west-gate puzzle, got %+v", gs.Pending)
	}
}

func TestWestGate_CorrectWordOpensMoria(t *testing.T) {
	e := newTestEngine(t)
	gs := newTestRun(t, e, DebugFlags{StoryOnly: true})
	startTraveling(t, e, gs)
	arriveAt(t, e, gs, "rivendell", 295)

	// Retreat from the pass and dismiss the retreat narrative.
	if _, err := e.ResolveChoice(gs, 1); err != nil {
		t.Fatalf("retreat failed: %v", err)
	}
	if _, err := e.ResolveChoice(gs, 0); err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}

	idx := -1
	for i, label := range gs.Pending.Options {
		if strings.Contains(label, "Mellon") {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("no Mellon option in %v", gs.Pending.Options)
	}
	if _, err := e.ResolveChoice(gs, idx); err != nil {
		t.Fatalf("puzzle answer failed: %v", err)
	}

	if gs.Counters[state.CounterMoriaPhase] != 1 {
		t.Errorf("expected moria phase 1, got %d", gs.Counters[state.CounterMoriaPhase])
	}
	if gs.Pending == nil || !gs.Pending.Continue || gs.Pending.Followup == nil || gs.Pending.Followup.Town != "moria" {
		t.Fatalf("expected a continue screen into moria, got %+v", gs.Pending)
	}
	if _, err := e.ResolveChoice(gs, 0); err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	if gs.Mode != state.ModeTown {
		t.Errorf("expected town mode inside moria, got %s", gs.Mode)
	}
}

func TestAmonHen_BreaksTheFellowship(t *testing.T) {
	e := newTestEngine(t)
	gs, _, err := e.NewRun("Baggins", "anduin", DebugFlags{StoryOnly: true})
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	gs.Seed = 1

	arriveAt(t, e, gs, "anduin", 695)
	if gs.Pending == nil || gs.Pending.EncounterID != "amonhen" {
		t.Fatalf("expected the amon hen prompt, got %+v", gs.Pending)
	}
	if _, err := e.ResolveChoice(gs, 0); err != nil {
		t.Fatalf("choice failed: %v", err)
	}

	// Only the five who continue the quest remain on the roster.
	if len(gs.Roster) != 5 {
		t.Fatalf("expected 5 remaining members, got %d", len(gs.Roster))
	}
	for _, name := range []string{"Merry", "Pippin", "Boromir", "Gandalf"} {
		if gs.FindMember(name) != nil {
			t.Errorf("%s should have left the roster", name)
		}
	}
	for _, name := range []string{"Frodo", "Sam", "Aragorn", "Legolas", "Gimli"} {
		if gs.FindMember(name) == nil {
			t.Errorf("%s should remain on the roster", name)
		}
	}
}

func TestMountDoom_Victory(t *testing.T) {
	e := newTestEngine(t)
	gs, _, err := e.NewRun("Baggins", "cirithungol", DebugFlags{StoryOnly: true})
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	gs.Seed = 1

	arriveAt(t, e, gs, "cirithungol", 995)

	if !gs.IsOver {
		t.Fatal("expected the run to end at Mount Doom")
	}
	if gs.Ending == nil || !gs.Ending.Victory {
		t.Fatalf("expected a victory ending, got %+v", gs.Ending)
	}
}
