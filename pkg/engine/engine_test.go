package engine

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/jwebster45206/ringtrail/pkg/encounter"
	"github.com/jwebster45206/ringtrail/pkg/journey"
	"github.com/jwebster45206/ringtrail/pkg/state"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	data, err := os.ReadFile("../../data/journey.json")
	if err != nil {
		t.Fatalf("failed to read journey content: %v", err)
	}
	var j journey.Journey
	if err := json.Unmarshal(data, &j); err != nil {
		t.Fatalf("failed to parse journey content: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(&j, encounter.DefaultCatalog(&j), encounter.DefaultTowns(), logger)
}

// newTestRun creates a Baggins run with a fixed seed so roll sequences are
// reproducible across test executions.
func newTestRun(t *testing.T, e *Engine, debug DebugFlags) *state.GameState {
	t.Helper()
	gs, _, err := e.NewRun("Baggins", "", debug)
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}
	gs.Seed = 1
	return gs
}

// startTraveling dismisses the opening prompt so the run is on the road.
func startTraveling(t *testing.T, e *Engine, gs *state.GameState) {
	t.Helper()
	if gs.Pending == nil {
		t.Fatal("expected the opening prompt to be pending")
	}
	if _, err := e.ResolveChoice(gs, 0); err != nil {
		t.Fatalf("failed to dismiss opening prompt: %v", err)
	}
	if gs.Mode != state.ModeTraveling {
		t.Fatalf("expected traveling after the opening prompt, got %s", gs.Mode)
	}
}

func TestNewRun_Defaults(t *testing.T) {
	e := newTestEngine(t)
	gs, res, err := e.NewRun("Baggins", "", DebugFlags{})
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}

	if gs.ElapsedHours != 11 {
		t.Errorf("expected start at hour 11, got %.1f", gs.ElapsedHours)
	}
	if gs.TargetDistance != 1000 {
		t.Errorf("expected target 1000, got %.0f", gs.TargetDistance)
	}
	if gs.Resources.Food != 100 || gs.Resources.Supplies != 50 || gs.Resources.Gold != 100 {
		t.Errorf("unexpected Baggins preset: %+v", gs.Resources)
	}
	if len(gs.Roster) != 4 {
		t.Fatalf("expected 4 hobbits, got %d", len(gs.Roster))
	}
	for _, m := range gs.Roster {
		if m.Species != state.SpeciesHobbit || m.Health != state.MaxHealth {
			t.Errorf("unexpected starting member: %+v", m)
		}
	}
	if gs.Location != "shire" || !gs.DiscoveredStops["shire"] {
		t.Errorf("expected run to start at shire, got %q", gs.Location)
	}

	// The opening story prompt is presented immediately.
	if gs.Pending == nil || gs.Pending.EncounterID != "the_journey_begins" {
		t.Fatalf("expected opening prompt, got %+v", gs.Pending)
	}
	if gs.Mode != state.ModeEvent {
		t.Errorf("expected event mode, got %s", gs.Mode)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != EventEncounter {
		t.Errorf("expected a single encounter event, got %+v", res.Events)
	}
}

func TestNewRun_UnknownProfession(t *testing.T) {
	e := newTestEngine(t)
	_, _, err := e.NewRun("Sackville", "", DebugFlags{})
	if !errors.Is(err, ErrUnknownProfession) {
		t.Errorf("expected ErrUnknownProfession, got %v", err)
	}
}

func TestNewRun_UnknownStart(t *testing.T) {
	e := newTestEngine(t)
	_, _, err := e.NewRun("Baggins", "isengard", DebugFlags{})
	if !errors.Is(err, ErrUnknownStart) {
		t.Errorf("expected ErrUnknownStart, got %v", err)
	}
}

func TestNewRun_FastForwardStart(t *testing.T) {
	e := newTestEngine(t)
	gs, _, err := e.NewRun("Took", "lothlorien", DebugFlags{})
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}

	if gs.Location != "lothlorien" {
		t.Errorf("expected location lothlorien, got %q", gs.Location)
	}
	if gs.DistanceTraveled != 550 {
		t.Errorf("expected distance 550, got %.0f", gs.DistanceTraveled)
	}
	if gs.Pending != nil {
		t.Error("fast-forward starts must not present the opening prompt")
	}

	// Story beats up to Lothlórien are replayed: Strider was recruited at
	// Bree, renamed and joined by the Fellowship at Rivendell, and Gandalf
	// fell in Moria.
	if gs.FindMember("Strider") != nil {
		t.Error("Strider should have been renamed by the Rivendell replay")
	}
	aragorn := gs.FindMember("Aragorn")
	if aragorn == nil || !aragorn.Alive() {
		t.Error("expected a living Aragorn after the replay")
	}
	gandalf := gs.FindMember("Gandalf")
	if gandalf == nil || gandalf.Alive() {
		t.Error("expected Gandalf present but fallen after the Moria replay")
	}
	if !gs.Flags[state.FlagCouncilComplete] || !gs.Flags[state.FlagStingAndMithril] {
		t.Error("expected Rivendell story flags set by the replay")
	}
	if gs.Counters[state.CounterRivendellPhase] != 3 {
		t.Errorf("expected rivendell phase 3, got %d", gs.Counters[state.CounterRivendellPhase])
	}
	if !gs.DiscoveredStops["moria"] || !gs.DiscoveredStops["shire"] {
		t.Errorf("expected replayed stops discovered, got %v", gs.DiscoveredStops)
	}
}

func TestRun_DeterministicReplay(t *testing.T) {
	e := newTestEngine(t)

	type sample struct {
		Elapsed  float64
		Distance float64
		Food     float64
		Morale   float64
		OpCount  uint64
		Mode     state.Mode
		Pending  string
	}
	play := func(gs *state.GameState) []sample {
		var out []sample
		for i := 0; i < 12; i++ {
			if gs.Pending != nil {
				if _, err := e.ResolveChoice(gs, 0); err != nil {
					t.Fatalf("choice %d failed: %v", i, err)
				}
			} else if gs.Mode == state.ModeTraveling {
				if _, err := e.Tick(gs); err != nil {
					t.Fatalf("tick %d failed: %v", i, err)
				}
			} else if _, err := e.StartTravel(gs); err != nil {
				t.Fatalf("start %d failed: %v", i, err)
			}
			pending := ""
			if gs.Pending != nil {
				pending = gs.Pending.EncounterID
			}
			out = append(out, sample{
				Elapsed:  gs.ElapsedHours,
				Distance: gs.DistanceTraveled,
				Food:     gs.Resources.Food,
				Morale:   gs.Morale,
				OpCount:  gs.OpCount,
				Mode:     gs.Mode,
				Pending:  pending,
			})
			if gs.IsOver {
				break
			}
		}
		return out
	}

	gs := newTestRun(t, e, DebugFlags{})
	snapshot, err := json.Marshal(gs)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	first := play(gs)

	var restored state.GameState
	if err := json.Unmarshal(snapshot, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	second := play(&restored)

	if len(first) != len(second) {
		t.Fatalf("replay length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("step %d diverged:\n  live:     %+v\n  restored: %+v", i, first[i], second[i])
		}
	}
}

func TestFailedOperation_DoesNotConsumeRollStep(t *testing.T) {
	e := newTestEngine(t)
	gs := newTestRun(t, e, DebugFlags{})
	before := gs.OpCount

	// A pending prompt rejects travel without touching the roll sequence.
	if _, err := e.StartTravel(gs); !errors.Is(err, ErrPendingChoice) {
		t.Fatalf("expected ErrPendingChoice, got %v", err)
	}
	if _, err := e.PerformCampAction(gs, CampForage); !errors.Is(err, ErrPendingChoice) {
		t.Fatalf("expected ErrPendingChoice, got %v", err)
	}
	if _, err := e.ResolveChoice(gs, 99); !errors.Is(err, ErrStaleOption) {
		t.Fatalf("expected ErrStaleOption, got %v", err)
	}

	if gs.OpCount != before {
		t.Errorf("failed operations must not consume roll steps: %d -> %d", before, gs.OpCount)
	}
}
