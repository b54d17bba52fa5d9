package engine

import (
	"errors"
	"testing"

	"github.com/jwebster45206/ringtrail/pkg/state"
)

// campRun puts a fresh run into camp mode via nightfall.
func campRun(t *testing.T, e *Engine) *state.GameState {
	t.Helper()
	gs := newTestRun(t, e, DebugFlags{StoryOnly: true})
	startTraveling(t, e, gs)
	gs.ElapsedHours = 23
	if _, err := e.Tick(gs); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if gs.Mode != state.ModeCamp {
		t.Fatalf("expected camp mode, got %s", gs.Mode)
	}
	return gs
}

func TestCampAction_Rest(t *testing.T) {
	e := newTestEngine(t)
	gs := campRun(t, e)
	gs.Morale = 60
	for _, m := range gs.Roster {
		m.Health = 70
	}

	res, err := e.PerformCampAction(gs, CampRest)
	if err != nil {
		t.Fatalf("rest failed: %v", err)
	}

	if gs.ElapsedHours != 47 {
		t.Errorf("expected a full day of rest, got hour %.1f", gs.ElapsedHours)
	}
	for _, m := range gs.Roster {
		if m.Health != 95 {
			t.Errorf("expected %s healed to 95, got %.1f", m.Name, m.Health)
		}
	}
	if gs.Morale != 75 {
		t.Errorf("expected morale 75, got %.1f", gs.Morale)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != EventCamp {
		t.Errorf("expected a camp event, got %+v", res.Events)
	}
}

func TestCampAction_Forage(t *testing.T) {
	e := newTestEngine(t)
	gs := campRun(t, e)
	foodBefore := gs.Resources.Food
	hoursBefore := gs.ElapsedHours

	if _, err := e.PerformCampAction(gs, CampForage); err != nil {
		t.Fatalf("forage failed: %v", err)
	}

	if gs.ElapsedHours != hoursBefore+6 {
		t.Errorf("expected 6 hours foraging, got %.1f", gs.ElapsedHours-hoursBefore)
	}
	// Six hours of consumption (1.5) against a find of 8-12.
	gained := gs.Resources.Food - foodBefore
	if gained < 6.5 || gained > 10.5 {
		t.Errorf("expected a net food gain of 6.5-10.5, got %.2f", gained)
	}
}

func TestCampAction_HuntOutcomes(t *testing.T) {
	e := newTestEngine(t)
	gs := campRun(t, e)
	foodBefore := gs.Resources.Food
	healthBefore := gs.FindMember("Sam").Health

	if _, err := e.PerformCampAction(gs, CampHunt); err != nil {
		t.Fatalf("hunt failed: %v", err)
	}

	// Whatever the roll, exactly one of the three hunt outcomes applies.
	gained := gs.Resources.Food - foodBefore + 1 // one hour-equivalent of decay over 4h
	injured := gs.FindMember("Sam").Health < healthBefore
	switch {
	case injured:
		if gained > 0 {
			t.Errorf("an injured party must not also gain food, got %.2f", gained)
		}
	case gained > 0:
		if gained < 19 || gained > 40 {
			t.Errorf("expected a kill worth 20-39 food, got %.2f", gained)
		}
	default:
		// Found nothing. Only time passed.
	}
	if gs.ElapsedHours != 27 {
		t.Errorf("expected 4 hours hunting, got hour %.1f", gs.ElapsedHours)
	}
}

func TestCampAction_AthelasRequiresLeaves(t *testing.T) {
	e := newTestEngine(t)
	gs := campRun(t, e)

	if _, err := e.PerformCampAction(gs, CampAthelas); !errors.Is(err, ErrActionUnavailable) {
		t.Fatalf("expected ErrActionUnavailable without athelas, got %v", err)
	}

	gs.Inventory["athelas"] = 1
	gs.FindMember("Frodo").Health = 40
	if _, err := e.PerformCampAction(gs, CampAthelas); err != nil {
		t.Fatalf("athelas failed: %v", err)
	}

	if gs.Inventory["athelas"] != 0 {
		t.Errorf("expected the leaves consumed, got %d", gs.Inventory["athelas"])
	}
	if gs.FindMember("Frodo").Health != 70 {
		t.Errorf("expected the weakest member healed to 70, got %.1f", gs.FindMember("Frodo").Health)
	}
}

func TestCampAction_UnknownKind(t *testing.T) {
	e := newTestEngine(t)
	gs := campRun(t, e)

	before := gs.OpCount
	if _, err := e.PerformCampAction(gs, "whittle"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if gs.OpCount != before {
		t.Error("a rejected kind must not consume a roll step")
	}
}

func TestCampAction_WrongMode(t *testing.T) {
	e := newTestEngine(t)
	gs := newTestRun(t, e, DebugFlags{StoryOnly: true})
	startTraveling(t, e, gs)

	if _, err := e.PerformCampAction(gs, CampRest); !errors.Is(err, ErrWrongMode) {
		t.Errorf("expected ErrWrongMode while traveling, got %v", err)
	}
}

func TestMakeCamp_FromPausedTravel(t *testing.T) {
	e := newTestEngine(t)
	gs := newTestRun(t, e, DebugFlags{StoryOnly: true})
	startTraveling(t, e, gs)
	if _, err := e.Tick(gs); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if _, err := e.StopTravel(gs); err != nil {
		t.Fatalf("stop failed: %v", err)
	}

	opsBefore := gs.OpCount
	hoursBefore := gs.ElapsedHours
	res, err := e.MakeCamp(gs)
	if err != nil {
		t.Fatalf("make camp failed: %v", err)
	}
	if gs.Mode != state.ModeCamp {
		t.Fatalf("expected camp mode, got %s", gs.Mode)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != EventCamp {
		t.Errorf("expected a camp event, got %+v", res.Events)
	}
	// Pitching camp passes no time and consumes no roll step.
	if gs.OpCount != opsBefore || gs.ElapsedHours != hoursBefore {
		t.Errorf("expected the transition free, got ops %d->%d hours %.1f->%.1f",
			opsBefore, gs.OpCount, hoursBefore, gs.ElapsedHours)
	}

	// Camp activities are available mid-day, well before nightfall.
	if _, err := e.PerformCampAction(gs, CampForage); err != nil {
		t.Fatalf("forage failed: %v", err)
	}
}

func TestMakeCamp_ModeGuards(t *testing.T) {
	e := newTestEngine(t)
	gs := newTestRun(t, e, DebugFlags{StoryOnly: true})

	// The opening prompt blocks camping.
	if _, err := e.MakeCamp(gs); !errors.Is(err, ErrPendingChoice) {
		t.Errorf("expected ErrPendingChoice, got %v", err)
	}

	startTraveling(t, e, gs)
	if _, err := e.MakeCamp(gs); !errors.Is(err, ErrWrongMode) {
		t.Errorf("expected ErrWrongMode while traveling, got %v", err)
	}

	if _, err := e.StopTravel(gs); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if _, err := e.MakeCamp(gs); err != nil {
		t.Fatalf("make camp failed: %v", err)
	}
	// Camping while camped is a no-op.
	if res, err := e.MakeCamp(gs); err != nil || len(res.Events) != 0 {
		t.Errorf("expected an idempotent no-op, got %+v, %v", res, err)
	}
}

func TestBreakCamp_ResumesTravel(t *testing.T) {
	e := newTestEngine(t)
	gs := campRun(t, e)

	if _, err := e.StartTravel(gs); err != nil {
		t.Fatalf("break camp failed: %v", err)
	}
	if gs.Mode != state.ModeTraveling {
		t.Errorf("expected traveling, got %s", gs.Mode)
	}
	// 23:00 waits out the night to the 11:00 departure.
	if gs.ElapsedHours != 35 {
		t.Errorf("expected hour 35, got %.1f", gs.ElapsedHours)
	}
}
