package engine

import (
	"fmt"
	"math"

	"github.com/jwebster45206/ringtrail/pkg/encounter"
	"github.com/jwebster45206/ringtrail/pkg/journey"
	"github.com/jwebster45206/ringtrail/pkg/state"
)

// travelWindowStart is the hour of day departures happen. Starting travel
// outside 11:00-23:00 first waits for the next morning.
const travelWindowStart = 11.0

// StartTravel switches the run into traveling mode. Idempotent: starting
// while already traveling is a no-op. Waiting for the travel window
// advances time normally, so the wait can itself end the run.
func (e *Engine) StartTravel(gs *state.GameState) (*Result, error) {
	if gs.IsOver {
		return nil, state.ErrGameOver
	}
	if gs.Pending != nil {
		return nil, ErrPendingChoice
	}
	switch gs.Mode {
	case state.ModeTraveling:
		return &Result{}, nil
	case state.ModePaused, state.ModeCamp:
	default:
		return nil, ErrWrongMode
	}

	op := e.begin(gs)
	op.resumeTravel()
	return op.finish(), nil
}

// StopTravel pauses a traveling run. Safe to call redundantly, including
// after the run has ended.
func (e *Engine) StopTravel(gs *state.GameState) (*Result, error) {
	if gs.Mode != state.ModeTraveling {
		return &Result{}, nil
	}
	op := e.begin(gs)
	gs.Mode = state.ModePaused
	op.emit(Event{Kind: EventTravel, Location: gs.Location})
	return op.finish(), nil
}

// Tick advances one simulated travel hour: forced nightfall, then
// distance and health decay, then the arrival check, then the random
// encounter roll. Arrival always beats the encounter roll within a tick.
// A tick in any other mode is a no-op so redundant tick sources are
// harmless.
func (e *Engine) Tick(gs *state.GameState) (*Result, error) {
	if gs.IsOver {
		return nil, state.ErrGameOver
	}
	if gs.Mode != state.ModeTraveling {
		return &Result{}, nil
	}

	op := e.begin(gs)

	if gs.TimeOfDay() >= 23 {
		gs.Mode = state.ModeCamp
		op.emit(Event{
			Kind:  EventCamp,
			Title: "The Day's Journey is Over",
			Text:  "Darkness has fallen. You make camp and rest.",
		})
		if gs.AutoCamp {
			op.resumeTravel()
		}
		return op.finish(), nil
	}

	rate := hourlyDistance
	if gs.QuickTravel {
		rate *= 12
	}
	gs.DistanceTraveled += rate
	for _, m := range gs.LivingMembers() {
		m.Damage(dailyHealthLoss / 12)
	}

	if next := e.journey.NextOf(gs.Location); next != nil && gs.DistanceTraveled >= next.Distance {
		op.arrive(next)
		return op.finish(), nil
	}

	if !gs.StoryOnly && op.rng.Float64() < encountersPerDay(gs.DistanceTraveled/gs.TargetDistance)/12 {
		eligible := e.catalog.TravelEligible(gs)
		if enc := encounter.PickWeighted(op.rng, eligible); enc != nil {
			op.present(enc, "")
			return op.finish(), nil
		}
	}

	op.advanceTime(1)
	return op.finish(), nil
}

// encountersPerDay is the triangular frequency curve over route progress:
// ramping 1 to 3 over the first half, easing 3 back to 2 over the second.
func encountersPerDay(progress float64) float64 {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	if progress < 0.5 {
		return 1 + (progress/0.5)*2
	}
	return 3 - (progress-0.5)/0.5
}

// resumeTravel waits out the travel window if needed and starts moving.
func (op *opCtx) resumeTravel() {
	gs := op.gs
	tod := gs.TimeOfDay()
	if tod >= 23 || tod < travelWindowStart {
		op.advanceTime(math.Mod(24-tod+travelWindowStart, 24))
		if gs.IsOver {
			return
		}
	}
	gs.Mode = state.ModeTraveling
	op.emit(Event{Kind: EventTravel, Location: gs.Location})
}

// arrive commits reaching the next landmark and dispatches its handler:
// a registered landmark story encounter, the Rivendell healing sequence,
// a town view, the terminal victory check, or a generic pause screen.
func (op *opCtx) arrive(next *journey.Location) {
	gs := op.gs
	gs.MarkVisited(next.Key)

	encKey := next.ArrivalEncounter
	if encKey == "" {
		encKey = next.Key
	}
	if enc := op.e.catalog.Get(encKey); enc != nil && enc.Trigger == encounter.TriggerLandmark {
		op.present(enc, "")
		return
	}

	if next.Key == "rivendell" {
		op.arriveRivendell(next)
		return
	}

	switch next.Kind {
	case journey.KindTown:
		op.enterTown(next.Key)
	case journey.KindEnd:
		op.checkGameOver()
	default:
		gs.Mode = state.ModePaused
		op.emit(Event{Kind: EventLandmark, Location: next.Key, Title: next.Name, Text: next.Description})
	}
}

// arriveRivendell is the multi-day healing arrival: the Ranger's true
// name is revealed and Elrond tends the Ringbearer, one day per ten
// missing health. The bed rest consumes food like any other time.
func (op *opCtx) arriveRivendell(loc *journey.Location) {
	gs := op.gs
	op.RenameStriderToAragorn()

	healing := ""
	if frodo := gs.FindMember("Frodo"); frodo != nil && frodo.Alive() && frodo.Health < state.MaxHealth {
		days := encounter.RivendellHealingDays(frodo.Health)
		op.advanceTime(float64(days) * 24)
		if gs.IsOver {
			return
		}
		frodo.Health = state.MaxHealth
		gs.Morale = 100
		healing = fmt.Sprintf(" For %d days, Frodo lies in a deep sleep while Elrond's skill battles the shadow of the Morgul-blade. At last, he wakes, weak but whole again. The company's morale is fully restored in this safe haven.", days)
	}
	gs.Counters[state.CounterRivendellPhase] = 1

	op.continueScreen("Welcome to Rivendell", loc.Description+healing, &state.Followup{Town: loc.Key})
}
