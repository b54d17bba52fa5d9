package engine

import (
	"fmt"
	"time"

	"github.com/jwebster45206/ringtrail/pkg/state"
)

// Camp action kinds.
const (
	CampRest     = "rest"
	CampForage   = "forage"
	CampHunt     = "hunt"
	CampScavenge = "scavenge"
	CampAthelas  = "athelas"
)

// MakeCamp pitches camp from the paused travel view, so camp activities
// are available at any hour rather than only at nightfall. Idempotent
// while already camped. The transition advances no time and consumes no
// roll step.
func (e *Engine) MakeCamp(gs *state.GameState) (*Result, error) {
	if gs.IsOver {
		return nil, state.ErrGameOver
	}
	if gs.Pending != nil {
		return nil, ErrPendingChoice
	}
	switch gs.Mode {
	case state.ModeCamp:
		return &Result{}, nil
	case state.ModePaused:
	default:
		return nil, ErrWrongMode
	}

	gs.Mode = state.ModeCamp
	gs.UpdatedAt = time.Now()
	return &Result{Events: []Event{{
		Kind:     EventCamp,
		Location: gs.Location,
		Text:     "You pitch camp beside the road.",
	}}}, nil
}

// PerformCampAction executes one camp activity. Breaking camp is
// StartTravel, not a camp action.
func (e *Engine) PerformCampAction(gs *state.GameState, kind string) (*Result, error) {
	if gs.IsOver {
		return nil, state.ErrGameOver
	}
	if gs.Pending != nil {
		return nil, ErrPendingChoice
	}
	if gs.Mode != state.ModeCamp {
		return nil, ErrWrongMode
	}
	switch kind {
	case CampRest, CampForage, CampHunt, CampScavenge, CampAthelas:
	default:
		return nil, ErrUnknownAction
	}
	if kind == CampAthelas && gs.Inventory["athelas"] <= 0 {
		return nil, ErrActionUnavailable
	}

	op := e.begin(gs)
	var text string
	switch kind {
	case CampRest:
		op.advanceTime(24)
		if gs.IsOver {
			return op.finish(), nil
		}
		for _, m := range gs.LivingMembers() {
			m.Heal(dailyHealthLoss * 5)
		}
		gs.AddMorale(15)
		text = "You rest for a full day, recovering your strength."

	case CampForage:
		op.advanceTime(6)
		if gs.IsOver {
			return op.finish(), nil
		}
		found := float64(op.rng.Intn(5) + 8)
		gs.AddFood(found)
		text = fmt.Sprintf("You spend much of the morning foraging and find %.0f food.", found)

	case CampHunt:
		op.advanceTime(4)
		if gs.IsOver {
			return op.finish(), nil
		}
		switch roll := op.rng.Float64(); {
		case roll < 0.25:
			for _, m := range gs.LivingMembers() {
				m.Damage(15)
			}
			text = "The hunt goes poorly! The party was injured and found nothing after a few hours."
		case roll < 0.75:
			text = "You hunted for several hours but found nothing."
		default:
			found := float64(op.rng.Intn(20) + 20)
			gs.AddFood(found)
			text = fmt.Sprintf("A successful hunt! You brought back %.0f food after a few hours.", found)
		}

	case CampScavenge:
		op.advanceTime(8)
		if gs.IsOver {
			return op.finish(), nil
		}
		switch roll := op.rng.Float64(); {
		case roll < 0.2:
			if enc := e.catalog.Get("orc_patrol"); enc != nil {
				op.present(enc, "")
				return op.finish(), nil
			}
			text = "You scavenged for most of the day but found nothing of note."
		case roll < 0.6:
			found := float64(op.rng.Intn(10) + 5)
			gs.Resources.Supplies += found
			text = fmt.Sprintf("After a long day of scavenging, you found %.0f useful supplies!", found)
		default:
			text = "You scavenged for most of the day but found nothing of note."
		}

	case CampAthelas:
		op.advanceTime(1)
		if gs.IsOver {
			return op.finish(), nil
		}
		weakest := weakestLiving(gs)
		if weakest == nil {
			return op.finish(), nil
		}
		gs.Inventory["athelas"]--
		weakest.Heal(30)
		text = fmt.Sprintf("You crush the Athelas leaves in hot water. The fragrance alone lifts the heart, and %s's wounds begin to close.", weakest.Name)
	}

	op.emit(Event{Kind: EventCamp, Text: text})
	op.checkGameOver()
	return op.finish(), nil
}

func weakestLiving(gs *state.GameState) *state.Member {
	var weakest *state.Member
	for _, m := range gs.LivingMembers() {
		if weakest == nil || m.Health < weakest.Health {
			weakest = m
		}
	}
	return weakest
}
