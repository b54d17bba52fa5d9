package engine

import (
	"fmt"

	"github.com/jwebster45206/ringtrail/pkg/state"
)

// PerformTownAction executes one town menu action against the current
// town. One-time actions are consumed before their effect runs, so a
// game-ending effect still burns the action.
func (e *Engine) PerformTownAction(gs *state.GameState, actionID string) (*Result, error) {
	if gs.IsOver {
		return nil, state.ErrGameOver
	}
	if gs.Pending != nil {
		return nil, ErrPendingChoice
	}
	if gs.Mode != state.ModeTown {
		return nil, ErrWrongMode
	}
	town := e.towns[gs.Location]
	if town == nil {
		return nil, fmt.Errorf("no town catalog for location %q: %w", gs.Location, ErrWrongMode)
	}
	a := town.Action(actionID)
	if a == nil {
		return nil, ErrUnknownAction
	}
	completedKey := town.Key + ":" + a.ID
	if a.OneTime && gs.CompletedActions[completedKey] {
		return nil, ErrActionUnavailable
	}
	if a.If != nil && !a.If(gs) {
		return nil, ErrActionUnavailable
	}
	if a.Disabled != nil && a.Disabled(gs) {
		return nil, ErrActionUnavailable
	}

	op := e.begin(gs)
	if a.OneTime {
		gs.CompletedActions[completedKey] = true
	}

	out := a.Effect(gs, op)
	if gs.IsOver {
		return op.finish(), nil
	}

	title := out.Title
	if title == "" {
		title = town.Name
	}

	if a.IsExit {
		switch {
		case out.GoToEncounter != "":
			if enc := e.catalog.Get(out.GoToEncounter); enc != nil {
				op.present(enc, "")
			}
		case out.Text != "":
			op.continueScreen(title, out.Text, nil)
		default:
			gs.Mode = state.ModePaused
			op.emit(Event{Kind: EventTravel, Location: gs.Location})
		}
	} else {
		// Dialogue stays inside the town view.
		op.emit(Event{Kind: EventTown, Location: town.Key, Title: town.Name, Text: out.Text})
	}

	op.checkGameOver()
	return op.finish(), nil
}
