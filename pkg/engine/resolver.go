package engine

import (
	"github.com/jwebster45206/ringtrail/pkg/encounter"
	"github.com/jwebster45206/ringtrail/pkg/state"
)

// ResolveChoice applies the player's selection against the pending
// prompt. The chosen label is matched against the authoritative option
// list re-derived from current state; a mismatch is a consistency error
// and the state is left untouched.
func (e *Engine) ResolveChoice(gs *state.GameState, index int) (*Result, error) {
	if gs.IsOver {
		return nil, state.ErrGameOver
	}
	p := gs.Pending
	if p == nil {
		return nil, ErrNoPendingChoice
	}
	if index < 0 || index >= len(p.Options) {
		return nil, ErrStaleOption
	}

	if p.Continue {
		op := e.begin(gs)
		gs.Pending = nil
		op.dismissContinue(p.Followup)
		op.checkGameOver()
		return op.finish(), nil
	}

	enc := e.catalog.Get(p.EncounterID)
	if enc == nil {
		e.logger.Error("pending prompt references unknown encounter", "encounter_id", p.EncounterID)
		return nil, ErrStaleOption
	}

	label := p.Options[index]
	effect, err := matchEffect(enc, gs, label)
	if err != nil {
		e.logger.Warn("stale option selection", "encounter_id", enc.ID, "label", label)
		return nil, err
	}

	op := e.begin(gs)
	gs.Pending = nil
	out := effect(gs, op)
	op.applyOutcome(enc, out)
	op.checkGameOver()
	return op.finish(), nil
}

// matchEffect locates the effect for the chosen label. Puzzles dispatch
// to their success/failure handlers; everything else matches the
// re-derived option list.
func matchEffect(enc *encounter.Encounter, gs *state.GameState, label string) (encounter.Effect, error) {
	if enc.Puzzle != nil {
		for _, c := range enc.Puzzle.Choices {
			if c.Label == label {
				if c.Correct {
					return enc.Puzzle.OnSuccess, nil
				}
				return enc.Puzzle.OnFailure, nil
			}
		}
		return nil, ErrStaleOption
	}
	for _, opt := range enc.CandidateOptions(gs) {
		if opt.Label == label {
			return opt.Effect, nil
		}
	}
	return nil, ErrStaleOption
}

// dismissContinue routes a dismissed continue screen to its follow-up
// view. The default is the paused travel view.
func (op *opCtx) dismissContinue(f *state.Followup) {
	switch {
	case f != nil && f.Town != "":
		op.enterTown(f.Town)
	case f != nil && f.EncounterID != "":
		if enc := op.e.catalog.Get(f.EncounterID); enc != nil {
			op.present(enc, "")
			return
		}
		op.e.logger.Error("continue follow-up references unknown encounter", "encounter_id", f.EncounterID)
		fallthrough
	default:
		op.gs.Mode = state.ModePaused
		op.emit(Event{Kind: EventTravel, Location: op.gs.Location})
	}
}

// applyOutcome routes an effect's outcome: retries re-present with
// escalating flavor, navigation intents redirect the continue screen,
// plain text gets a default continue screen, and a handled outcome (or a
// run the effect already ended) needs nothing more.
func (op *opCtx) applyOutcome(enc *encounter.Encounter, out encounter.Outcome) {
	gs := op.gs
	if gs.IsOver || out.Handled() {
		return
	}

	title := out.Title
	if title == "" {
		title = enc.Name
	}

	switch {
	case out.Retry:
		op.present(enc, out.Text)
	case out.GoToEncounter != "":
		if out.Text != "" {
			op.continueScreen(title, out.Text, &state.Followup{EncounterID: out.GoToEncounter})
			return
		}
		if next := op.e.catalog.Get(out.GoToEncounter); next != nil {
			op.present(next, "")
		}
	case out.GoToTown != "":
		if out.Text != "" {
			op.continueScreen(title, out.Text, &state.Followup{Town: out.GoToTown})
			return
		}
		op.enterTown(out.GoToTown)
	case out.GoToTravel:
		gs.Mode = state.ModeTraveling
		op.emit(Event{Kind: EventTravel, Location: gs.Location})
	default:
		op.continueScreen(title, out.Text, nil)
	}
}
