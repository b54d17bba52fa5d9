package engine

import (
	"fmt"

	"github.com/jwebster45206/ringtrail/pkg/state"
)

// GameOver ends the run immediately with an explicit reason. Helpers
// entry point for effects that kill the run outright.
func (op *opCtx) GameOver(reason string) {
	if op.gs.IsOver {
		return
	}
	op.endRun(false, reason)
}

// checkGameOver evaluates termination conditions in priority order:
// Ringbearer fallen, party wipe, starvation, broken morale, then arrival
// at the terminal location (win). Idempotent: once the run is over it
// never fires again.
func (op *opCtx) checkGameOver() {
	gs := op.gs
	if gs.IsOver {
		return
	}

	party := "your company"
	if gs.Flags[state.FlagCouncilComplete] {
		party = "the Fellowship"
	}

	frodo := gs.FindMember("Frodo")
	switch {
	case frodo != nil && frodo.Health <= 0:
		op.endRun(false, "the Ringbearer has fallen")
	case gs.LivingCount() == 0:
		op.endRun(false, fmt.Sprintf("the entire %s has been lost", party))
	case gs.Resources.Food <= 0:
		op.endRun(false, "you have run out of food")
	case gs.Morale <= 0:
		op.endRun(false, fmt.Sprintf("%s's morale has broken", party))
	case gs.Location == op.e.journey.End():
		op.endRun(true, "The One Ring has been cast into the fires of Mount Doom! Middle-earth is saved!")
	}
}

// endRun freezes the state and surfaces the ending summary.
func (op *opCtx) endRun(victory bool, reason string) {
	gs := op.gs
	gs.IsOver = true
	gs.Mode = state.ModePaused
	gs.Pending = nil

	if victory {
		gs.Ending = &state.Ending{Victory: true, Title: "Victory!", Text: reason}
		op.emit(Event{Kind: EventVictory, Title: gs.Ending.Title, Text: gs.Ending.Text})
		op.e.logger.Info("run won", "run_id", gs.ID, "elapsed_hours", gs.ElapsedHours)
		return
	}

	gs.Ending = &state.Ending{
		Title: "Journey's End",
		Text:  fmt.Sprintf("The quest has failed: %s.", reason),
	}
	op.emit(Event{Kind: EventGameOver, Title: gs.Ending.Title, Text: gs.Ending.Text})
	op.e.logger.Info("run lost", "run_id", gs.ID, "reason", reason, "elapsed_hours", gs.ElapsedHours)
}
