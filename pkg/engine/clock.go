package engine

import "github.com/jwebster45206/ringtrail/pkg/state"

const (
	hourlyFoodConsumption = 0.25
	hourlyDistance        = 5.0
	dailyHealthLoss       = 5.0
)

// AdvanceTime is the Helpers entry point for encounter effects.
func (op *opCtx) AdvanceTime(hours float64) {
	op.advanceTime(hours)
}

// advanceTime moves the clock and applies hourly food consumption. Food
// decay scales with living-roster size: fewer mouths, less food burned.
// The sustaining-water buff is checked once against the starting hour, so
// an advance that begins under the buff is not charged at all.
func (op *opCtx) advanceTime(hours float64) {
	gs := op.gs
	if gs.IsOver || hours <= 0 {
		return
	}
	living := float64(gs.LivingCount())
	if living > 0 && !gs.BuffActive(state.BuffSustainingWater) {
		gs.Resources.Food -= hours * hourlyFoodConsumption * living / 4
		if gs.Resources.Food < 0 {
			gs.Resources.Food = 0
		}
	}
	gs.ElapsedHours += hours
	if expiry, ok := gs.Buffs[state.BuffSustainingWater]; ok && expiry <= gs.ElapsedHours {
		delete(gs.Buffs, state.BuffSustainingWater)
	}
	op.checkGameOver()
}
