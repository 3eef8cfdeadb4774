package signals

import "MacroPulse/internal/domain/models"

// SuggestAllocation returns the plan attached to the liquidity regime,
// or an empty plan when the regime could not be determined.
func SuggestAllocation(liq models.LiquidityVerdict) models.AllocationPlan {
	if !liq.Sufficient() {
		return models.AllocationPlan{}
	}
	return liq.Plan.Clone()
}
