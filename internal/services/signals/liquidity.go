package signals

import (
	"fmt"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/features"
)

const (
	liquidityWindow   = 5
	sofrMoveThreshold = 0.02
)

var liquidityPlans = map[string]models.AllocationPlan{
	models.LiquidityTightening:     {"SHY": 0.40, "TLT": 0.25, "GLD": 0.20, "LQD": 0.15},
	models.LiquidityEasing:         {"QQQ": 0.50, "LQD": 0.20, "TLT": 0.15, "GLD": 0.15},
	models.LiquidityMildTightening: {"SHY": 0.40, "LQD": 0.35, "GLD": 0.25},
	models.LiquidityMildEasing:     {"QQQ": 0.40, "LQD": 0.30, "TLT": 0.30},
	models.LiquidityNeutral:        {"QQQ": 0.30, "TLT": 0.30, "GLD": 0.20, "SHY": 0.20},
}

var liquidityScores = map[string]float64{
	models.LiquidityTightening:     -2,
	models.LiquidityMildTightening: -1,
	models.LiquidityNeutral:        0,
	models.LiquidityMildEasing:     1,
	models.LiquidityEasing:         2,
}

// LiquidityPlan returns a copy of the fixed plan for a regime.
func LiquidityPlan(regime string) models.AllocationPlan {
	p, ok := liquidityPlans[regime]
	if !ok {
		return models.AllocationPlan{}
	}
	return p.Clone()
}

// EvaluateLiquidity classifies the 5-observation changes of SOFR and the Fed balance sheet.
func EvaluateLiquidity(store *models.SeriesStore) models.LiquidityVerdict {
	return ClassifyLiquidity(store.Get(models.SOFR), store.Get(models.FedBalanceSheet))
}

// ClassifyLiquidity applies the regime table. Strict pairs are checked before the
// single-factor fallbacks.
func ClassifyLiquidity(sofr, walcl models.TimeSeries) models.LiquidityVerdict {
	v := models.LiquidityVerdict{Verdict: models.Verdict{Name: "liquidity", Label: models.LabelInsufficientData}}

	ds, okS := features.Delta(sofr, liquidityWindow)
	dw, okW := features.Delta(walcl, liquidityWindow)
	switch {
	case !okS && !okW:
		v.Reasons = []string{"missing SOFR and WALCL data"}
		return v
	case !okS:
		v.Reasons = []string{"missing SOFR data"}
		return v
	case !okW:
		v.Reasons = []string{"missing WALCL data"}
		return v
	}
	v.SOFRDelta, v.WALCLDelta = ds, dw

	var regime string
	switch {
	case ds > sofrMoveThreshold && dw < 0:
		regime = models.LiquidityTightening
	case ds < -sofrMoveThreshold && dw > 0:
		regime = models.LiquidityEasing
	case ds > sofrMoveThreshold || dw < 0:
		regime = models.LiquidityMildTightening
	case ds < -sofrMoveThreshold || dw > 0:
		regime = models.LiquidityMildEasing
	default:
		regime = models.LiquidityNeutral
	}

	v.Label = regime
	v.Score = liquidityScores[regime]
	v.Plan = LiquidityPlan(regime)
	v.Reasons = []string{
		fmt.Sprintf("SOFR %d-obs change %.4f", liquidityWindow, ds),
		fmt.Sprintf("WALCL %d-obs change %.2f", liquidityWindow, dw),
	}
	return v
}
