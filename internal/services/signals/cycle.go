package signals

import (
	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/features"
)

var phaseHints = map[string]string{
	models.PhaseRecovery:    "equities",
	models.PhaseOverheat:    "commodities, cyclical sectors",
	models.PhaseStagflation: "gold, inflation-protected bonds",
	models.PhaseContraction: "government bonds, short-duration treasuries",
}

// EvaluateCycle places the economy on the Merrill clock from industrial production and CPI.
func EvaluateCycle(store *models.SeriesStore) models.CycleVerdict {
	return ClassifyCycle(features.YoY(store.Get(models.IndustrialProduction)), features.YoY(store.Get(models.CPI)))
}

// ClassifyCycle compares the two most recent YoY readings of each series.
func ClassifyCycle(ipYoY, cpiYoY models.TimeSeries) models.CycleVerdict {
	v := models.CycleVerdict{Verdict: models.Verdict{Name: "business_cycle", Label: models.LabelInsufficientData}}

	ip, okIP := features.LastN(ipYoY, 2)
	cpi, okCPI := features.LastN(cpiYoY, 2)
	if !okIP || !okCPI {
		return v
	}
	v.IPTrend = ip[1] - ip[0]
	v.CPITrend = cpi[1] - cpi[0]

	var phase string
	switch {
	case v.IPTrend > 0 && v.CPITrend < 0:
		phase = models.PhaseRecovery
	case v.IPTrend > 0 && v.CPITrend > 0:
		phase = models.PhaseOverheat
	case v.IPTrend < 0 && v.CPITrend > 0:
		phase = models.PhaseStagflation
	case v.IPTrend < 0 && v.CPITrend < 0:
		phase = models.PhaseContraction
	default:
		phase = models.PhaseIndeterminate
	}
	v.Label = phase
	v.Hint = phaseHints[phase]
	v.Reasons = []string{trendWord("industrial production", v.IPTrend), trendWord("inflation", v.CPITrend)}
	return v
}

func trendWord(what string, d float64) string {
	switch {
	case d > 0:
		return what + " rising"
	case d < 0:
		return what + " falling"
	default:
		return what + " flat"
	}
}
