package signals

import (
	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/features"
)

const realRateUnfavorableAbove = 0.005

// EvaluateRealRate derives the policy real rate from the fed funds target and CPI YoY.
func EvaluateRealRate(store *models.SeriesStore) models.RealRateVerdict {
	return RealRateFromYoY(store.Get(models.FedFundsRate), features.YoY(store.Get(models.CPI)))
}

// RealRateFromYoY computes fed/100 - cpiYoY on the latest timestamp present in both series.
func RealRateFromYoY(fed, cpiYoY models.TimeSeries) models.RealRateVerdict {
	v := models.RealRateVerdict{Verdict: models.Verdict{Name: "real_rate", Label: models.LabelInsufficientData}}

	fa, ca := features.Align(fed, cpiYoY)
	f, okF := features.Latest(fa)
	c, okC := features.Latest(ca)
	if !okF || !okC {
		return v
	}

	rate := f/100 - c
	v.Defined = true
	v.Rate = rate
	v.Score = rate
	v.Label = RealRateLabel(rate)
	return v
}

// RealRateLabel classifies a real rate.
func RealRateLabel(rate float64) string {
	switch {
	case rate < 0:
		return models.RealRateFavorable
	case rate > realRateUnfavorableAbove:
		return models.RealRateUnfavorable
	default:
		return models.RealRateNeutral
	}
}
