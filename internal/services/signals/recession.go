package signals

import (
	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/features"
)

// recessionRule subtracts one point when fire returns true on a defined input.
type recessionRule struct {
	reason string
	input  func(*models.SeriesStore) (float64, bool)
	fire   func(v float64) bool
}

func latestOf(key models.IndicatorKey) func(*models.SeriesStore) (float64, bool) {
	return func(s *models.SeriesStore) (float64, bool) {
		return features.Latest(s.Get(key))
	}
}

func changeOf(key models.IndicatorKey, lag int) func(*models.SeriesStore) (float64, bool) {
	return func(s *models.SeriesStore) (float64, bool) {
		return features.Latest(features.PercentChange(s.Get(key), lag))
	}
}

var recessionRules = []recessionRule{
	{"curve inverted", latestOf(models.YieldSpread), func(v float64) bool { return v < 0 }},
	{"confidence too low", latestOf(models.ConsumerConfidence), func(v float64) bool { return v < 70 }},
	{"production weakening", changeOf(models.IndustrialProduction, 1), func(v float64) bool { return v < 0 }},
	{"claims elevated", latestOf(models.JoblessClaims), func(v float64) bool { return v > 300000 }},
	{"inflation pressure", changeOf(models.CoreCPI, 12), func(v float64) bool { return v > 0.03 }},
	{"dollar strong", latestOf(models.DollarIndex), func(v float64) bool { return v > 120 }},
	{"retail weakening", changeOf(models.RetailSales, 1), func(v float64) bool { return v < 0 }},
	{"earnings declining", changeOf(models.CorporateProfits, 4), func(v float64) bool { return v < 0 }},
}

// RecessionRuleCount is the number of scoring rules; the score never drops below its negation.
var RecessionRuleCount = len(recessionRules)

// EvaluateRecession scores the store against the fixed rule table.
// Rules whose input is undefined are skipped.
func EvaluateRecession(store *models.SeriesStore) models.RecessionVerdict {
	score := 0
	reasons := make([]string, 0, len(recessionRules))
	for _, r := range recessionRules {
		v, ok := r.input(store)
		if !ok || !r.fire(v) {
			continue
		}
		score--
		reasons = append(reasons, r.reason)
	}
	return models.RecessionVerdict{Verdict: models.Verdict{
		Name:    "recession_risk",
		Score:   float64(score),
		Label:   RecessionLabel(score),
		Reasons: reasons,
	}}
}

// RecessionLabel maps a score to its risk label.
func RecessionLabel(score int) string {
	switch {
	case score <= -5:
		return models.RiskHigh
	case score <= -3:
		return models.RiskWeak
	case score <= -1:
		return models.RiskUnstable
	default:
		return models.RiskStable
	}
}
