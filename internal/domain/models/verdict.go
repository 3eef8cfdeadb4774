package models

import "time"

// Verdict is the output of one signal evaluator.
type Verdict struct {
	Name    string   `json:"name"`
	Score   float64  `json:"score"`
	Label   string   `json:"label"`
	Reasons []string `json:"reasons,omitempty"`
}

const LabelInsufficientData = "insufficient data"

// Recession risk labels.
const (
	RiskStable   = "stable"
	RiskUnstable = "unstable"
	RiskWeak     = "weak"
	RiskHigh     = "high-risk"
)

// RecessionVerdict is the recession risk score. Score is in [-8, 0].
type RecessionVerdict struct {
	Verdict
}

// LiquidityRegime labels.
const (
	LiquidityTightening     = "tightening"
	LiquidityEasing         = "easing"
	LiquidityMildTightening = "mild tightening"
	LiquidityMildEasing     = "mild easing"
	LiquidityNeutral        = "neutral"
)

// LiquidityVerdict carries the regime, the score that used to live in a package counter,
// and the deltas it was derived from.
type LiquidityVerdict struct {
	Verdict
	SOFRDelta  float64        `json:"sofr_delta"`
	WALCLDelta float64        `json:"walcl_delta"`
	Plan       AllocationPlan `json:"plan,omitempty"`
}

// Sufficient reports whether a regime was determined.
func (v LiquidityVerdict) Sufficient() bool { return v.Label != LabelInsufficientData }

// Real-rate labels.
const (
	RealRateFavorable   = "favorable for risk assets"
	RealRateUnfavorable = "unfavorable"
	RealRateNeutral     = "neutral"
)

// RealRateVerdict is fed funds minus CPI YoY. Rate is meaningful only when Defined.
type RealRateVerdict struct {
	Verdict
	Defined bool    `json:"defined"`
	Rate    float64 `json:"rate"`
}

// Business-cycle phase labels.
const (
	PhaseRecovery      = "recovery"
	PhaseOverheat      = "overheat"
	PhaseStagflation   = "stagflation-like"
	PhaseContraction   = "contraction"
	PhaseIndeterminate = "indeterminate"
)

// CycleVerdict is the Merrill-clock phase with its asset-class hint.
type CycleVerdict struct {
	Verdict
	Hint     string  `json:"hint,omitempty"`
	IPTrend  float64 `json:"ip_trend"`
	CPITrend float64 `json:"cpi_trend"`
}

// Briefing bundles everything a report is rendered from.
type Briefing struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Recession   RecessionVerdict         `json:"recession"`
	Liquidity   LiquidityVerdict         `json:"liquidity"`
	RealRate    RealRateVerdict          `json:"real_rate"`
	Cycle       CycleVerdict             `json:"cycle"`
	Allocation  AllocationPlan           `json:"allocation"`
	Snapshot    MarketSnapshot           `json:"snapshot"`
	Headlines   []string                 `json:"headlines"`
	Latest      map[IndicatorKey]float64 `json:"latest,omitempty"`
}
