package models

import "time"

// VerdictRecord is one archived evaluator result.
type VerdictRecord struct {
	GeneratedAt time.Time `json:"generated_at"`
	Name        string    `json:"name"`
	Score       float64   `json:"score"`
	Label       string    `json:"label"`
	Reasons     []string  `json:"reasons"`
}

// Records flattens the briefing verdicts for archiving, in report order.
func (b *Briefing) Records() []VerdictRecord {
	if b == nil {
		return nil
	}
	verdicts := []Verdict{b.Cycle.Verdict, b.Recession.Verdict, b.Liquidity.Verdict, b.RealRate.Verdict}
	out := make([]VerdictRecord, 0, len(verdicts))
	for _, v := range verdicts {
		reasons := v.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		out = append(out, VerdictRecord{
			GeneratedAt: b.GeneratedAt,
			Name:        v.Name,
			Score:       v.Score,
			Label:       v.Label,
			Reasons:     reasons,
		})
	}
	return out
}

// BriefingEvent is the summary published after each generation.
type BriefingEvent struct {
	GeneratedAt     time.Time      `json:"generated_at"`
	RecessionScore  float64        `json:"recession_score"`
	RecessionLabel  string         `json:"recession_label"`
	LiquidityRegime string         `json:"liquidity_regime"`
	LiquidityScore  float64        `json:"liquidity_score"`
	RealRate        *float64       `json:"real_rate,omitempty"`
	CyclePhase      string         `json:"cycle_phase"`
	Allocation      AllocationPlan `json:"allocation,omitempty"`
	Reasons         []string       `json:"reasons,omitempty"`
}

// Event summarises the briefing for publication.
func (b *Briefing) Event() BriefingEvent {
	ev := BriefingEvent{
		GeneratedAt:     b.GeneratedAt,
		RecessionScore:  b.Recession.Score,
		RecessionLabel:  b.Recession.Label,
		LiquidityRegime: b.Liquidity.Label,
		LiquidityScore:  b.Liquidity.Score,
		CyclePhase:      b.Cycle.Label,
		Allocation:      b.Allocation.Clone(),
		Reasons:         append([]string(nil), b.Recession.Reasons...),
	}
	if b.RealRate.Defined {
		r := b.RealRate.Rate
		ev.RealRate = &r
	}
	return ev
}
