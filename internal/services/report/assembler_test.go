package report

import (
	"strings"
	"testing"
	"time"

	"MacroPulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSnapshot() models.MarketSnapshot {
	snap := models.MarketSnapshot{}
	for i, in := range models.Instruments {
		snap[in.Key] = models.Quote{Close: 100 + float64(i), ChangePct: 0.5}
	}
	return snap
}

func sampleInput() Input {
	return Input{
		Date:     time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
		Snapshot: fullSnapshot(),
		Recession: models.RecessionVerdict{Verdict: models.Verdict{
			Score: -2, Label: models.RiskUnstable, Reasons: []string{"curve inverted", "claims elevated"},
		}},
		Liquidity: models.LiquidityVerdict{
			Verdict:   models.Verdict{Label: models.LiquidityEasing, Score: 2},
			SOFRDelta: -0.03, WALCLDelta: 12000,
		},
		RealRate:   models.RealRateVerdict{Verdict: models.Verdict{Label: models.RealRateUnfavorable}, Defined: true, Rate: 0.02},
		Cycle:      models.CycleVerdict{Verdict: models.Verdict{Label: models.PhaseRecovery}, Hint: "equities"},
		Allocation: models.AllocationPlan{"QQQ": 0.5, "LQD": 0.2, "TLT": 0.15, "GLD": 0.15},
		Headlines:  []string{"Stocks rally", "Fed holds rates"},
	}
}

func sectionOrder(t *testing.T, out string, headers ...string) {
	t.Helper()
	last := -1
	for _, h := range headers {
		idx := strings.Index(out, h)
		require.GreaterOrEqual(t, idx, 0, "missing section %s", h)
		require.Greater(t, idx, last, "section %s out of order", h)
		last = idx
	}
}

func TestAssembleFullReport(t *testing.T) {
	out := Assemble(sampleInput())

	assert.True(t, strings.HasPrefix(out, "[2026/10/16 Market & Macro Briefing]\n"))
	sectionOrder(t, out,
		"[Global Risk Indicators]",
		"[US Equities]",
		"[Global Markets]",
		"[Business Cycle (Merrill Clock)]",
		"[Recession Risk]",
		"[Liquidity & Real Rate]",
		"[Suggested Allocation]",
		"[News Headlines]",
	)
	assert.Contains(t, out, "VIX volatility index: 100.00\n")
	assert.Contains(t, out, "US 10Y Treasury yield: 101.00%\n")
	assert.Contains(t, out, "Dow Jones Industrial Average: close 102.00, change 0.50%\n")
	assert.Contains(t, out, "phase: recovery (suggested assets: equities)")
	assert.Contains(t, out, "score -2 | unstable | factors: curve inverted, claims elevated")
	assert.Contains(t, out, "real rate: 2.00% (unfavorable)")
	assert.Contains(t, out, "QQQ (US tech equities): 50.00%\n")
	assert.Contains(t, out, "1. Stocks rally\n2. Fed holds rates\n")
}

func TestAssembleMissingVIX(t *testing.T) {
	in := sampleInput()
	delete(in.Snapshot, models.InstrumentVIX)
	out := Assemble(in)

	assert.Contains(t, out, "VIX volatility index: data unavailable\n")
	sectionOrder(t, out,
		"[Global Risk Indicators]",
		"[US Equities]",
		"[Business Cycle (Merrill Clock)]",
		"[Recession Risk]",
		"[Suggested Allocation]",
		"[News Headlines]",
	)
	assert.Contains(t, out, "US 10Y Treasury yield: 101.00%")
}

func TestAssembleEmptyInputs(t *testing.T) {
	out := Assemble(Input{Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)})

	assert.NotContains(t, out, "[Suggested Allocation]")
	assert.Contains(t, out, "S&P 500: data unavailable")
	assert.Contains(t, out, "phase: insufficient data")
	assert.Contains(t, out, "score 0 | stable")
	assert.Contains(t, out, "liquidity: insufficient data")
	assert.Contains(t, out, "real rate: insufficient data")
	assert.True(t, strings.HasSuffix(out, "[News Headlines]\n"+NoHeadlines+"\n"))
}

func TestAssembleAllocationOrder(t *testing.T) {
	in := sampleInput()
	out := Assemble(in)
	qqq := strings.Index(out, "QQQ (")
	lqd := strings.Index(out, "LQD (")
	gld := strings.Index(out, "GLD (")
	tlt := strings.Index(out, "TLT (")
	assert.Less(t, qqq, lqd)
	assert.Less(t, lqd, gld)
	assert.Less(t, gld, tlt)
}
