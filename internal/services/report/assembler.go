package report

import (
	"fmt"
	"strings"
	"time"

	"MacroPulse/internal/domain/models"
)

const (
	dateLayout  = "2006/01/02"
	unavailable = "data unavailable"

	// NoHeadlines is rendered when the headline list is empty.
	NoHeadlines = "(no headlines available)"
)

// headline US equity table, in order.
var usIndices = []string{
	models.InstrumentDowJones,
	models.InstrumentSP500,
	models.InstrumentNasdaq,
	models.InstrumentSemis,
}

var globalMarkets = []string{
	models.InstrumentFTSE,
	models.InstrumentDAX,
	models.InstrumentCAC,
	models.InstrumentNikkei,
	models.InstrumentTaiwan50,
	models.InstrumentShanghai,
	models.InstrumentHangSeng,
	models.InstrumentBrent,
	models.InstrumentGold,
	models.InstrumentDollarIdx,
}

// Input is everything one report is rendered from.
type Input struct {
	Date       time.Time
	Snapshot   models.MarketSnapshot
	Recession  models.RecessionVerdict
	Liquidity  models.LiquidityVerdict
	RealRate   models.RealRateVerdict
	Cycle      models.CycleVerdict
	Allocation models.AllocationPlan
	Headlines  []string
}

// FromBriefing adapts a generated briefing to assembler input.
func FromBriefing(b *models.Briefing) Input {
	return Input{
		Date:       b.GeneratedAt,
		Snapshot:   b.Snapshot,
		Recession:  b.Recession,
		Liquidity:  b.Liquidity,
		RealRate:   b.RealRate,
		Cycle:      b.Cycle,
		Allocation: b.Allocation,
		Headlines:  b.Headlines,
	}
}

// Assemble renders the briefing text. Sections always appear in the same order;
// the allocation section is left out when the plan is empty.
func Assemble(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s Market & Macro Briefing]\n\n", in.Date.Format(dateLayout))

	b.WriteString("[Global Risk Indicators]\n")
	writeLevel(&b, in.Snapshot, models.InstrumentVIX, "")
	writeLevel(&b, in.Snapshot, models.InstrumentUS10Y, "%")
	b.WriteString("\n")

	b.WriteString("[US Equities]\n")
	for _, key := range usIndices {
		writeQuote(&b, in.Snapshot, key)
	}
	b.WriteString("\n")

	b.WriteString("[Global Markets]\n")
	for _, key := range globalMarkets {
		writeQuote(&b, in.Snapshot, key)
	}
	b.WriteString("\n")

	b.WriteString("[Business Cycle (Merrill Clock)]\n")
	b.WriteString(cycleLine(in.Cycle))
	b.WriteString("\n\n")

	b.WriteString("[Recession Risk]\n")
	b.WriteString(recessionLine(in.Recession))
	b.WriteString("\n\n")

	b.WriteString("[Liquidity & Real Rate]\n")
	b.WriteString(liquidityLine(in.Liquidity))
	b.WriteString("\n")
	b.WriteString(realRateLine(in.RealRate))
	b.WriteString("\n\n")

	if !in.Allocation.Empty() {
		b.WriteString("[Suggested Allocation]\n")
		for _, ticker := range in.Allocation.Tickers() {
			name := models.AssetNames[ticker]
			if name == "" {
				name = ticker
			}
			fmt.Fprintf(&b, "%s (%s): %.2f%%\n", ticker, name, in.Allocation[ticker]*100)
		}
		b.WriteString("\n")
	}

	b.WriteString("[News Headlines]\n")
	if len(in.Headlines) == 0 {
		b.WriteString(NoHeadlines + "\n")
	}
	for i, h := range in.Headlines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, h)
	}

	return b.String()
}

func instrumentName(key string) string {
	if in, ok := models.InstrumentByKey(key); ok {
		return in.Name
	}
	return key
}

func writeLevel(b *strings.Builder, snap models.MarketSnapshot, key, suffix string) {
	name := instrumentName(key)
	q, ok := snap.Lookup(key)
	if !ok {
		fmt.Fprintf(b, "%s: %s\n", name, unavailable)
		return
	}
	fmt.Fprintf(b, "%s: %.2f%s\n", name, q.Close, suffix)
}

func writeQuote(b *strings.Builder, snap models.MarketSnapshot, key string) {
	name := instrumentName(key)
	q, ok := snap.Lookup(key)
	if !ok {
		fmt.Fprintf(b, "%s: %s\n", name, unavailable)
		return
	}
	fmt.Fprintf(b, "%s: close %.2f, change %.2f%%\n", name, q.Close, q.ChangePct)
}

func cycleLine(v models.CycleVerdict) string {
	if v.Label == "" || v.Label == models.LabelInsufficientData {
		return "phase: " + models.LabelInsufficientData
	}
	if v.Hint == "" {
		return "phase: " + v.Label
	}
	return fmt.Sprintf("phase: %s (suggested assets: %s)", v.Label, v.Hint)
}

func recessionLine(v models.RecessionVerdict) string {
	label := v.Label
	if label == "" {
		label = models.RiskStable
	}
	line := fmt.Sprintf("score %d | %s", int(v.Score), label)
	if len(v.Reasons) > 0 {
		line += " | factors: " + strings.Join(v.Reasons, ", ")
	}
	return line
}

func liquidityLine(v models.LiquidityVerdict) string {
	if !v.Sufficient() || v.Label == "" {
		return "liquidity: " + models.LabelInsufficientData
	}
	return fmt.Sprintf("liquidity: %s (SOFR 5-obs change %.4f, WALCL 5-obs change %.2f)",
		v.Label, v.SOFRDelta, v.WALCLDelta)
}

func realRateLine(v models.RealRateVerdict) string {
	if !v.Defined {
		return "real rate: " + models.LabelInsufficientData
	}
	return fmt.Sprintf("real rate: %.2f%% (%s)", v.Rate*100, v.Label)
}
