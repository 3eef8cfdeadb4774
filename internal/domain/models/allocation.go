package models

import (
	"math"
	"sort"
)

// AllocationPlan maps a ticker to its portfolio weight. Non-empty plans sum to 1.
type AllocationPlan map[string]float64

// WeightTolerance bounds the allowed deviation of a plan's total from 1.
const WeightTolerance = 1e-9

// Empty reports whether the plan carries no weights.
func (p AllocationPlan) Empty() bool { return len(p) == 0 }

// Total sums all weights.
func (p AllocationPlan) Total() float64 {
	var sum float64
	for _, w := range p {
		sum += w
	}
	return sum
}

// Valid reports whether the plan is empty or has non-negative weights summing to 1.
func (p AllocationPlan) Valid() bool {
	if p.Empty() {
		return true
	}
	for _, w := range p {
		if w < 0 || math.IsNaN(w) {
			return false
		}
	}
	return math.Abs(p.Total()-1) <= WeightTolerance
}

// Clone returns an independent copy.
func (p AllocationPlan) Clone() AllocationPlan {
	if p == nil {
		return AllocationPlan{}
	}
	out := make(AllocationPlan, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Tickers returns tickers ordered by descending weight, then name.
func (p AllocationPlan) Tickers() []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if p[out[i]] != p[out[j]] {
			return p[out[i]] > p[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// AssetNames describes the tickers used by suggested plans.
var AssetNames = map[string]string{
	"QQQ": "US tech equities",
	"TLT": "long-term US treasuries",
	"GLD": "gold",
	"SHY": "short-term US treasuries",
	"LQD": "investment-grade corporate bonds",
}
