package features

import (
	"math"

	"MacroPulse/internal/domain/models"
)

// PercentChange computes (v[i]-v[i-lag])/v[i-lag] at every index.
// The result has the input's length; positions with i < lag, a missing operand or a zero
// base are NaN. A lag below 1 yields an all-NaN series.
func PercentChange(s models.TimeSeries, lag int) models.TimeSeries {
	out := make(models.TimeSeries, len(s))
	for i, o := range s {
		out[i] = models.Observation{Time: o.Time, Value: math.NaN()}
		if lag < 1 || i < lag {
			continue
		}
		prev := s[i-lag].Value
		cur := o.Value
		if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
			continue
		}
		out[i].Value = (cur - prev) / prev
	}
	return out
}

// YoY is PercentChange with a 12-period lag (monthly data).
func YoY(s models.TimeSeries) models.TimeSeries { return PercentChange(s, 12) }

// Latest returns the most recent non-missing value.
func Latest(s models.TimeSeries) (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if !s[i].Missing() {
			return s[i].Value, true
		}
	}
	return 0, false
}

// Delta returns v[last]-v[last-window] over the non-missing values.
// It is undefined when fewer than window+1 values are present.
func Delta(s models.TimeSeries, window int) (float64, bool) {
	if window < 1 {
		return 0, false
	}
	vals := values(s)
	if len(vals) < window+1 {
		return 0, false
	}
	last := len(vals) - 1
	return vals[last] - vals[last-window], true
}

// LastN returns the last n non-missing values in time order.
func LastN(s models.TimeSeries, n int) ([]float64, bool) {
	if n < 1 {
		return nil, false
	}
	vals := values(s)
	if len(vals) < n {
		return nil, false
	}
	return vals[len(vals)-n:], true
}

// Align keeps only timestamps at which both series have a value.
// Both inputs must be ordered by time.
func Align(a, b models.TimeSeries) (models.TimeSeries, models.TimeSeries) {
	outA := make(models.TimeSeries, 0)
	outB := make(models.TimeSeries, 0)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ta, tb := a[i].Time, b[j].Time
		switch {
		case ta.Before(tb):
			i++
		case tb.Before(ta):
			j++
		default:
			if !a[i].Missing() && !b[j].Missing() {
				outA = append(outA, a[i])
				outB = append(outB, b[j])
			}
			i++
			j++
		}
	}
	return outA, outB
}

func values(s models.TimeSeries) []float64 {
	out := make([]float64, 0, len(s))
	for _, o := range s {
		if !o.Missing() {
			out = append(out, o.Value)
		}
	}
	return out
}
