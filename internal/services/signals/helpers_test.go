package signals

import (
	"time"

	"MacroPulse/internal/domain/models"
)

var base = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

func series(vals ...float64) models.TimeSeries {
	s := make(models.TimeSeries, len(vals))
	for i, v := range vals {
		s[i] = models.Observation{Time: base.AddDate(0, i, 0), Value: v}
	}
	return s
}

func flat(v float64, n int) models.TimeSeries {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return series(vals...)
}

// ramp grows by step per observation starting at start.
func ramp(start, step float64, n int) models.TimeSeries {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = start + step*float64(i)
	}
	return series(vals...)
}
