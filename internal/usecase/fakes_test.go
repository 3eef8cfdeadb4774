package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"MacroPulse/internal/domain/models"
	"MacroPulse/pkg/metrics"
)

var t0 = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// monthly builds n monthly points: start, start+step, ...
func monthly(n int, start, step float64) models.TimeSeries {
	s := make(models.TimeSeries, n)
	for i := range s {
		s[i] = models.Observation{Time: t0.AddDate(0, i, 0), Value: start + step*float64(i)}
	}
	return s
}

type fakeMacro struct {
	mu     sync.Mutex
	series map[models.IndicatorKey]models.TimeSeries
	calls  int
}

func (f *fakeMacro) FetchSeries(_ context.Context, key models.IndicatorKey) models.TimeSeries {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if s, ok := f.series[key]; ok {
		return s
	}
	return models.TimeSeries{}
}

type fakeMarket struct{ snap models.MarketSnapshot }

func (f fakeMarket) FetchSnapshot(context.Context) models.MarketSnapshot { return f.snap }

type fakeNews struct{ headlines []string }

func (f fakeNews) FetchHeadlines(context.Context) []string { return f.headlines }

type recordingSink struct {
	mu    sync.Mutex
	name  string
	err   error
	saved []*models.Briefing
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Save(_ context.Context, b *models.Briefing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, b)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

var errSinkDown = errors.New("sink down")

type countingMetrics struct {
	metrics.Nop
	mu         sync.Mutex
	reports    int
	sinkErrors int
}

func (m *countingMetrics) RecordReport(float64, float64) {
	m.mu.Lock()
	m.reports++
	m.mu.Unlock()
}

func (m *countingMetrics) RecordSinkError(string) {
	m.mu.Lock()
	m.sinkErrors++
	m.mu.Unlock()
}

// healthySeries gives every indicator 24 monthly points with no recession rule firing.
func healthySeries() map[models.IndicatorKey]models.TimeSeries {
	return map[models.IndicatorKey]models.TimeSeries{
		models.YieldSpread:          monthly(24, 0.5, 0),
		models.IndustrialProduction: monthly(24, 100, 0.5),
		models.JoblessClaims:        monthly(24, 210000, 0),
		models.ConsumerConfidence:   monthly(24, 85, 0),
		models.CPI:                  monthly(24, 300, 0.3),
		models.CoreCPI:              monthly(24, 300, 0.2),
		models.FedFundsRate:         monthly(24, 5.5, 0),
		models.DollarIndex:          monthly(24, 110, 0),
		models.NBERRecession:        monthly(24, 0, 0),
		models.FedBalanceSheet:      monthly(24, 8000000, -10000),
		models.SOFR:                 monthly(24, 5.0, 0.01),
		models.RetailSales:          monthly(24, 700000, 500),
		models.CorporateProfits:     monthly(24, 3000, 10),
		models.Treasury2Y:           monthly(24, 4.5, 0),
	}
}

func fullSnapshot() models.MarketSnapshot {
	snap := models.MarketSnapshot{}
	for _, in := range models.Instruments {
		snap[in.Key] = models.Quote{Close: 100, ChangePct: 1}
	}
	return snap
}
