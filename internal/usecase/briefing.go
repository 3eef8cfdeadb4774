package usecase

import (
	"context"
	"sync"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/services/features"
	"MacroPulse/internal/services/report"
	"MacroPulse/internal/services/signals"
	"MacroPulse/pkg/logger"
)

// BriefingOption configures BriefingUseCase.
type BriefingOption func(*BriefingUseCase)

// BriefingUseCase runs one briefing cycle: fetch, evaluate, render.
type BriefingUseCase struct {
	macro   drepo.MacroSource
	market  drepo.MarketSource
	news    drepo.HeadlineSource
	metrics drepo.Metrics
	log     *logger.Logger

	dispatcher  *Dispatcher
	concurrency int
	timeout     time.Duration
	now         func() time.Time
}

// NewBriefingUseCase wires the three sources.
func NewBriefingUseCase(
	macro drepo.MacroSource,
	market drepo.MarketSource,
	news drepo.HeadlineSource,
	metrics drepo.Metrics,
	log *logger.Logger,
	opts ...BriefingOption,
) *BriefingUseCase {
	uc := &BriefingUseCase{
		macro:       macro,
		market:      market,
		news:        news,
		metrics:     metrics,
		log:         log,
		concurrency: 4,
		timeout:     60 * time.Second,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// WithDispatcher hands every generated briefing to d.
func WithDispatcher(d *Dispatcher) BriefingOption {
	return func(uc *BriefingUseCase) { uc.dispatcher = d }
}

// WithConcurrency bounds parallel series fetches.
func WithConcurrency(n int) BriefingOption {
	return func(uc *BriefingUseCase) {
		if n > 0 {
			uc.concurrency = n
		}
	}
}

// WithTimeout bounds a whole generation cycle.
func WithTimeout(d time.Duration) BriefingOption {
	return func(uc *BriefingUseCase) {
		if d > 0 {
			uc.timeout = d
		}
	}
}

// WithClock overrides the report date source.
func WithClock(now func() time.Time) BriefingOption {
	return func(uc *BriefingUseCase) { uc.now = now }
}

// GenerateReport renders the plain-text briefing. It always returns a report.
func (uc *BriefingUseCase) GenerateReport(ctx context.Context) string {
	b := uc.Generate(ctx)
	return report.Assemble(report.FromBriefing(b))
}

// Generate fetches all inputs, evaluates every signal and hands the result to the sinks in the background.
func (uc *BriefingUseCase) Generate(ctx context.Context) *models.Briefing {
	b := uc.build(ctx)
	if uc.dispatcher != nil {
		uc.dispatcher.DispatchAsync(ctx, b)
	}
	return b
}

// GenerateAndDeliver is Generate with sink delivery finished before it returns.
// It returns the briefing and the number of sinks that failed.
func (uc *BriefingUseCase) GenerateAndDeliver(ctx context.Context) (*models.Briefing, int) {
	b := uc.build(ctx)
	if uc.dispatcher == nil {
		return b, 0
	}
	return b, uc.dispatcher.Deliver(ctx, b)
}

func (uc *BriefingUseCase) build(ctx context.Context) *models.Briefing {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	store, snapshot, headlines := uc.fetch(ctx)

	b := Evaluate(store)
	b.GeneratedAt = uc.now()
	b.Snapshot = snapshot
	b.Headlines = headlines

	uc.metrics.RecordRulesFired(len(b.Recession.Reasons))
	uc.metrics.RecordReport(b.Recession.Score, b.Liquidity.Score)
	uc.log.Info("briefing generated",
		logger.Float64("recession_score", b.Recession.Score),
		logger.String("recession", b.Recession.Label),
		logger.String("liquidity", b.Liquidity.Label),
		logger.String("cycle", b.Cycle.Label),
		logger.Int("instruments", len(snapshot)),
		logger.Int("headlines", len(headlines)),
		logger.Duration("duration_ms", time.Since(start)),
	)
	return b
}

// Evaluate runs every evaluator over store. Evaluators share no state.
func Evaluate(store *models.SeriesStore) *models.Briefing {
	liq := signals.EvaluateLiquidity(store)
	return &models.Briefing{
		Recession:  signals.EvaluateRecession(store),
		Liquidity:  liq,
		RealRate:   signals.EvaluateRealRate(store),
		Cycle:      signals.EvaluateCycle(store),
		Allocation: signals.SuggestAllocation(liq),
		Latest:     latestValues(store),
	}
}

func latestValues(store *models.SeriesStore) map[models.IndicatorKey]float64 {
	out := make(map[models.IndicatorKey]float64, len(models.Indicators))
	for _, ind := range models.Indicators {
		if v, ok := features.Latest(store.Get(ind.Key)); ok {
			out[ind.Key] = v
		}
	}
	return out
}

func (uc *BriefingUseCase) fetch(ctx context.Context) (*models.SeriesStore, models.MarketSnapshot, []string) {
	var (
		wg        sync.WaitGroup
		series    map[models.IndicatorKey]models.TimeSeries
		snapshot  models.MarketSnapshot
		headlines []string
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		series = uc.fetchSeries(ctx)
	}()
	go func() {
		defer wg.Done()
		snapshot = uc.market.FetchSnapshot(ctx)
	}()
	go func() {
		defer wg.Done()
		headlines = uc.news.FetchHeadlines(ctx)
	}()
	wg.Wait()

	return models.NewSeriesStore(series), snapshot, headlines
}

func (uc *BriefingUseCase) fetchSeries(ctx context.Context) map[models.IndicatorKey]models.TimeSeries {
	type item struct {
		key    models.IndicatorKey
		series models.TimeSeries
	}

	ch := make(chan item, len(models.Indicators))
	sem := make(chan struct{}, uc.concurrency)
	var wg sync.WaitGroup

	for _, ind := range models.Indicators {
		wg.Add(1)
		go func(key models.IndicatorKey) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			ch <- item{key, uc.macro.FetchSeries(ctx, key)}
		}(ind.Key)
	}

	go func() { wg.Wait(); close(ch) }()

	out := make(map[models.IndicatorKey]models.TimeSeries, len(models.Indicators))
	for it := range ch {
		out[it.key] = it.series
	}
	return out
}
