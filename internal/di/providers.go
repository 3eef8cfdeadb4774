package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"MacroPulse/internal/domain/repository"
	"MacroPulse/internal/handler/api"
	internalrepo "MacroPulse/internal/repository"
	"MacroPulse/internal/service/fred"
	"MacroPulse/internal/service/news"
	"MacroPulse/internal/service/ratelimit"
	"MacroPulse/internal/service/yahoo"
	"MacroPulse/internal/usecase"
	"MacroPulse/pkg/cache"
	pkgch "MacroPulse/pkg/clickhouse"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
	pkgkafka "MacroPulse/pkg/kafka"
	"MacroPulse/pkg/logger"
	"MacroPulse/pkg/metrics"
	"MacroPulse/pkg/server"
)

const sinkTimeout = 30 * time.Second

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&cfg.Log)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the configured cache. A disabled cache still yields an
// in-process store so the scheduler can take its lock.
func ProvideCache(cfg *config.Config, log *logger.Logger) (cache.Service, func(), error) {
	var (
		svc cache.Service
		err error
	)
	if cfg.Cache.Enabled {
		svc, err = cache.New(cfg.Cache)
	} else {
		svc = cache.NewMemoryCache(cfg.Cache.MaxSize, cfg.Cache.CleanupInterval)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s cache: %w", cfg.Cache.Type, err)
	}
	return svc, closeFunc("cache", svc, log), nil
}

// closeFunc adapts a client to a wire cleanup that logs close errors.
func closeFunc(name string, c io.Closer, log *logger.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn("close error", logger.String("resource", name), logger.Error(err))
		}
	}
}

func httpClient(name string, cfg *config.Config, extra ...xhttp.ClientOption) *xhttp.Client {
	hc := cfg.HTTPClient
	opts := []xhttp.ClientOption{
		xhttp.WithTimeout(hc.Timeout),
		xhttp.WithRetry(hc.MaxRetries, hc.RetryMaxInterval),
		xhttp.WithRateLimit(hc.RatePerSecond, hc.Burst),
		xhttp.WithBreaker(hc.BreakerFailures, hc.BreakerTimeout),
	}
	return xhttp.NewClient(name, append(opts, extra...)...)
}

// ProvideMacroSource creates the FRED client, cached when the cache is enabled.
func ProvideMacroSource(cfg *config.Config, log *logger.Logger, m repository.Metrics, c cache.Service) repository.MacroSource {
	var opts []fred.Option
	if cfg.Cache.Enabled {
		opts = append(opts, fred.WithCache(c, cfg.Cache.TTL))
	}
	return fred.New(httpClient("fred", cfg), cfg.FRED.BaseURL, cfg.FRED.APIKey, cfg.FRED.ObservationStart, log, m, opts...)
}

// ProvideMarketSource creates the Yahoo chart client.
func ProvideMarketSource(cfg *config.Config, log *logger.Logger, m repository.Metrics) repository.MarketSource {
	return yahoo.New(httpClient("yahoo", cfg, xhttp.WithUserAgent(cfg.News.UserAgent)), cfg.Market.BaseURL, cfg.Market.Range, log, m)
}

// ProvideHeadlineSource creates the news scraper.
func ProvideHeadlineSource(cfg *config.Config, log *logger.Logger, m repository.Metrics) repository.HeadlineSource {
	return news.New(httpClient("news", cfg, xhttp.WithUserAgent(cfg.News.UserAgent)), cfg.News.URL, cfg.News.Selector, cfg.News.Limit, log, m)
}

// ProvideArchive connects to ClickHouse and ensures the verdict table. Nil when disabled.
func ProvideArchive(cfg *config.Config, log *logger.Logger) (repository.Archive, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgch.NewClient(ctx, cfg.ClickHouse)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}
	archive := internalrepo.NewClickHouseArchive(client.DB(), internalrepo.DefaultVerdictTable)
	if err := archive.Init(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return archive, closeFunc("clickhouse", archive, log), nil
}

// ProvidePublisher creates the Kafka briefing publisher. Nil when disabled.
func ProvidePublisher(cfg *config.Config, log *logger.Logger) (repository.Publisher, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	pub := internalrepo.NewKafkaPublisher(producer)
	return pub, closeFunc("kafka", pub, log), nil
}

// ProvideDispatcher collects the enabled sinks.
func ProvideDispatcher(archive repository.Archive, pub repository.Publisher, m repository.Metrics, log *logger.Logger) *usecase.Dispatcher {
	var sinks []repository.BriefingSink
	if archive != nil {
		sinks = append(sinks, internalrepo.NewArchiveSink(archive))
	}
	if pub != nil {
		sinks = append(sinks, internalrepo.NewEventSink(pub))
	}
	return usecase.NewDispatcher(sinks, m, log, sinkTimeout)
}

// ProvideBriefingUseCase creates the briefing pipeline.
func ProvideBriefingUseCase(
	cfg *config.Config,
	macro repository.MacroSource,
	market repository.MarketSource,
	headlines repository.HeadlineSource,
	m repository.Metrics,
	log *logger.Logger,
	d *usecase.Dispatcher,
) *usecase.BriefingUseCase {
	opts := []usecase.BriefingOption{usecase.WithConcurrency(cfg.FRED.Concurrency)}
	if d.Len() > 0 {
		opts = append(opts, usecase.WithDispatcher(d))
	}
	return usecase.NewBriefingUseCase(macro, market, headlines, m, log, opts...)
}

// ProvideScheduler creates the cron scheduler. Nil when disabled.
func ProvideScheduler(cfg *config.Config, uc *usecase.BriefingUseCase, c cache.Service, log *logger.Logger) (*usecase.Scheduler, error) {
	if !cfg.Scheduler.Enabled {
		return nil, nil
	}
	return usecase.NewScheduler(cfg.Scheduler.Spec, uc, c, log)
}

// ProvideHTTPHandler registers every route.
func ProvideHTTPHandler(cfg *config.Config, log *logger.Logger, uc *usecase.BriefingUseCase, archive repository.Archive) xhttp.Handler {
	var rl *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		rl = ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	}

	checks := map[string]api.HealthCheck{}
	handlers := xhttp.Handlers{api.NewBriefingHandler(log, uc, rl)}
	if archive != nil {
		checks["clickhouse"] = archive.Health
		handlers = append(handlers, api.NewVerdictsHandler(log, archive))
	}
	return append(handlers, api.NewHealthHandler(checks))
}

// ProvideHTTPServer creates the echo server.
func ProvideHTTPServer(cfg *config.Config, log *logger.Logger, h xhttp.Handler) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS, cfg.Server.CORSOrigins...),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path))
	}
	return xhttp.NewServer(h, log, opts...)
}

// ProvideApp creates the application server. Clients are closed by the injector's cleanup.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	srv *xhttp.Server,
	sched *usecase.Scheduler,
	d *usecase.Dispatcher,
) *server.App {
	return server.New(cfg, log, srv, sched, d)
}
