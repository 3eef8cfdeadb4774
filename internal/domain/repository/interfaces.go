package repository

import (
	"context"
	"time"

	"MacroPulse/internal/domain/models"
)

// MacroSource loads one macro series. Failures surface as an empty series.
type MacroSource interface {
	FetchSeries(ctx context.Context, key models.IndicatorKey) models.TimeSeries
}

// MarketSource loads the session snapshot. Instruments without session data are omitted.
type MarketSource interface {
	FetchSnapshot(ctx context.Context) models.MarketSnapshot
}

// HeadlineSource loads up to five headlines; on failure a single placeholder item.
type HeadlineSource interface {
	FetchHeadlines(ctx context.Context) []string
}

// BriefingSink receives generated briefings. Sinks never affect the report.
type BriefingSink interface {
	Name() string
	Save(ctx context.Context, b *models.Briefing) error
}

// Publisher emits briefing events.
type Publisher interface {
	Publish(ctx context.Context, ev models.BriefingEvent) error
	Close() error
}

// Archive stores verdict rows for later inspection.
type Archive interface {
	Init(ctx context.Context) error // ensure tables
	StoreBatch(ctx context.Context, records []models.VerdictRecord) error
	Query(ctx context.Context, name string, from, to time.Time, limit int) ([]models.VerdictRecord, error)
	Health(ctx context.Context) error
	Close() error
}

type Metrics interface {
	RecordFetchError(source string)
	RecordFetchLatency(source string, seconds float64)
	RecordRulesFired(n int)
	RecordReport(recessionScore, liquidityScore float64)
	RecordSinkError(sink string)
}
