package fred

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	"MacroPulse/pkg/cache"
	xhttp "MacroPulse/pkg/http"
	"MacroPulse/pkg/logger"
	xutil "MacroPulse/pkg/util"
)

const source = "fred"

// Option configures Client.
type Option func(*Client)

// Client implements MacroSource against the FRED observations API.
type Client struct {
	http             *xhttp.Client
	baseURL          string
	apiKey           string
	observationStart string
	log              *logger.Logger
	metrics          drepo.Metrics

	cache    cache.Service
	cacheTTL time.Duration
}

// New creates a FRED client. baseURL is the API root, e.g. https://api.stlouisfed.org/fred.
func New(httpClient *xhttp.Client, baseURL, apiKey, observationStart string, log *logger.Logger, metrics drepo.Metrics, opts ...Option) *Client {
	c := &Client{
		http:             httpClient,
		baseURL:          strings.TrimRight(baseURL, "/"),
		apiKey:           apiKey,
		observationStart: observationStart,
		log:              log,
		metrics:          metrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCache caches parsed series for ttl.
func WithCache(svc cache.Service, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = svc
		c.cacheTTL = ttl
	}
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// FetchSeries returns the series for key; an empty series on any failure.
func (c *Client) FetchSeries(ctx context.Context, key models.IndicatorKey) models.TimeSeries {
	ind, ok := models.IndicatorByKey(key)
	if !ok {
		c.log.Warn("unknown indicator", logger.String("key", string(key)))
		return models.TimeSeries{}
	}

	start := time.Now()
	series, err := c.load(ctx, ind.SeriesID)
	c.metrics.RecordFetchLatency(source, time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordFetchError(source)
		c.log.Warn("fred fetch failed",
			logger.String("series_id", ind.SeriesID),
			logger.Error(err),
		)
		return models.TimeSeries{}
	}
	return series
}

func (c *Client) load(ctx context.Context, seriesID string) (models.TimeSeries, error) {
	if c.cache == nil {
		return c.Observations(ctx, seriesID)
	}

	key := cache.Key(source, seriesID, c.observationStart)
	points, hit, err := cache.GetOrLoad(ctx, c.cache, key, c.cacheTTL, func(ctx context.Context) ([]cachedPoint, error) {
		s, err := c.Observations(ctx, seriesID)
		if err != nil {
			return nil, err
		}
		return toCached(s), nil
	})
	if err != nil {
		return nil, err
	}
	if hit {
		c.log.Debug("fred cache hit", logger.String("series_id", seriesID))
	}
	return fromCached(points), nil
}

// Observations fetches and parses one series. Missing readings (".") become NaN.
func (c *Client) Observations(ctx context.Context, seriesID string) (models.TimeSeries, error) {
	var resp observationsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/series/observations",
		QueryParams: map[string][]string{
			"series_id":         {seriesID},
			"api_key":           {c.apiKey},
			"file_type":         {"json"},
			"observation_start": {c.observationStart},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fred %s: %w", seriesID, err)
	}

	series := make(models.TimeSeries, 0, len(resp.Observations))
	for _, o := range resp.Observations {
		t, ok := xutil.ParseDate(o.Date)
		if !ok {
			continue
		}
		// keep timestamps strictly increasing
		if n := len(series); n > 0 && !t.After(series[n-1].Time) {
			continue
		}
		series = append(series, models.Observation{Time: t, Value: xutil.ParseFloatOrNaN(o.Value)})
	}
	return series, nil
}

// cachedPoint is the JSON form of an observation; NaN cannot be encoded so it is omitted.
type cachedPoint struct {
	Date  string   `json:"d"`
	Value *float64 `json:"v,omitempty"`
}

func toCached(s models.TimeSeries) []cachedPoint {
	out := make([]cachedPoint, len(s))
	for i, o := range s {
		out[i].Date = o.Time.Format(xutil.DateLayout)
		if !o.Missing() {
			v := o.Value
			out[i].Value = &v
		}
	}
	return out
}

func fromCached(points []cachedPoint) models.TimeSeries {
	out := make(models.TimeSeries, 0, len(points))
	for _, p := range points {
		t, ok := xutil.ParseDate(p.Date)
		if !ok {
			continue
		}
		v := math.NaN()
		if p.Value != nil {
			v = *p.Value
		}
		out = append(out, models.Observation{Time: t, Value: v})
	}
	return out
}
