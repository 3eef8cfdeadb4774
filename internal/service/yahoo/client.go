package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	xhttp "MacroPulse/pkg/http"
	"MacroPulse/pkg/logger"
)

const source = "yahoo"

// Client implements MarketSource against the Yahoo chart API.
type Client struct {
	http        *xhttp.Client
	baseURL     string
	rangeParam  string
	instruments []models.Instrument
	log         *logger.Logger
	metrics     drepo.Metrics
}

// New creates a market snapshot client for the fixed instrument list.
func New(httpClient *xhttp.Client, baseURL, rangeParam string, log *logger.Logger, metrics drepo.Metrics) *Client {
	if rangeParam == "" {
		rangeParam = "1d"
	}
	return &Client{
		http:        httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		rangeParam:  rangeParam,
		instruments: models.Instruments,
		log:         log,
		metrics:     metrics,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchSnapshot queries every instrument concurrently. Instruments without session data are left out.
func (c *Client) FetchSnapshot(ctx context.Context) models.MarketSnapshot {
	snap := make(models.MarketSnapshot, len(c.instruments))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	start := time.Now()
	for _, in := range c.instruments {
		wg.Add(1)
		go func(in models.Instrument) {
			defer wg.Done()
			q, err := c.Quote(ctx, in.Ticker)
			if err != nil {
				c.metrics.RecordFetchError(source)
				c.log.Warn("market quote unavailable",
					logger.String("instrument", in.Key),
					logger.String("ticker", in.Ticker),
					logger.Error(err),
				)
				return
			}
			mu.Lock()
			snap[in.Key] = q
			mu.Unlock()
		}(in)
	}
	wg.Wait()
	c.metrics.RecordFetchLatency(source, time.Since(start).Seconds())

	return snap
}

// Quote returns the session close and percent change from the session open for ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (models.Quote, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v8/finance/chart/" + url.PathEscape(ticker),
		QueryParams: map[string][]string{
			"range":    {c.rangeParam},
			"interval": {"1d"},
		},
	}, &resp)
	if err != nil {
		return models.Quote{}, err
	}

	if e := resp.Chart.Error; e != nil {
		return models.Quote{}, fmt.Errorf("chart error %s: %s", e.Code, e.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return models.Quote{}, fmt.Errorf("no session data")
	}

	q := resp.Chart.Result[0].Indicators.Quote[0]
	for i := min(len(q.Open), len(q.Close)) - 1; i >= 0; i-- {
		if q.Open[i] == nil || q.Close[i] == nil || *q.Open[i] == 0 {
			continue
		}
		openPx, closePx := *q.Open[i], *q.Close[i]
		return models.Quote{Close: closePx, ChangePct: (closePx - openPx) / openPx * 100}, nil
	}
	return models.Quote{}, fmt.Errorf("no session data")
}
