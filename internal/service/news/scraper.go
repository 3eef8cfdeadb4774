package news

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	drepo "MacroPulse/internal/domain/repository"
	xhttp "MacroPulse/pkg/http"
	"MacroPulse/pkg/logger"

	"github.com/PuerkitoBio/goquery"
)

const source = "news"

// Placeholder is the single headline returned when the page cannot be loaded.
const Placeholder = "news unavailable"

// Scraper implements HeadlineSource by extracting headlines from a news page.
type Scraper struct {
	http     *xhttp.Client
	url      string
	selector string
	limit    int
	log      *logger.Logger
	metrics  drepo.Metrics
}

// New creates a headline scraper. limit is capped at 5.
func New(httpClient *xhttp.Client, url, selector string, limit int, log *logger.Logger, metrics drepo.Metrics) *Scraper {
	if limit <= 0 || limit > 5 {
		limit = 5
	}
	return &Scraper{
		http:     httpClient,
		url:      url,
		selector: selector,
		limit:    limit,
		log:      log,
		metrics:  metrics,
	}
}

// FetchHeadlines returns up to limit headlines, or the placeholder on failure.
func (s *Scraper) FetchHeadlines(ctx context.Context) []string {
	start := time.Now()
	headlines, err := s.Headlines(ctx)
	s.metrics.RecordFetchLatency(source, time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordFetchError(source)
		s.log.Warn("headline fetch failed", logger.String("url", s.url), logger.Error(err))
		return []string{Placeholder}
	}
	return headlines
}

// Headlines fetches the page and extracts non-empty headline texts in document order.
func (s *Scraper) Headlines(ctx context.Context) ([]string, error) {
	body, err := s.http.Send(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     s.url,
		Headers: map[string]string{"Accept": "text/html"},
	})
	if err != nil {
		return nil, err
	}
	return Extract(body, s.selector, s.limit)
}

// Extract parses an HTML document and returns the trimmed texts of the first limit matches.
func Extract(html []byte, selector string, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	headlines := make([]string, 0, limit)
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text != "" {
			headlines = append(headlines, text)
		}
		return len(headlines) < limit
	})
	return headlines, nil
}
