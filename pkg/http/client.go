package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	MethodGet  = http.MethodGet
	MethodPost = http.MethodPost
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 8 << 20

// ClientOption configures Client.
type ClientOption func(*Client)

// RequestOptions holds HTTP request parameters.
type RequestOptions struct {
	Method      string
	URL         string
	Headers     map[string]string
	QueryParams map[string][]string
	Body        interface{}
}

// Client is an upstream HTTP client with rate limiting, retries and a circuit breaker.
type Client struct {
	name             string
	timeout          time.Duration
	maxRetries       uint64
	retryMaxInterval time.Duration
	limiter          *rate.Limiter
	breakerFailures  uint32
	breakerTimeout   time.Duration
	userAgent        string

	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a new HTTP client. name labels the circuit breaker.
func NewClient(name string, opts ...ClientOption) *Client {
	c := &Client{
		name:             name,
		timeout:          30 * time.Second,
		maxRetries:       3,
		retryMaxInterval: 5 * time.Second,
		breakerFailures:  5,
		breakerTimeout:   30 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{Timeout: c.timeout}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     c.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.breakerFailures
		},
		IsSuccessful: func(err error) bool {
			// Client errors mean the upstream is alive.
			var se *HTTPStatusError
			if errors.As(err, &se) {
				return !se.Retryable()
			}
			return err == nil
		},
	})
	return c
}

// Name returns the client label.
func (c *Client) Name() string { return c.name }

// BreakerState reports the circuit breaker state ("closed", "half-open", "open").
func (c *Client) BreakerState() string { return c.breaker.State().String() }

// Send performs the request and returns the body of a 2xx response.
func (c *Client) Send(ctx context.Context, opts *RequestOptions) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.sendWithRetry(ctx, opts)
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

// SendAndParse sends request and parses JSON response.
func (c *Client) SendAndParse(ctx context.Context, opts *RequestOptions, dest interface{}) error {
	body, err := c.Send(ctx, opts)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}

	switch v := dest.(type) {
	case *[]byte:
		*v = body
	case io.Writer:
		if _, err := v.Write(body); err != nil {
			return fmt.Errorf("copy body: %w", err)
		}
	default:
		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
	}
	return nil
}

func (c *Client) sendWithRetry(ctx context.Context, opts *RequestOptions) ([]byte, error) {
	var body []byte
	operation := func() error {
		b, err := c.do(ctx, opts)
		if err != nil {
			var se *HTTPStatusError
			if errors.As(err, &se) && !se.Retryable() {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = c.retryMaxInterval
	policy.MaxElapsedTime = 0

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, opts *RequestOptions) ([]byte, error) {
	req, err := c.buildRequest(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: truncate(body, 256)}
	}
	return body, nil
}

func (c *Client) buildRequest(ctx context.Context, opts *RequestOptions) (*http.Request, error) {
	method := opts.Method
	if method == "" {
		method = MethodGet
	}

	var body io.Reader
	switch v := opts.Body.(type) {
	case nil:
	case []byte:
		body = bytes.NewReader(v)
	case string:
		body = bytes.NewBufferString(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, opts.URL, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	if len(opts.QueryParams) > 0 {
		q := req.URL.Query()
		for key, values := range opts.QueryParams {
			for _, value := range values {
				q.Add(key, value)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetry sets the retry budget for transient failures.
func WithRetry(maxRetries uint64, maxInterval time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		if maxInterval > 0 {
			c.retryMaxInterval = maxInterval
		}
	}
}

// WithRateLimit limits outgoing requests to perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithBreaker trips after failures consecutive failures and probes again after timeout.
func WithBreaker(failures uint32, timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.breakerFailures = failures
		c.breakerTimeout = timeout
	}
}

// WithUserAgent sets a default User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}
