package coingecko

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"CoinSignals/internal/domain/models"
	smetrics "CoinSignals/internal/service/metrics"
	xhttp "CoinSignals/pkg/http"
	applogger "CoinSignals/pkg/logger"
	"CoinSignals/pkg/util"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Waiter blocks until an outbound request may proceed.
type Waiter interface {
	Wait(ctx context.Context, key string, capacity, refillPerSec float64) error
}

// Client talks to a CoinGecko-compatible REST API.
type Client struct {
	http       *xhttp.Client
	baseURL    string
	vsCurrency string
	logger     *applogger.Logger

	limiter      Waiter
	burst        float64
	refillPerSec float64
}

type Option func(*Client)

// WithRateLimit throttles outbound calls through a shared token bucket.
func WithRateLimit(w Waiter, burst, refillPerSec float64) Option {
	return func(c *Client) {
		c.limiter = w
		c.burst = burst
		c.refillPerSec = refillPerSec
	}
}

// WithVsCurrency sets the quote currency used for price histories.
func WithVsCurrency(vs string) Option {
	return func(c *Client) {
		if vs != "" {
			c.vsCurrency = strings.ToLower(vs)
		}
	}
}

func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func New(httpClient *xhttp.Client, baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		http:       httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		vsCurrency: "usd",
		logger:     applogger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListMarkets fetches one page of /coins/markets ordered by market cap.
func (c *Client) ListMarkets(ctx context.Context, vsCurrency string, perPage, page int) ([]models.MarketSnapshot, error) {
	var rows []marketRow
	err := c.get(ctx, "markets", "/coins/markets", map[string][]string{
		"vs_currency": {vsCurrency},
		"order":       {"market_cap_desc"},
		"per_page":    {strconv.Itoa(perPage)},
		"page":        {strconv.Itoa(page)},
		"sparkline":   {"false"},
	}, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]models.MarketSnapshot, 0, len(rows))
	for _, r := range rows {
		s, ok := r.snapshot()
		if !ok {
			continue
		}
		out = append(out, s)
	}
	if skipped := len(rows) - len(out); skipped > 0 {
		c.logger.Debug("skipped markets without a price", applogger.Int("count", skipped))
	}
	return out, nil
}

// PriceHistory fetches /coins/{id}/market_chart for the last days.
func (c *Client) PriceHistory(ctx context.Context, id string, days int) (models.TimeSeries, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return models.TimeSeries{}, fmt.Errorf("coingecko history: %w: empty id", models.ErrNotFound)
	}
	var chart marketChart
	err := c.get(ctx, "market_chart", "/coins/"+url.PathEscape(id)+"/market_chart", map[string][]string{
		"vs_currency": {c.vsCurrency},
		"days":        {strconv.Itoa(days)},
	}, &chart)
	if err != nil {
		return models.TimeSeries{}, err
	}
	return chart.series(id), nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, query map[string][]string, dest any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, "coingecko", c.burst, c.refillPerSec); err != nil {
			return fmt.Errorf("coingecko %s: %w: %w", endpoint, models.ErrRateLimited, err)
		}
	}

	start := time.Now()
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		QueryParams: query,
	}, dest)
	smetrics.ObserveProvider(endpoint, start, err)
	if err != nil {
		c.logger.Warn("coingecko request failed",
			applogger.String("endpoint", endpoint),
			applogger.Duration("duration_ms", time.Since(start)),
			applogger.Error(err),
		)
		return classify(endpoint, err)
	}
	return nil
}

// classify maps transport failures onto the domain error taxonomy.
func classify(endpoint string, err error) error {
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == http.StatusTooManyRequests && se.RetryAfter > 0:
			return fmt.Errorf("coingecko %s: %w (retry after %s)", endpoint, models.ErrRateLimited, se.RetryAfter)
		case se.Code == http.StatusTooManyRequests:
			return fmt.Errorf("coingecko %s: %w", endpoint, models.ErrRateLimited)
		case se.Code == http.StatusNotFound:
			return fmt.Errorf("coingecko %s: %w", endpoint, models.ErrNotFound)
		}
	}
	return fmt.Errorf("coingecko %s: %w: %w", endpoint, models.ErrProviderUnavailable, err)
}

// NewHTTPClient builds the transport used against the API.
func NewHTTPClient(timeout time.Duration, userAgent, apiKeyHeader, apiKey string) *xhttp.Client {
	opts := []xhttp.ClientOption{
		xhttp.WithTimeout(util.DurationOrDefault(timeout, 15*time.Second)),
	}
	if userAgent != "" {
		opts = append(opts, xhttp.WithUserAgent(userAgent))
	}
	if apiKey != "" && apiKeyHeader != "" {
		opts = append(opts, xhttp.WithHeader(apiKeyHeader, apiKey))
	}
	return xhttp.NewClient(opts...)
}
