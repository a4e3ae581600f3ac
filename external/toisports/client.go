// Package toisports scrapes the Times of India IPL results and schedule
// pages. The pages are server-rendered HTML; there is no API, so the client
// combines polite retries, a circuit breaker and single-flight deduplication
// in front of the shared scrape paths.
package toisports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
	"github.com/wicketwatch/wicketwatch/internal/platform/resilience"
	"github.com/wicketwatch/wicketwatch/internal/usecase"
)

const (
	defaultBaseURL   = "https://timesofindia.indiatimes.com"
	resultsPath      = "/sports/cricket/ipl/results"
	schedulePath     = "/sports/cricket/ipl/schedule"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

	maxBodyBytes = 6 << 20
)

var errTransient = crerr.New("toisports transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	// FetchFixtureDetails controls the per-fixture detail page visit that
	// supplies head-to-head and prior-season numbers. Off means fixtures
	// come back with neutral signals only.
	FetchFixtureDetails bool
	Logger              *logging.Logger
	CircuitBreaker      resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	maxRetries     int
	fetchDetails   bool
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		userAgent:      userAgent,
		maxRetries:     max(cfg.MaxRetries, 0),
		fetchDetails:   cfg.FetchFixtureDetails,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchResults scrapes the results page. With since set, only matches whose
// date-time parses strictly after since are returned; rows whose date-time
// cannot be parsed are dropped, matching the page's occasional placeholder
// rows.
func (c *Client) FetchResults(ctx context.Context, since *time.Time) ([]usecase.RawMatchRecord, error) {
	doc, err := c.fetchDocument(ctx, resultsPath)
	if err != nil {
		return nil, fmt.Errorf("fetch results page: %w", err)
	}

	records := parseResults(doc)
	filtered := records[:0]
	for _, record := range records {
		when, err := dateparse.ParseAny(record.DateTime)
		if err != nil {
			continue
		}
		if since != nil && !when.After(*since) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered, nil
}

// FetchSchedule scrapes the schedule page and, when enabled, each fixture's
// detail page for head-to-head and prior-season numbers. A failed detail
// visit downgrades that fixture to neutral signals instead of failing the
// fetch.
func (c *Client) FetchSchedule(ctx context.Context, since *time.Time) ([]usecase.RawFixtureRecord, error) {
	doc, err := c.fetchDocument(ctx, schedulePath)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule page: %w", err)
	}

	entries := parseSchedule(doc)
	records := make([]usecase.RawFixtureRecord, 0, len(entries))
	for _, entry := range entries {
		when, err := dateparse.ParseAny(entry.record.DateTime)
		if err != nil {
			continue
		}
		if since != nil && !when.After(*since) {
			continue
		}

		record := entry.record
		if c.fetchDetails && entry.detailPath != "" {
			detailDoc, err := c.fetchDocument(ctx, entry.detailPath)
			if err != nil {
				c.logger.WarnContext(ctx, "fixture detail fetch failed, using neutral signals",
					"path", entry.detailPath,
					"error", err,
				)
			} else {
				record.HeadToHead, record.LastSeason = parseFixtureDetail(detailDoc, record.Team1, record.Team2)
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func (c *Client) fetchDocument(ctx context.Context, path string) (*goquery.Document, error) {
	fullURL := c.baseURL + path
	// The breaker is consulted inside the single flight: only the goroutine
	// that actually executes the upstream request reserves a half-open probe
	// slot, and the same goroutine always records the outcome that releases
	// it. Deduplicated callers share the result without touching the breaker.
	out, _, err := c.flight.Do(path, func() (any, error) {
		if c.circuitEnabled {
			if err := c.breaker.Allow(); err != nil {
				c.logger.WarnContext(ctx, "toisports circuit breaker rejected request", "state", c.breaker.State())
				return nil, fmt.Errorf("%w: upstream pages are temporarily unavailable", usecase.ErrDependencyUnavailable)
			}
		}
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected page payload type %T", out)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}
	return doc, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: page status=%d", errTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("page status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("page request failed")
	}
	c.logger.WarnContext(ctx, "toisports request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// readBody drains through a pooled buffer; the pages run to a few hundred
// kilobytes and refreshes recur on a schedule.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(body, maxBodyBytes)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
