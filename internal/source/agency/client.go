package agency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"

	"creatorcore/internal/domain"
)

// ErrNotFound is returned by FetchByID when the upstream answers 404.
var ErrNotFound = errors.New("agency: record not found")

// Config holds fetch client configuration for one agency source.
type Config struct {
	Source    domain.AgencySource
	Timeout   time.Duration
	UserAgent string
	// BreakerFailures of BreakerWindow consecutive calls open the circuit for BreakerDelay.
	BreakerFailures uint
	BreakerWindow   uint
	BreakerDelay    time.Duration
}

// Client talks to one agency source's list and detail endpoints. Calls are not retried; a run
// that fails is picked up by the next scheduled invocation.
type Client struct {
	httpClient *http.Client
	source     domain.AgencySource
	baseURL    string
	userAgent  string
	executor   failsafe.Executor[*http.Response]
	breaker    circuitbreaker.CircuitBreaker[*http.Response]
	logger     *slog.Logger
}

// New creates a client for cfg.Source.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "CreatorCore/1.0"
	}
	if cfg.BreakerWindow == 0 {
		cfg.BreakerWindow = 10
	}
	if cfg.BreakerFailures == 0 || cfg.BreakerFailures > cfg.BreakerWindow {
		cfg.BreakerFailures = cfg.BreakerWindow / 2
	}
	if cfg.BreakerDelay == 0 {
		cfg.BreakerDelay = 30 * time.Second
	}

	logger = logger.With("source", cfg.Source.Key)

	breaker := circuitbreaker.NewBuilder[*http.Response]().
		HandleIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode >= http.StatusInternalServerError
		}).
		WithFailureThresholdRatio(cfg.BreakerFailures, cfg.BreakerWindow).
		WithDelay(cfg.BreakerDelay).
		WithSuccessThreshold(1).
		OnStateChanged(func(event circuitbreaker.StateChangedEvent) {
			logger.Warn("circuit breaker state change",
				"from", event.OldState.String(),
				"to", event.NewState.String(),
			)
		}).
		Build()

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		source:     cfg.Source,
		baseURL:    strings.TrimRight(cfg.Source.BaseEndpoint, "/"),
		userAgent:  cfg.UserAgent,
		executor:   failsafe.With[*http.Response](breaker),
		breaker:    breaker,
		logger:     logger,
	}
}

func (c *Client) SourceKey() string {
	return c.source.Key
}

// FetchPage requests one page of entity starting at cursor.
func (c *Client) FetchPage(ctx context.Context, entity domain.EntityType, cursor int64, limit int) (*domain.Page, error) {
	q := url.Values{}
	q.Set("cursor", strconv.FormatInt(cursor, 10))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, entity, q.Encode())

	var resp listResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	page := resp.toPage(cursor, limit)
	c.logger.Debug("fetched page",
		"entity", entity,
		"cursor", cursor,
		"results", len(page.Results),
		"remaining", page.Remaining,
		"next_cursor", page.NextCursor,
	)
	return page, nil
}

// FetchByID requests a single record. A 404 yields ErrNotFound.
func (c *Client) FetchByID(ctx context.Context, entity domain.EntityType, id string) (domain.RawRecord, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, entity, url.PathEscape(id))

	var rec domain.RawRecord
	if err := c.getJSON(ctx, endpoint, &rec); err != nil {
		return nil, err
	}
	return unwrapRecord(rec), nil
}

// FetchCampaigns walks campaign pages from cursor and collects every record.
func (c *Client) FetchCampaigns(ctx context.Context, cursor int64, limit, maxPages int) ([]domain.RawRecord, WalkResult, error) {
	return c.collect(ctx, domain.EntityCampaign, cursor, limit, maxPages)
}

// FetchPosts walks post pages from cursor and collects every record.
func (c *Client) FetchPosts(ctx context.Context, cursor int64, limit, maxPages int) ([]domain.RawRecord, WalkResult, error) {
	return c.collect(ctx, domain.EntityPost, cursor, limit, maxPages)
}

func (c *Client) collect(ctx context.Context, entity domain.EntityType, cursor int64, limit, maxPages int) ([]domain.RawRecord, WalkResult, error) {
	var all []domain.RawRecord
	res, err := Walk(ctx, c, entity, cursor, limit, maxPages, func(page *domain.Page) error {
		all = append(all, page.Results...)
		return nil
	})
	return all, res, err
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.executor.WithContext(ctx).Get(func() (*http.Response, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
