package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
)

const defaultTimeout = 15 * time.Second

// Option tunes a provider's HTTP behaviour.
type Option func(*httpDoer)

func WithTimeout(d time.Duration) Option {
	return func(h *httpDoer) {
		if d > 0 {
			h.client.Timeout = d
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(h *httpDoer) {
		if c != nil {
			h.client = c
		}
	}
}

// httpDoer runs requests behind a circuit breaker so a failing search backend stops being
// called for the rest of a run instead of burning budget on timeouts.
type httpDoer struct {
	client   *http.Client
	executor failsafe.Executor[*http.Response]
}

func newHTTPDoer(opts ...Option) *httpDoer {
	breaker := circuitbreaker.NewBuilder[*http.Response]().
		HandleIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode >= http.StatusInternalServerError
		}).
		WithFailureThresholdRatio(3, 5).
		WithDelay(time.Minute).
		WithSuccessThreshold(1).
		Build()

	h := &httpDoer{
		client:   &http.Client{Timeout: defaultTimeout},
		executor: failsafe.With[*http.Response](breaker),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *httpDoer) getJSON(ctx context.Context, req *http.Request, name string, out any) error {
	resp, err := h.executor.WithContext(ctx).Get(func() (*http.Response, error) {
		return h.client.Do(req)
	})
	if err != nil {
		return fmt.Errorf("%s request failed: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s request failed with status %d", name, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	return nil
}
