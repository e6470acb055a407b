package agency

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorcore/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Config{
		Source: domain.AgencySource{Key: "agency-a", BaseEndpoint: srv.URL + "/"},
	}, logger)
}

func TestFetchPage_Envelopes(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		limit         int
		wantResults   int
		wantRemaining int
		wantNext      int64
	}{
		{
			name:          "results with next_cursor",
			body:          `{"results":[{"_id":"c1"},{"_id":"c2"}],"remaining":3,"next_cursor":42}`,
			limit:         2,
			wantResults:   2,
			wantRemaining: 3,
			wantNext:      42,
		},
		{
			name:          "data envelope with string cursor",
			body:          `{"data":[{"_id":"c1"}],"remaining":0,"cursor":"11"}`,
			limit:         5,
			wantResults:   1,
			wantRemaining: 0,
			wantNext:      11,
		},
		{
			name:          "items envelope without cursor advances by count",
			body:          `{"items":[{"_id":"c1"},{"_id":"c2"}],"remaining":1}`,
			limit:         2,
			wantResults:   2,
			wantRemaining: 1,
			wantNext:      12,
		},
		{
			name:          "missing remaining on full page assumes more",
			body:          `{"results":[{"_id":"c1"},{"_id":"c2"}]}`,
			limit:         2,
			wantResults:   2,
			wantRemaining: 1,
			wantNext:      12,
		},
		{
			name:          "missing remaining on short page is final",
			body:          `{"results":[{"_id":"c1"}]}`,
			limit:         2,
			wantResults:   1,
			wantRemaining: 0,
			wantNext:      11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotCursor, gotLimit string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotCursor = r.URL.Query().Get("cursor")
				gotLimit = r.URL.Query().Get("limit")
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, tt.body)
			})

			page, err := c.FetchPage(context.Background(), domain.EntityCampaign, 10, tt.limit)
			require.NoError(t, err)

			assert.Equal(t, "/campaign", gotPath)
			assert.Equal(t, "10", gotCursor)
			assert.Equal(t, strconv.Itoa(tt.limit), gotLimit)
			assert.Len(t, page.Results, tt.wantResults)
			assert.Equal(t, tt.wantRemaining, page.Remaining)
			assert.Equal(t, tt.wantNext, page.NextCursor)
		})
	}
}

func TestFetchPage_Non2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.FetchPage(context.Background(), domain.EntityPost, 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestFetchByID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/campaign/c1":
			_, _ = io.WriteString(w, `{"result":{"_id":"c1","title":"Summer Push","budget":{"amount":1200}}}`)
		case "/campaign/c2":
			_, _ = io.WriteString(w, `{"_id":"c2","title":"Bare"}`)
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()

	rec, err := c.FetchByID(ctx, domain.EntityCampaign, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Summer Push", rec["title"])

	rec, err = c.FetchByID(ctx, domain.EntityCampaign, "c2")
	require.NoError(t, err)
	assert.Equal(t, "Bare", rec["title"])

	_, err = c.FetchByID(ctx, domain.EntityCampaign, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchCampaigns_WalksUntilRemainingZero(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		cursor, _ := strconv.Atoi(r.URL.Query().Get("cursor"))
		remaining := 4 - (cursor + 2)
		if remaining < 0 {
			remaining = 0
		}
		_, _ = fmt.Fprintf(w, `{"results":[{"_id":"c%d"},{"_id":"c%d"}],"remaining":%d,"next_cursor":%d}`,
			cursor+1, cursor+2, remaining, cursor+2)
	})

	records, res, err := c.FetchCampaigns(context.Background(), 0, 2, 10)
	require.NoError(t, err)

	assert.Len(t, records, 4)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, int64(4), res.Cursor)
	assert.False(t, res.HasMore)
}

type stubFetcher struct {
	pages []*domain.Page
	err   error
	seen  []int64
}

func (s *stubFetcher) FetchPage(_ context.Context, _ domain.EntityType, cursor int64, _ int) (*domain.Page, error) {
	s.seen = append(s.seen, cursor)
	idx := len(s.seen) - 1
	if idx >= len(s.pages) {
		if s.err != nil {
			return nil, s.err
		}
		return &domain.Page{NextCursor: cursor}, nil
	}
	return s.pages[idx], nil
}

func records(n int) []domain.RawRecord {
	out := make([]domain.RawRecord, n)
	for i := range out {
		out[i] = domain.RawRecord{"_id": strconv.Itoa(i)}
	}
	return out
}

func TestWalk_StopsAtMaxPages(t *testing.T) {
	f := &stubFetcher{pages: []*domain.Page{
		{Results: records(2), Remaining: 10, NextCursor: 2},
		{Results: records(2), Remaining: 8, NextCursor: 4},
		{Results: records(2), Remaining: 6, NextCursor: 6},
	}}

	visited := 0
	res, err := Walk(context.Background(), f, domain.EntityPost, 0, 2, 2, func(p *domain.Page) error {
		visited++
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, visited)
	assert.Equal(t, []int64{0, 2}, f.seen)
	assert.Equal(t, int64(4), res.Cursor)
	assert.True(t, res.HasMore)
}

func TestWalk_EmptyPageEndsWithoutAdvancing(t *testing.T) {
	f := &stubFetcher{}

	res, err := Walk(context.Background(), f, domain.EntityCampaign, 7, 100, 5, func(*domain.Page) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 0, res.Fetched)
	assert.Equal(t, int64(7), res.Cursor)
	assert.False(t, res.HasMore)
}

func TestWalk_StuckCursorStops(t *testing.T) {
	f := &stubFetcher{pages: []*domain.Page{
		{Results: records(1), Remaining: 5, NextCursor: 3},
		{Results: records(1), Remaining: 5, NextCursor: 3},
	}}

	res, err := Walk(context.Background(), f, domain.EntityCampaign, 0, 1, 0, func(*domain.Page) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
}

func TestWalk_ErrorKeepsVisitedPages(t *testing.T) {
	upstream := errors.New("connection reset")
	f := &stubFetcher{
		pages: []*domain.Page{{Results: records(3), Remaining: 1, NextCursor: 3}},
		err:   upstream,
	}

	visited := 0
	res, err := Walk(context.Background(), f, domain.EntityPost, 0, 3, 5, func(*domain.Page) error {
		visited++
		return nil
	})
	require.ErrorIs(t, err, upstream)

	assert.Equal(t, 1, visited)
	assert.Equal(t, int64(3), res.Cursor)
}
