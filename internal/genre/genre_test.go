package genre

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorcore/internal/domain"
	"creatorcore/internal/search"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]domain.GenreCacheEntry
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]domain.GenreCacheEntry{}}
}

func (m *memoryCache) GetArtistGenre(_ context.Context, artist string) (*domain.GenreCacheEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	e, ok := m.entries[artist]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memoryCache) PutArtistGenre(_ context.Context, entry domain.GenreCacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Artist] = entry
	return nil
}

type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	results []search.Result
	err     error
}

func (f *fakeProvider) Search(_ context.Context, _ string, _ search.SearchOptions) ([]search.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.results, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassify_DJNovaResolvesViaSearch(t *testing.T) {
	cache := newMemoryCache()
	provider := &fakeProvider{results: []search.Result{
		{Title: "DJ Nova", Content: "EDM artist and electronic act with a hint of rap"},
	}}
	c := NewClassifier(cache, provider, discard())

	_, matched := MatchTitle("DJ Nova — Festival Drop")
	require.False(t, matched)

	budget := NewBudget(3)
	got := c.Classify(context.Background(), "DJ Nova — Festival Drop", budget)

	assert.Equal(t, "Electronic/EDM", got.Genre)
	assert.Equal(t, Electronic.ID, got.GenreID)
	assert.Equal(t, 0.9, got.Confidence)
	assert.Equal(t, domain.GenreSourceSearch, got.Source)
	assert.Equal(t, "DJ Nova", got.Artist)
	assert.Equal(t, "score=5.0 runner_up=1.0", got.Evidence)
	assert.Equal(t, 1, budget.Used())

	entry, ok := cache.entries["dj nova"]
	require.True(t, ok)
	require.NotNil(t, entry.Genre)
	assert.Equal(t, "Electronic/EDM", *entry.Genre)
	assert.Equal(t, 0.9, entry.Confidence)

	// Second pass is served from cache.
	again := c.Classify(context.Background(), "DJ Nova — Festival Drop", budget)
	assert.Equal(t, domain.GenreSourceCache, again.Source)
	assert.Equal(t, 1, provider.calls)
}

func TestClassify_HeuristicNeverSearches(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("must not be called")
	provider := &fakeProvider{}
	c := NewClassifier(cache, provider, discard())

	budget := NewBudget(5)
	got := c.Classify(context.Background(), "Drake - New Single Push", budget)

	assert.Equal(t, domain.GenreSourceHeuristic, got.Source)
	assert.Equal(t, HipHop.Name, got.Genre)
	assert.Equal(t, 0.9, got.Confidence)
	assert.Equal(t, 0, budget.Used())
	assert.Equal(t, 0, provider.calls)
}

func TestClassify_CascadeOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		seed       map[string]*string
		provider   *fakeProvider
		budget     int
		wantSource string
		wantCached bool
	}{
		{
			name:       "no artist parse",
			title:      "Summer Push",
			provider:   &fakeProvider{},
			budget:     5,
			wantSource: domain.GenreSourceNoArtist,
		},
		{
			name:       "negative cache short-circuits",
			title:      "Nobody Known - Launch",
			seed:       map[string]*string{"nobody known": nil},
			provider:   &fakeProvider{},
			budget:     5,
			wantSource: domain.GenreSourceCacheNegative,
		},
		{
			name:       "search failure is not cached",
			title:      "Mystery Act - Teaser",
			provider:   &fakeProvider{err: errors.New("timeout")},
			budget:     5,
			wantSource: domain.GenreSourceSearchFailed,
		},
		{
			name:       "empty search caches null",
			title:      "Mystery Act - Teaser",
			provider:   &fakeProvider{},
			budget:     5,
			wantSource: domain.GenreSourceSearchNoResult,
			wantCached: true,
		},
		{
			name:       "zero budget",
			title:      "Mystery Act - Teaser",
			provider:   &fakeProvider{},
			budget:     0,
			wantSource: domain.GenreSourceBudget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newMemoryCache()
			for k, v := range tt.seed {
				cache.entries[k] = domain.GenreCacheEntry{Artist: k, Genre: v}
			}
			c := NewClassifier(cache, tt.provider, discard())

			got := c.Classify(context.Background(), tt.title, NewBudget(tt.budget))

			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, Unclassified.Name, got.Genre)
			assert.False(t, IsClassified(got))
			if tt.wantCached {
				entry, ok := cache.entries["mystery act"]
				require.True(t, ok)
				assert.Nil(t, entry.Genre)
			} else if tt.seed == nil {
				assert.Empty(t, cache.entries)
			}
		})
	}
}

func TestClassify_DisabledSearch(t *testing.T) {
	c := NewClassifier(newMemoryCache(), nil, discard())
	got := c.Classify(context.Background(), "Mystery Act - Teaser", NewBudget(10))
	assert.Equal(t, domain.GenreSourceBudget, got.Source)
}

func TestClassify_SearchBudgetBoundsCalls(t *testing.T) {
	provider := &fakeProvider{results: []search.Result{{Title: "x", Content: "jazz saxophonist"}}}
	c := NewClassifier(newMemoryCache(), provider, discard())

	const n, k = 7, 3
	budget := NewBudget(k)
	bySource := map[string]int{}
	for i := 0; i < n; i++ {
		got := c.Classify(context.Background(), fmt.Sprintf("Artist Number%d - Single", i), budget)
		bySource[got.Source]++
	}

	assert.Equal(t, k, bySource[domain.GenreSourceSearch])
	assert.Equal(t, n-k, bySource[domain.GenreSourceBudget])
	assert.Equal(t, k, provider.calls)
}

func TestBudget_ConcurrentTake(t *testing.T) {
	b := NewBudget(10)
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Take() {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, granted)
	assert.Equal(t, 0, b.Remaining())
}

func TestMatchTitle(t *testing.T) {
	tests := []struct {
		title     string
		wantGenre Genre
		wantLevel Level
		wantOK    bool
	}{
		{"Bad Bunny - Tour Teaser", Latin, LevelHigh, true},
		{"New reggaeton summer anthem", Latin, LevelMedium, true},
		{"Late night R&B vibes", RnB, LevelMedium, true},
		{"K-Pop dance challenge", KPop, LevelMedium, true},
		{"Amapiano wave", Afrobeats, LevelMedium, true},
		{"Moshpit challenge", Metal, LevelLow, true},
		{"Strapped in", Genre{}, LevelNone, false},
		{"DJ Nova — Festival Drop", Genre{}, LevelNone, false},
		{"", Genre{}, LevelNone, false},
		{"Twice the reach promo", Genre{}, LevelNone, false},
		{"Back to the future sale", Genre{}, LevelNone, false},
		{"Twice - Strategy (Official MV)", KPop, LevelHigh, true},
		{"Future x Metro Boomin - Like That", HipHop, LevelHigh, true},
		{"Usher: Coming Home Tour", RnB, LevelHigh, true},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := MatchTitle(tt.title)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantGenre, got.Genre)
				assert.Equal(t, tt.wantLevel, got.Level)
			}
		})
	}
}

func TestExtractArtist(t *testing.T) {
	tests := []struct {
		title  string
		want   string
		wantOK bool
	}{
		{"DJ Nova — Festival Drop", "DJ Nova", true},
		{"Luna Vale - Midnight (Official Video)", "Luna Vale", true},
		{"Kai Ro ft. Mira: Summer Single", "Kai Ro", true},
		{`"Golden Hour" by Sol Harbor`, "Sol Harbor", true},
		{"Campaign - Launch", "", false},
		{"Summer Push", "", false},
		{"123 - 456", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := ExtractArtist(tt.title)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "dj nova", CacheKey("  DJ   Nova "))
}

func TestTier(t *testing.T) {
	tests := []struct {
		name   string
		totals map[Genre]float64
		want   Level
	}{
		{"clear winner", map[Genre]float64{Electronic: 5, HipHop: 1}, LevelHigh},
		{"close race", map[Genre]float64{Electronic: 5, HipHop: 3}, LevelMedium},
		{"weak", map[Genre]float64{Jazz: 1}, LevelLow},
		{"nothing", map[Genre]float64{}, LevelNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tier(tt.totals).Level)
		})
	}
}

func TestClassify_CommonWordIsNotAnArtistHit(t *testing.T) {
	c := NewClassifier(newMemoryCache(), nil, discard())

	got := c.Classify(context.Background(), "Twice the reach promo", NewBudget(1))

	assert.Equal(t, domain.GenreSourceNoArtist, got.Source)
	assert.Equal(t, Unclassified.ID, got.GenreID)
	assert.Zero(t, got.Confidence)
}
