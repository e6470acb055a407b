package genre

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"creatorcore/internal/domain"
	"creatorcore/internal/search"
)

const defaultResultLimit = 5

// Cache stores past artist searches keyed by lowercased artist name. Get returns nil, nil on miss.
type Cache interface {
	GetArtistGenre(ctx context.Context, artist string) (*domain.GenreCacheEntry, error)
	PutArtistGenre(ctx context.Context, entry domain.GenreCacheEntry) error
}

// Classifier runs the heuristic, cache and search cascade for one title at a time.
type Classifier struct {
	cache       Cache
	provider    search.Provider
	resultLimit int
	now         func() time.Time
	logger      *slog.Logger
}

// NewClassifier builds a classifier. A nil provider disables the search tier.
func NewClassifier(cache Cache, provider search.Provider, logger *slog.Logger) *Classifier {
	return &Classifier{
		cache:       cache,
		provider:    provider,
		resultLimit: defaultResultLimit,
		now:         time.Now,
		logger:      logger.With("component", "genre"),
	}
}

// Classify resolves a genre for title. It never fails: cache and search problems degrade to
// Unclassified with a source tag naming the tier that gave up.
func (c *Classifier) Classify(ctx context.Context, title string, budget *Budget) domain.Classification {
	if h, ok := MatchTitle(title); ok {
		return resolved(h.Genre, h.Level.Confidence(), domain.GenreSourceHeuristic, "", "term="+h.Term)
	}

	artist, ok := ExtractArtist(title)
	if !ok {
		return unclassified(domain.GenreSourceNoArtist, "", "")
	}
	key := CacheKey(artist)

	if c.cache != nil {
		entry, err := c.cache.GetArtistGenre(ctx, key)
		if err != nil {
			c.logger.Warn("genre cache lookup failed", "artist", key, "error", err)
		} else if entry != nil {
			return fromCache(entry, artist)
		}
	}

	if c.provider == nil || budget == nil || !budget.Take() {
		return unclassified(domain.GenreSourceBudget, artist, "")
	}

	results, err := c.provider.Search(ctx, fmt.Sprintf("%s music artist genre", artist), search.SearchOptions{Limit: c.resultLimit})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.logger.Debug("genre search canceled", "artist", key)
		} else {
			c.logger.Warn("genre search failed", "artist", key, "error", err)
		}
		return unclassified(domain.GenreSourceSearchFailed, artist, err.Error())
	}

	score := ScoreResults(results)
	entry := domain.GenreCacheEntry{Artist: key, UpdatedAt: c.now()}
	if score.Found() {
		name := score.Genre.Name
		entry.Genre = &name
		entry.Confidence = score.Level.Confidence()
	}
	if c.cache != nil {
		if err := c.cache.PutArtistGenre(ctx, entry); err != nil {
			c.logger.Warn("genre cache write failed", "artist", key, "error", err)
		}
	}

	if !score.Found() {
		return unclassified(domain.GenreSourceSearchNoResult, artist, fmt.Sprintf("results=%d", len(results)))
	}
	return resolved(score.Genre, score.Level.Confidence(), domain.GenreSourceSearch, artist, score.Evidence())
}

func fromCache(entry *domain.GenreCacheEntry, artist string) domain.Classification {
	if entry.Genre == nil {
		return unclassified(domain.GenreSourceCacheNegative, artist, "")
	}
	g, ok := Lookup(*entry.Genre)
	if !ok || g == Unclassified {
		return unclassified(domain.GenreSourceCacheNegative, artist, "cached="+*entry.Genre)
	}
	return resolved(g, entry.Confidence, domain.GenreSourceCache, artist, "")
}

func resolved(g Genre, confidence float64, source, artist, evidence string) domain.Classification {
	return domain.Classification{
		Genre:      g.Name,
		GenreID:    g.ID,
		Confidence: confidence,
		Source:     source,
		Artist:     artist,
		Evidence:   evidence,
	}
}

func unclassified(source, artist, evidence string) domain.Classification {
	return domain.Classification{
		Genre:    Unclassified.Name,
		GenreID:  Unclassified.ID,
		Source:   source,
		Artist:   artist,
		Evidence: evidence,
	}
}

// IsClassified reports whether c carries a real genre.
func IsClassified(c domain.Classification) bool {
	return c.GenreID != "" && c.GenreID != Unclassified.ID
}
