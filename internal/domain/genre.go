package domain

import "time"

type GenreEntity string

const (
	GenreEntityCampaign GenreEntity = "campaign"
	GenreEntityCreator  GenreEntity = "creator"
	GenreEntityTrack    GenreEntity = "track"
)

// Genre label provenance tags.
const (
	GenreSourceHeuristic      = "heuristic"
	GenreSourceCache          = "cache"
	GenreSourceCacheNegative  = "cache_negative"
	GenreSourceSearch         = "search"
	GenreSourceSearchNoResult = "search_no_result"
	GenreSourceSearchFailed   = "search_failed"
	GenreSourceNoArtist       = "no_artist_parse"
	GenreSourceBudget         = "search_budget_exhausted"
	GenreSourceCreatorRollup  = "creator_rollup"
)

type GenreLabel struct {
	EntityType GenreEntity `db:"entity_type"`
	EntityID   string      `db:"entity_id"`
	GenreID    string      `db:"genre_id"`
	Weight     float64     `db:"weight"`
	Confidence float64     `db:"confidence"`
	Source     string      `db:"source"`
	Evidence   string      `db:"evidence"`
}

// GenreCacheEntry records a past search for an artist. A nil Genre means the search found nothing.
type GenreCacheEntry struct {
	Artist     string    `db:"artist"`
	Genre      *string   `db:"genre"`
	Confidence float64   `db:"confidence"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Classification is the cascade outcome for one campaign.
type Classification struct {
	Genre      string
	GenreID    string
	Confidence float64
	Source     string
	Artist     string
	Evidence   string
}

type ClassificationRun struct {
	RunID        string    `db:"run_id"`
	StartedAt    time.Time `db:"started_at"`
	FinishedAt   time.Time `db:"finished_at"`
	Considered   int       `db:"considered"`
	Classified   int       `db:"classified"`
	Unclassified int       `db:"unclassified"`
	SearchCalls  int       `db:"search_calls"`
	CacheHits    int       `db:"cache_hits"`
	Failed       int       `db:"failed"`
}
