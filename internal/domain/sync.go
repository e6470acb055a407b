package domain

import "time"

type SyncCursor struct {
	EntityType    EntityType `db:"entity_type"`
	SourceKey     string     `db:"source_key"`
	LastCursor    int64      `db:"last_cursor"`
	LastSyncedAt  time.Time  `db:"last_synced_at"`
	RecordsSynced int64      `db:"records_synced"`
}

// UpsertCounts splits written rows by whether they existed before the write.
type UpsertCounts struct {
	Inserted int
	Updated  int
	Skipped  int
	// CampaignIDs lists the row ids touched by the write.
	CampaignIDs []int64
}

func (c *UpsertCounts) Add(o UpsertCounts) {
	c.Inserted += o.Inserted
	c.Updated += o.Updated
	c.Skipped += o.Skipped
	c.CampaignIDs = append(c.CampaignIDs, o.CampaignIDs...)
}

// SourceSyncResult holds statistics about one sync pass for one source.
type SourceSyncResult struct {
	SourceKey string        `json:"source_key"`
	Cursor    int64         `json:"cursor"`
	Pages     int           `json:"pages"`
	Fetched   int           `json:"fetched"`
	Processed int           `json:"processed"`
	Inserted  int           `json:"inserted"`
	Updated   int           `json:"updated"`
	Skipped   int           `json:"skipped"`
	HasMore   bool          `json:"has_more"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// SyncResult aggregates per-source passes for one entity type.
type SyncResult struct {
	Entity    EntityType                   `json:"entity"`
	Sources   map[string]*SourceSyncResult `json:"sources"`
	Pages     int                          `json:"pages"`
	Fetched   int                          `json:"fetched"`
	Processed int                          `json:"processed"`
	Inserted  int                          `json:"inserted"`
	Updated   int                          `json:"updated"`
	Skipped   int                          `json:"skipped"`
	HasMore   bool                         `json:"has_more"`
}

func NewSyncResult(entity EntityType) *SyncResult {
	return &SyncResult{Entity: entity, Sources: make(map[string]*SourceSyncResult)}
}

func (r *SyncResult) Add(s *SourceSyncResult) {
	r.Sources[s.SourceKey] = s
	r.Pages += s.Pages
	r.Fetched += s.Fetched
	r.Processed += s.Processed
	r.Inserted += s.Inserted
	r.Updated += s.Updated
	r.Skipped += s.Skipped
	r.HasMore = r.HasMore || s.HasMore
}

type SweepResult struct {
	Eligible     int `json:"eligible"`
	Fetched      int `json:"fetched"`
	Inserted     int `json:"inserted"`
	Updated      int `json:"updated"`
	Skipped      int `json:"skipped"`
	Failed       int `json:"failed"`
	PostFetched  int `json:"post_fetched"`
	PostInserted int `json:"post_inserted"`
	PostUpdated  int `json:"post_updated"`
	PostSkipped  int `json:"post_skipped"`
	PostFailed   int `json:"post_failed"`
	NewCreators  int `json:"new_creators"`
}

func (r *SweepResult) Add(o SweepResult) {
	r.Eligible += o.Eligible
	r.Fetched += o.Fetched
	r.Inserted += o.Inserted
	r.Updated += o.Updated
	r.Skipped += o.Skipped
	r.Failed += o.Failed
	r.PostFetched += o.PostFetched
	r.PostInserted += o.PostInserted
	r.PostUpdated += o.PostUpdated
	r.PostSkipped += o.PostSkipped
	r.PostFailed += o.PostFailed
	r.NewCreators += o.NewCreators
}

type ClassificationResult struct {
	RunID        string         `json:"run_id"`
	Considered   int            `json:"considered"`
	Classified   int            `json:"classified"`
	Unclassified int            `json:"unclassified"`
	SearchCalls  int            `json:"search_calls"`
	CacheHits    int            `json:"cache_hits"`
	Failed       int            `json:"failed"`
	BySource     map[string]int `json:"by_source"`
	CreatorRows  int            `json:"creator_rows"`
}

type FullSyncResult struct {
	Campaigns          *SyncResult           `json:"campaigns"`
	Posts              *SyncResult           `json:"posts"`
	CreatorDiscovery   SweepResult           `json:"creator_discovery"`
	PendingHydration   SweepResult           `json:"pending_hydration"`
	Classification     *ClassificationResult `json:"classification,omitempty"`
	RollupsRefreshedAt *time.Time            `json:"rollups_refreshed_at,omitempty"`
	Duration           time.Duration         `json:"duration"`
}

// SyncEvent is the summary published after a run completes.
type SyncEvent struct {
	RunID     string    `json:"run_id"`
	Kind      string    `json:"kind"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}
