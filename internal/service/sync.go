package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"creatorcore/internal/access"
	"creatorcore/internal/config"
	"creatorcore/internal/domain"
	"creatorcore/internal/metrics"
	"creatorcore/internal/normalize"
	"creatorcore/internal/source/agency"
)

// Stores bundles the persistence collaborators the services share.
type Stores struct {
	Sources   SourceRegistry
	Cursors   CursorStore
	Campaigns CampaignStore
	Posts     PostStore
	Creators  CreatorStore
	Sweeps    SweepStore
	Metrics   MetricsStore
	Stats     StatsStore
	Genres    GenreStore
	Runs      RunStore
	TxManager TransactionManager
}

// SyncOptions narrows a sync pass. Zero values use the configured bounds for every source.
type SyncOptions struct {
	Sources  []string
	MaxPages int
}

type SyncService struct {
	sources    []Source
	stores     Stores
	normalizer *normalize.Normalizer
	recorder   *metrics.Recorder
	logger     *slog.Logger
	config     config.SyncConfig
	now        func() time.Time
}

func NewSyncService(
	sources []Source,
	stores Stores,
	normalizer *normalize.Normalizer,
	recorder *metrics.Recorder,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *SyncService {
	return &SyncService{
		sources:    sources,
		stores:     stores,
		normalizer: normalizer,
		recorder:   recorder,
		logger:     logger.With("component", "sync"),
		config:     cfg,
		now:        time.Now,
	}
}

// SyncCampaigns walks the campaign list of every selected source from its cursor.
func (s *SyncService) SyncCampaigns(ctx context.Context, opts SyncOptions) (*domain.SyncResult, error) {
	maxPages := opts.MaxPages
	if maxPages == 0 {
		maxPages = s.config.CampaignPages
	}
	return s.syncAll(ctx, domain.EntityCampaign, opts.Sources, maxPages, s.config.CampaignLookbackRows, s.writeCampaigns)
}

// SyncPosts walks the post list of every selected source from its cursor and records creators.
func (s *SyncService) SyncPosts(ctx context.Context, opts SyncOptions) (*domain.SyncResult, error) {
	maxPages := opts.MaxPages
	if maxPages == 0 {
		maxPages = s.config.PostPages
	}
	return s.syncAll(ctx, domain.EntityPost, opts.Sources, maxPages, s.config.PostLookbackRows, s.writePosts)
}

// pageWriter persists one normalized page inside the page transaction.
type pageWriter func(ctx context.Context, sourceKey string, records []domain.RawRecord, now time.Time) (pageCounts, error)

type pageCounts struct {
	processed int
	malformed int
	counts    domain.UpsertCounts
}

func (s *SyncService) syncAll(ctx context.Context, entity domain.EntityType, keys []string, maxPages, lookback int, write pageWriter) (*domain.SyncResult, error) {
	result := domain.NewSyncResult(entity)
	for _, src := range selectSources(s.sources, keys) {
		res, err := s.syncSource(ctx, src, entity, maxPages, lookback, write)
		s.recorder.ObserveSync(entity, res)
		if res != nil {
			result.Add(res)
		}
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

// syncSource runs one pass for one source. Upstream failures end the pass and are reported on the
// result; store failures are returned.
func (s *SyncService) syncSource(ctx context.Context, src Source, entity domain.EntityType, maxPages, lookback int, write pageWriter) (*domain.SourceSyncResult, error) {
	startTime := time.Now()
	key := src.SourceKey()
	logger := s.logger.With("source", key, "entity", entity)

	cursor, err := s.stores.Cursors.Get(ctx, access.System(), entity, key)
	if err != nil {
		return nil, fmt.Errorf("get %s cursor for %s: %w", entity, key, err)
	}

	start := max(cursor.LastCursor-int64(lookback), 0)
	res := &domain.SourceSyncResult{SourceKey: key, Cursor: cursor.LastCursor}

	logger.Info("starting sync",
		"last_cursor", cursor.LastCursor,
		"start_cursor", start,
		"max_pages", maxPages,
	)

	var storeErr error
	walk, err := agency.Walk(ctx, src, entity, start, s.config.PageSize, maxPages, func(page *domain.Page) error {
		if len(page.Results) == 0 {
			return nil
		}
		now := s.now()
		var pc pageCounts
		var advanced *domain.SyncCursor
		err := s.stores.TxManager.WithTransaction(ctx, func(txCtx context.Context) error {
			var err error
			if pc, err = write(txCtx, key, page.Results, now); err != nil {
				return err
			}
			advanced, err = s.stores.Cursors.Advance(txCtx, access.System(), entity, key, page.NextCursor, now)
			if err != nil {
				return fmt.Errorf("advance cursor: %w", err)
			}
			return nil
		})
		if err != nil {
			storeErr = err
			return err
		}

		res.Processed += pc.processed
		res.Inserted += pc.counts.Inserted
		res.Updated += pc.counts.Updated
		res.Skipped += pc.counts.Skipped + pc.malformed
		res.Cursor = advanced.LastCursor

		logger.Debug("page committed",
			"next_cursor", page.NextCursor,
			"results", len(page.Results),
			"inserted", pc.counts.Inserted,
			"updated", pc.counts.Updated,
		)
		return nil
	})

	res.Pages = walk.Pages
	res.Fetched = walk.Fetched
	res.HasMore = walk.HasMore
	res.Duration = time.Since(startTime)

	switch {
	case storeErr != nil:
		res.Error = storeErr.Error()
		return res, fmt.Errorf("sync %s for %s: %w", entity, key, storeErr)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		res.Error = err.Error()
		return res, err
	case err != nil:
		res.Error = err.Error()
		res.HasMore = true
		logger.Warn("sync pass aborted by upstream failure", "error", err, "pages_committed", res.Pages)
	}

	logger.Info("sync completed",
		"cursor", res.Cursor,
		"pages", res.Pages,
		"fetched", res.Fetched,
		"inserted", res.Inserted,
		"updated", res.Updated,
		"skipped", res.Skipped,
		"has_more", res.HasMore,
		"duration", res.Duration,
	)

	return res, nil
}

func (s *SyncService) writeCampaigns(ctx context.Context, sourceKey string, records []domain.RawRecord, now time.Time) (pageCounts, error) {
	var pc pageCounts
	campaigns := make([]*domain.Campaign, 0, len(records))
	for _, raw := range records {
		c := s.normalizer.Campaign(raw, sourceKey)
		if c == nil {
			pc.malformed++
			continue
		}
		campaigns = append(campaigns, c)
	}
	pc.processed = len(campaigns)
	if len(campaigns) == 0 {
		return pc, nil
	}

	counts, err := s.stores.Campaigns.Upsert(ctx, access.System(), campaigns, now)
	if err != nil {
		return pc, fmt.Errorf("upsert campaigns: %w", err)
	}
	pc.counts = counts
	return pc, nil
}

func (s *SyncService) writePosts(ctx context.Context, sourceKey string, records []domain.RawRecord, now time.Time) (pageCounts, error) {
	var pc pageCounts
	posts := make([]*domain.Post, 0, len(records))
	for _, raw := range records {
		p := s.normalizer.Post(raw, sourceKey)
		if p == nil {
			pc.malformed++
			continue
		}
		posts = append(posts, p)
	}
	pc.processed = len(posts)
	if len(posts) == 0 {
		return pc, nil
	}

	counts, err := s.stores.Posts.Upsert(ctx, access.System(), posts, now)
	if err != nil {
		return pc, fmt.Errorf("upsert posts: %w", err)
	}
	pc.counts = counts

	if _, err := s.stores.Creators.RecordSeen(ctx, access.System(), usernames(posts), now); err != nil {
		return pc, fmt.Errorf("record creators: %w", err)
	}
	return pc, nil
}

func usernames(posts []*domain.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		if p.Username != nil && *p.Username != "" && !p.IsTestData {
			out = append(out, *p.Username)
		}
	}
	return out
}

// selectSources keeps sources whose key is listed; an empty list keeps all.
func selectSources(sources []Source, keys []string) []Source {
	if len(keys) == 0 {
		return sources
	}
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	var out []Source
	for _, src := range sources {
		if _, ok := want[src.SourceKey()]; ok {
			out = append(out, src)
		}
	}
	return out
}
