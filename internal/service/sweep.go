package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"creatorcore/internal/access"
	"creatorcore/internal/config"
	"creatorcore/internal/domain"
	"creatorcore/internal/metrics"
	"creatorcore/internal/normalize"
	"creatorcore/internal/source/agency"
)

const (
	sweepPending   = "pending"
	sweepDiscovery = "discovery"
)

// SweepOptions narrows a sweep. Zero values use the configured limit for every source.
type SweepOptions struct {
	Sources []string
	Limit   int
}

// SweepService re-fetches individual campaigns and a bounded slice of their posts.
type SweepService struct {
	sources    []Source
	stores     Stores
	rollup     *RollupService
	normalizer *normalize.Normalizer
	recorder   *metrics.Recorder
	logger     *slog.Logger
	config     config.SweepConfig
	now        func() time.Time
}

func NewSweepService(
	sources []Source,
	stores Stores,
	rollup *RollupService,
	normalizer *normalize.Normalizer,
	recorder *metrics.Recorder,
	logger *slog.Logger,
	cfg config.SweepConfig,
) *SweepService {
	return &SweepService{
		sources:    sources,
		stores:     stores,
		rollup:     rollup,
		normalizer: normalizer,
		recorder:   recorder,
		logger:     logger.With("component", "sweep"),
		config:     cfg,
		now:        time.Now,
	}
}

// RunPendingHydration targets recent campaigns that are not ready yet.
func (s *SweepService) RunPendingHydration(ctx context.Context, opts SweepOptions) (domain.SweepResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.config.PendingLimit
	}
	return s.run(ctx, sweepPending, opts.Sources, func(ctx context.Context, sourceKey string) ([]domain.CampaignRef, error) {
		return s.stores.Sweeps.PendingCandidates(ctx, access.System(), domain.PendingQuery{
			SourceKey: sourceKey,
			Now:       s.now(),
			MinAge:    s.config.PendingMinAge,
			Horizon:   s.config.PendingHorizon,
			Limit:     limit,
		})
	})
}

// RunCreatorDiscoverySweep targets campaigns not synced recently, whatever their quality status.
func (s *SweepService) RunCreatorDiscoverySweep(ctx context.Context, opts SweepOptions) (domain.SweepResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.config.DiscoveryLimit
	}
	return s.run(ctx, sweepDiscovery, opts.Sources, func(ctx context.Context, sourceKey string) ([]domain.CampaignRef, error) {
		return s.stores.Sweeps.DiscoveryCandidates(ctx, access.System(), domain.DiscoveryQuery{
			SourceKey: sourceKey,
			Now:       s.now(),
			Stale:     s.config.DiscoveryStale,
			Limit:     limit,
		})
	})
}

type candidateFunc func(ctx context.Context, sourceKey string) ([]domain.CampaignRef, error)

func (s *SweepService) run(ctx context.Context, kind string, keys []string, candidates candidateFunc) (domain.SweepResult, error) {
	startTime := time.Now()
	var total domain.SweepResult
	var touched []int64

	for _, src := range selectSources(s.sources, keys) {
		refs, err := candidates(ctx, src.SourceKey())
		if err != nil {
			return total, fmt.Errorf("select %s candidates for %s: %w", kind, src.SourceKey(), err)
		}
		if len(refs) == 0 {
			continue
		}

		res, ids, err := s.hydrate(ctx, src, refs)
		total.Add(res)
		touched = append(touched, ids...)
		if err != nil {
			return total, fmt.Errorf("%s sweep for %s: %w", kind, src.SourceKey(), err)
		}
	}

	if len(touched) > 0 && s.rollup != nil {
		if _, err := s.rollup.RefreshCampaignMetrics(ctx, uniqueIDs(touched)); err != nil {
			s.logger.Warn("metrics refresh after sweep failed", "sweep", kind, "error", err)
		}
	}

	s.recorder.ObserveSweep(kind, total)
	s.logger.Info("sweep completed",
		"sweep", kind,
		"eligible", total.Eligible,
		"fetched", total.Fetched,
		"failed", total.Failed,
		"post_fetched", total.PostFetched,
		"post_failed", total.PostFailed,
		"new_creators", total.NewCreators,
		"duration", time.Since(startTime),
	)
	return total, nil
}

type postJob struct {
	campaignID string
	postID     string
}

// hydrate re-fetches refs and then their posts through the worker pool, and writes both.
func (s *SweepService) hydrate(ctx context.Context, src Source, refs []domain.CampaignRef) (domain.SweepResult, []int64, error) {
	key := src.SourceKey()
	logger := s.logger.With("source", key)
	res := domain.SweepResult{Eligible: len(refs)}

	ids := make([]int64, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	if err := s.stores.Sweeps.MarkAttempted(ctx, access.System(), ids, s.now()); err != nil {
		return res, nil, fmt.Errorf("mark hydration attempts: %w", err)
	}

	var (
		mu        sync.Mutex
		campaigns []*domain.Campaign
		jobs      []postJob
	)

	err := drain(ctx, s.config.FetchConcurrency, refs, func(ctx context.Context, ref domain.CampaignRef) {
		raw, err := src.FetchByID(ctx, domain.EntityCampaign, ref.CampaignID)
		if err != nil {
			mu.Lock()
			res.Failed++
			mu.Unlock()
			if errors.Is(err, agency.ErrNotFound) {
				logger.Debug("campaign gone upstream", "campaign_id", ref.CampaignID)
			} else {
				logger.Warn("campaign hydration failed", "campaign_id", ref.CampaignID, "error", err)
			}
			return
		}

		c := s.normalizer.Campaign(raw, key)
		if c == nil {
			mu.Lock()
			res.Fetched++
			res.Skipped++
			mu.Unlock()
			return
		}

		postIDs := c.PostRefs
		if len(postIDs) == 0 {
			stored, err := s.stores.Posts.PostIDsForCampaign(ctx, access.System(), ref.ID, s.config.PostFetchLimit)
			if err != nil {
				logger.Warn("list stored posts failed", "campaign_id", ref.CampaignID, "error", err)
			}
			postIDs = stored
		}
		if len(postIDs) > s.config.PostFetchLimit {
			postIDs = postIDs[:s.config.PostFetchLimit]
		}

		mu.Lock()
		defer mu.Unlock()
		res.Fetched++
		campaigns = append(campaigns, c)
		for _, id := range postIDs {
			jobs = append(jobs, postJob{campaignID: c.CampaignID, postID: id})
		}
	})
	if err != nil {
		return res, nil, err
	}

	now := s.now()
	var touched []int64
	if len(campaigns) > 0 {
		counts, err := s.stores.Campaigns.Upsert(ctx, access.System(), campaigns, now)
		if err != nil {
			return res, nil, fmt.Errorf("upsert campaigns: %w", err)
		}
		res.Inserted += counts.Inserted
		res.Updated += counts.Updated
		res.Skipped += counts.Skipped
		touched = append(touched, counts.CampaignIDs...)
	}

	var posts []*domain.Post
	err = drain(ctx, s.config.FetchConcurrency, jobs, func(ctx context.Context, job postJob) {
		raw, err := src.FetchByID(ctx, domain.EntityPost, job.postID)
		if err != nil {
			mu.Lock()
			res.PostFailed++
			mu.Unlock()
			if !errors.Is(err, agency.ErrNotFound) {
				logger.Warn("post hydration failed", "post_id", job.postID, "error", err)
			}
			return
		}

		p := s.normalizer.Post(raw, key)
		mu.Lock()
		defer mu.Unlock()
		res.PostFetched++
		if p == nil {
			res.PostSkipped++
			return
		}
		if p.CampaignRef == "" {
			p.CampaignRef = job.campaignID
		}
		posts = append(posts, p)
	})
	if err != nil {
		return res, touched, err
	}

	if len(posts) > 0 {
		counts, err := s.stores.Posts.Upsert(ctx, access.System(), posts, now)
		if err != nil {
			return res, touched, fmt.Errorf("upsert posts: %w", err)
		}
		res.PostInserted += counts.Inserted
		res.PostUpdated += counts.Updated
		res.PostSkipped += counts.Skipped
		touched = append(touched, counts.CampaignIDs...)

		fresh, err := s.stores.Creators.RecordSeen(ctx, access.System(), usernames(posts), now)
		if err != nil {
			return res, touched, fmt.Errorf("record creators: %w", err)
		}
		res.NewCreators += fresh
	}

	return res, touched, nil
}

// drain runs fn over items with at most workers goroutines pulling from a shared queue. Items
// still queued when ctx ends are dropped and ctx's error is returned.
func drain[T any](ctx context.Context, workers int, items []T, fn func(ctx context.Context, item T)) error {
	if len(items) == 0 {
		return nil
	}
	workers = max(1, min(workers, len(items)))

	queue := make(chan T, len(items))
	for _, item := range items {
		queue <- item
	}
	close(queue)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for range workers {
		g.Go(func() error {
			for item := range queue {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(gctx, item)
			}
			return nil
		})
	}
	return g.Wait()
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
