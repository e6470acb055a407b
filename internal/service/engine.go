package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
	"creatorcore/internal/metrics"
)

// Event kinds published after runs.
const (
	EventFullSyncCompleted       = "sync.full.completed"
	EventPendingCompleted        = "sync.pending.completed"
	EventClassificationCompleted = "genre.classification.completed"
)

type FullSyncOptions struct {
	Sources            []string
	SkipClassification bool
}

// Engine runs the scheduled pipelines: registration, per-source sync and sweeps, then rollups.
type Engine struct {
	configured []domain.AgencySource
	stores     Stores
	sync       *SyncService
	sweep      *SweepService
	rollup     *RollupService
	classify   *ClassificationService
	publisher  Publisher
	recorder   *metrics.Recorder
	logger     *slog.Logger
	now        func() time.Time
}

// NewEngine wires the pipeline. classify and publisher may be nil.
func NewEngine(
	configured []domain.AgencySource,
	stores Stores,
	sync *SyncService,
	sweep *SweepService,
	rollup *RollupService,
	classify *ClassificationService,
	publisher Publisher,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		configured: configured,
		stores:     stores,
		sync:       sync,
		sweep:      sweep,
		rollup:     rollup,
		classify:   classify,
		publisher:  publisher,
		recorder:   recorder,
		logger:     logger.With("component", "engine"),
		now:        time.Now,
	}
}

// RegisterSources upserts the configured sources and deactivates the ones no longer configured.
func (e *Engine) RegisterSources(ctx context.Context) ([]domain.AgencySource, error) {
	ac := access.System()
	if err := e.stores.Sources.Register(ctx, ac, e.configured); err != nil {
		return nil, fmt.Errorf("register sources: %w", err)
	}

	keys := make([]string, 0, len(e.configured))
	for _, src := range e.configured {
		keys = append(keys, src.Key)
	}
	deactivated, err := e.stores.Sources.DeactivateMissing(ctx, ac, keys)
	if err != nil {
		return nil, fmt.Errorf("deactivate sources: %w", err)
	}
	if deactivated > 0 {
		e.logger.Info("deactivated unconfigured sources", "count", deactivated)
	}

	active, err := e.stores.Sources.Active(ctx, ac)
	if err != nil {
		return nil, fmt.Errorf("list active sources: %w", err)
	}
	return active, nil
}

// RunFullSync runs campaign sync, post sync, discovery and pending hydration once per active
// source, then refreshes metrics, genre labels and dashboards.
func (e *Engine) RunFullSync(ctx context.Context, opts FullSyncOptions) (res *domain.FullSyncResult, err error) {
	startTime := time.Now()
	defer func() { e.recorder.ObserveRun("full_sync", time.Since(startTime), err) }()

	active, err := e.RegisterSources(ctx)
	if err != nil {
		return nil, err
	}
	keys := filterKeys(active, opts.Sources)
	e.logger.Info("starting full sync", "sources", keys)

	res = &domain.FullSyncResult{
		Campaigns: domain.NewSyncResult(domain.EntityCampaign),
		Posts:     domain.NewSyncResult(domain.EntityPost),
	}

	for _, key := range keys {
		if err := e.syncSource(ctx, key, res); err != nil {
			res.Duration = time.Since(startTime)
			return res, err
		}
	}

	if _, err := e.rollup.RefreshCampaignMetrics(ctx, nil); err != nil {
		res.Duration = time.Since(startTime)
		return res, fmt.Errorf("refresh campaign metrics: %w", err)
	}

	if e.classify != nil && !opts.SkipClassification {
		classification, err := e.classify.Run(ctx, ClassifyOptions{})
		if err != nil {
			e.logger.Warn("genre classification failed", "error", err)
		}
		res.Classification = classification
	}

	if _, err := e.rollup.RefreshDashboards(ctx); err != nil {
		e.logger.Warn("dashboard refresh incomplete", "error", err)
	} else {
		refreshed := e.now()
		res.RollupsRefreshedAt = &refreshed
	}

	res.Duration = time.Since(startTime)
	e.publish(ctx, EventFullSyncCompleted, res)

	e.logger.Info("full sync completed",
		"campaigns_inserted", res.Campaigns.Inserted,
		"campaigns_updated", res.Campaigns.Updated,
		"posts_inserted", res.Posts.Inserted,
		"posts_updated", res.Posts.Updated,
		"new_creators", res.CreatorDiscovery.NewCreators+res.PendingHydration.NewCreators,
		"duration", res.Duration,
	)
	return res, nil
}

func (e *Engine) syncSource(ctx context.Context, key string, res *domain.FullSyncResult) error {
	only := []string{key}

	campaigns, err := e.sync.SyncCampaigns(ctx, SyncOptions{Sources: only})
	mergeSync(res.Campaigns, campaigns)
	if err != nil {
		return err
	}

	posts, err := e.sync.SyncPosts(ctx, SyncOptions{Sources: only})
	mergeSync(res.Posts, posts)
	if err != nil {
		return err
	}

	discovery, err := e.sweep.RunCreatorDiscoverySweep(ctx, SweepOptions{Sources: only})
	res.CreatorDiscovery.Add(discovery)
	if err != nil {
		return err
	}

	pending, err := e.sweep.RunPendingHydration(ctx, SweepOptions{Sources: only})
	res.PendingHydration.Add(pending)
	return err
}

// RunPending runs pending hydration across active sources; it is the frequent scheduled job.
func (e *Engine) RunPending(ctx context.Context) (res domain.SweepResult, err error) {
	startTime := time.Now()
	defer func() { e.recorder.ObserveRun("pending", time.Since(startTime), err) }()

	active, err := e.stores.Sources.Active(ctx, access.System())
	if err != nil {
		return res, fmt.Errorf("list active sources: %w", err)
	}
	keys := filterKeys(active, nil)
	if len(keys) == 0 {
		return res, nil
	}

	res, err = e.sweep.RunPendingHydration(ctx, SweepOptions{Sources: keys})
	if err != nil {
		return res, err
	}
	e.publish(ctx, EventPendingCompleted, res)
	return res, nil
}

// RunClassification runs a standalone classification pass.
func (e *Engine) RunClassification(ctx context.Context, opts ClassifyOptions) (res *domain.ClassificationResult, err error) {
	if e.classify == nil {
		return nil, fmt.Errorf("classification is not configured")
	}
	startTime := time.Now()
	defer func() { e.recorder.ObserveRun("classify", time.Since(startTime), err) }()

	res, err = e.classify.Run(ctx, opts)
	if err != nil {
		return res, err
	}
	e.publish(ctx, EventClassificationCompleted, res)
	return res, nil
}

// publish is best-effort; a broker outage never fails the run.
func (e *Engine) publish(ctx context.Context, kind string, payload any) {
	if e.publisher == nil {
		return
	}
	event := &domain.SyncEvent{
		RunID:     uuid.NewString(),
		Kind:      kind,
		Payload:   payload,
		Timestamp: e.now().UTC(),
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		e.logger.Warn("publish run summary failed", "kind", kind, "error", err)
	}
}

func mergeSync(into, from *domain.SyncResult) {
	if from == nil {
		return
	}
	for _, src := range from.Sources {
		into.Add(src)
	}
}

// filterKeys returns the keys of active sources, restricted to want when it is non-empty.
func filterKeys(active []domain.AgencySource, want []string) []string {
	allowed := make(map[string]struct{}, len(want))
	for _, k := range want {
		allowed[k] = struct{}{}
	}
	keys := make([]string, 0, len(active))
	for _, src := range active {
		if len(want) > 0 {
			if _, ok := allowed[src.Key]; !ok {
				continue
			}
		}
		keys = append(keys, src.Key)
	}
	return keys
}
