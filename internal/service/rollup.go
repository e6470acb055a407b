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
)

// RollupService recomputes campaign metrics and dashboard snapshots, and serves the read paths
// that depend on them.
type RollupService struct {
	stores  Stores
	logger  *slog.Logger
	grace   time.Duration
	minAge  time.Duration
	horizon time.Duration
	topN    int
	now     func() time.Time
}

func NewRollupService(stores Stores, logger *slog.Logger, cfg *config.Config) *RollupService {
	return &RollupService{
		stores:  stores,
		logger:  logger.With("component", "rollup"),
		grace:   cfg.Quality.MetadataGrace,
		minAge:  cfg.Sweep.PendingMinAge,
		horizon: cfg.Sweep.PendingHorizon,
		topN:    cfg.Rollup.TopN,
		now:     time.Now,
	}
}

// RefreshCampaignMetrics recomputes metrics and quality status from current post rows. An empty
// ids slice refreshes every campaign.
func (s *RollupService) RefreshCampaignMetrics(ctx context.Context, ids []int64) (int, error) {
	aggs, err := s.stores.Metrics.Aggregates(ctx, access.System(), ids)
	if err != nil {
		return 0, fmt.Errorf("load campaign aggregates: %w", err)
	}
	if len(aggs) == 0 {
		return 0, nil
	}

	now := s.now()
	rows := make([]domain.CampaignMetrics, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, domain.MetricsFromAggregate(agg, now, s.grace))
	}

	if err := s.stores.Metrics.Save(ctx, access.System(), rows); err != nil {
		return 0, fmt.Errorf("save campaign metrics: %w", err)
	}
	s.logger.Debug("campaign metrics refreshed", "campaigns", len(rows))
	return len(rows), nil
}

// RefreshDashboards rebuilds one snapshot per organization, one for unassigned rows and one
// global snapshot. Failures for one scope do not stop the others.
func (s *RollupService) RefreshDashboards(ctx context.Context) (int, error) {
	orgs, err := s.stores.Stats.Organizations(ctx, access.System())
	if err != nil {
		return 0, fmt.Errorf("list organizations: %w", err)
	}

	scopes := make([]access.Context, 0, len(orgs)+2)
	for _, org := range orgs {
		scopes = append(scopes, access.ForOrganization(org))
	}
	scopes = append(scopes, access.ForOrganization(access.Unassigned), access.System())

	window := s.window()
	var errs []error
	saved := 0
	for _, ac := range scopes {
		stats, err := s.stores.Stats.Compute(ctx, ac, window)
		if err == nil {
			err = s.stores.Stats.Save(ctx, access.System(), stats)
		}
		if err != nil {
			s.logger.Warn("dashboard refresh failed", "scope", ac.String(), "error", err)
			errs = append(errs, err)
			continue
		}
		saved++
	}

	s.logger.Info("dashboards refreshed", "snapshots", saved, "failed", len(errs))
	return saved, errors.Join(errs...)
}

// DashboardStats serves the stored snapshot for ac, computing live when it is missing or empty.
func (s *RollupService) DashboardStats(ctx context.Context, ac access.Context) (*domain.OrgDashboardStats, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := s.stores.Stats.Get(ctx, ac)
	if err != nil {
		s.logger.Warn("dashboard snapshot unavailable", "scope", ac.String(), "error", err)
	}
	if !snapshot.Empty() {
		return snapshot, nil
	}

	stats, err := s.stores.Stats.Compute(ctx, ac, s.window())
	if err != nil {
		return nil, fmt.Errorf("compute dashboard stats: %w", err)
	}
	return stats, nil
}

// ListCampaigns is the filtered campaign listing for dashboard callers.
func (s *RollupService) ListCampaigns(ctx context.Context, ac access.Context, f domain.CampaignFilter) ([]domain.CampaignListItem, error) {
	return s.stores.Campaigns.ListCampaigns(ctx, ac, f, s.now())
}

func (s *RollupService) window() domain.StatsWindow {
	return domain.StatsWindow{Now: s.now(), MinAge: s.minAge, Horizon: s.horizon, TopN: s.topN}
}
