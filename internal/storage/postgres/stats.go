package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
)

type StatsStore struct {
	db *sqlx.DB
}

func NewStatsStore(db *sqlx.DB) *StatsStore {
	return &StatsStore{db: db}
}

// Organizations lists every organization id present on a campaign.
func (s *StatsStore) Organizations(ctx context.Context, ac access.Context) ([]string, error) {
	if err := ac.RequireUnrestricted(); err != nil {
		return nil, err
	}

	var orgs []string
	err := getQueryer(ctx, s.db).SelectContext(ctx, &orgs, `
		SELECT DISTINCT organization_id
		FROM campaigns
		WHERE organization_id IS NOT NULL AND organization_id <> ''
		ORDER BY organization_id`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

// Compute aggregates dashboard statistics live for the rows visible to ac.
func (s *StatsStore) Compute(ctx context.Context, ac access.Context, w domain.StatsWindow) (*domain.OrgDashboardStats, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}
	q := getQueryer(ctx, s.db)
	day := w.Now.Add(-24 * time.Hour)
	week := w.Now.Add(-7 * 24 * time.Hour)

	stats := &domain.OrgDashboardStats{OrganizationKey: ac.SnapshotKey(), ComputedAt: w.Now}

	var campaigns struct {
		Total   int `db:"total"`
		New24h  int `db:"new_24h"`
		New7d   int `db:"new_7d"`
		Review  int `db:"review"`
		Pending int `db:"pending"`
	}
	pred, args := scoped(ac, "c.organization_id", []any{day, week, w.Now.Add(-w.Horizon), w.Now.Add(-w.MinAge)})
	err := q.GetContext(ctx, &campaigns, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE c.first_seen_at >= $1) AS new_24h,
			COUNT(*) FILTER (WHERE c.first_seen_at >= $2) AS new_7d,
			COUNT(*) FILTER (WHERE c.first_seen_at >= $2 AND c.reviewed_at IS NULL) AS review,
			COUNT(*) FILTER (
				WHERE c.first_seen_at >= $3
					AND c.first_seen_at <= $4
					AND c.last_synced_at <= $4
					AND COALESCE(m.quality_status, 'missing_posts') <> 'ready'
			) AS pending
		FROM campaigns c
		LEFT JOIN campaign_metrics m ON m.campaign_id = c.id
		WHERE NOT c.is_test_data AND `+pred, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate campaigns: %w", err)
	}
	stats.TotalCampaigns = campaigns.Total
	stats.NewCampaigns24h = campaigns.New24h
	stats.NewCampaigns7d = campaigns.New7d
	stats.ReviewCampaigns = campaigns.Review
	stats.PendingCampaigns = campaigns.Pending

	var posts struct {
		Total    int   `db:"total"`
		Views    int64 `db:"views"`
		Verified int64 `db:"verified"`
	}
	pred, args = scoped(ac, "c.organization_id", nil)
	err = q.GetContext(ctx, &posts, `
		SELECT
			COUNT(p.id) AS total,
			COALESCE(SUM(p.views), 0) AS views,
			COALESCE(SUM(p.views) FILTER (WHERE p.url_valid), 0) AS verified
		FROM posts p
		JOIN campaigns c ON c.id = p.campaign_id
		WHERE NOT p.is_test_data AND NOT c.is_test_data AND `+pred, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate posts: %w", err)
	}
	stats.TotalPosts = posts.Total
	stats.TotalViews = posts.Views
	stats.VerifiedViews = posts.Verified

	var creators struct {
		Total  int `db:"total"`
		New24h int `db:"new_24h"`
		New7d  int `db:"new_7d"`
		Review int `db:"review"`
	}
	pred, args = scoped(ac, "c.organization_id", []any{day, week})
	err = q.GetContext(ctx, &creators, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE cr.first_seen_at >= $1) AS new_24h,
			COUNT(*) FILTER (WHERE cr.first_seen_at >= $2) AS new_7d,
			COUNT(*) FILTER (WHERE cr.first_seen_at >= $2 AND cr.reviewed_at IS NULL) AS review
		FROM creators cr
		WHERE EXISTS (
			SELECT 1
			FROM posts p
			JOIN campaigns c ON c.id = p.campaign_id
			WHERE LOWER(p.username) = cr.username AND NOT p.is_test_data AND `+pred+`
		)`, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate creators: %w", err)
	}
	stats.TotalCreators = creators.Total
	stats.NewCreators24h = creators.New24h
	stats.NewCreators7d = creators.New7d
	stats.ReviewCreators = creators.Review

	pred, args = scoped(ac, "c.organization_id", []any{w.TopN})
	if err := q.SelectContext(ctx, &stats.TopGenres, `
		SELECT COALESCE(c.genre, 'Unclassified') AS key, COUNT(*) AS count, COALESCE(SUM(m.total_views), 0) AS views
		FROM campaigns c
		LEFT JOIN campaign_metrics m ON m.campaign_id = c.id
		WHERE NOT c.is_test_data AND `+pred+`
		GROUP BY 1
		ORDER BY count DESC, views DESC, key
		LIMIT $1`, args...); err != nil {
		return nil, fmt.Errorf("aggregate genres: %w", err)
	}

	pred, args = scoped(ac, "c.organization_id", []any{w.TopN})
	if err := q.SelectContext(ctx, &stats.TopPlatforms, `
		SELECT p.platform AS key, COUNT(*) AS count, COALESCE(SUM(p.views), 0) AS views
		FROM posts p
		JOIN campaigns c ON c.id = p.campaign_id
		WHERE p.platform IS NOT NULL AND NOT p.is_test_data AND `+pred+`
		GROUP BY p.platform
		ORDER BY count DESC, views DESC, key
		LIMIT $1`, args...); err != nil {
		return nil, fmt.Errorf("aggregate platforms: %w", err)
	}

	return stats, nil
}

// Save stores the snapshot under its organization key.
func (s *StatsStore) Save(ctx context.Context, ac access.Context, stats *domain.OrgDashboardStats) error {
	if err := ac.RequireUnrestricted(); err != nil {
		return err
	}
	body, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode dashboard stats: %w", err)
	}
	_, err = GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO org_dashboard_stats (organization_key, stats, computed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_key) DO UPDATE SET
			stats = EXCLUDED.stats,
			computed_at = EXCLUDED.computed_at`,
		stats.OrganizationKey, string(body), stats.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("save dashboard stats %s: %w", stats.OrganizationKey, err)
	}
	return nil
}

// Get loads the snapshot for ac's scope, or nil when none exists.
func (s *StatsStore) Get(ctx context.Context, ac access.Context) (*domain.OrgDashboardStats, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}
	key := ac.SnapshotKey()

	var body []byte
	err := getQueryer(ctx, s.db).GetContext(ctx, &body,
		`SELECT stats FROM org_dashboard_stats WHERE organization_key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dashboard stats %s: %w", key, err)
	}

	var stats domain.OrgDashboardStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("decode dashboard stats %s: %w", key, err)
	}
	return &stats, nil
}
