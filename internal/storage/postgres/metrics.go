package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
)

const aggregateQuery = `
		SELECT
			c.id AS campaign_id,
			c.title,
			COALESCE(cardinality(c.platforms), 0) AS platform_count,
			c.first_seen_at,
			COUNT(p.id) AS actual_posts,
			COUNT(DISTINCT LOWER(p.username)) AS actual_creators,
			COALESCE(SUM(p.views), 0) AS total_views,
			COALESCE(SUM(p.views) FILTER (WHERE p.url_valid), 0) AS verified_views,
			COUNT(p.id) FILTER (WHERE p.url_valid) AS valid_url_posts,
			COUNT(p.id) FILTER (WHERE NOT p.url_valid) AS invalid_url_posts
		FROM campaigns c
		LEFT JOIN posts p ON p.campaign_id = c.id AND NOT p.is_test_data`

type MetricsStore struct {
	db        *sqlx.DB
	chunkSize int
}

func NewMetricsStore(db *sqlx.DB, chunkSize int) *MetricsStore {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &MetricsStore{db: db, chunkSize: chunkSize}
}

// Aggregates reads fresh post aggregates for the given campaign rows, or for every campaign
// visible to ac when ids is empty.
func (s *MetricsStore) Aggregates(ctx context.Context, ac access.Context, ids []int64) ([]domain.CampaignAggregate, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	var args []any
	where := "TRUE"
	if len(ids) > 0 {
		where = "c.id = ANY($1)"
		args = append(args, pq.Array(ids))
	}
	pred, args := scoped(ac, "c.organization_id", args)
	query := aggregateQuery + "\n\t\tWHERE " + where + " AND " + pred + "\n\t\tGROUP BY c.id"

	var aggs []domain.CampaignAggregate
	if err := getQueryer(ctx, s.db).SelectContext(ctx, &aggs, query, args...); err != nil {
		return nil, fmt.Errorf("aggregate campaign posts: %w", err)
	}
	return aggs, nil
}

// Save replaces the metrics rows for the given campaigns.
func (s *MetricsStore) Save(ctx context.Context, ac access.Context, metrics []domain.CampaignMetrics) error {
	if err := ac.RequireUnrestricted(); err != nil {
		return err
	}
	const cols = 9
	for _, chunk := range chunks(metrics, s.chunkSize) {
		args := make([]any, 0, len(chunk)*cols)
		for _, m := range chunk {
			args = append(args,
				m.CampaignID,
				m.ActualPosts,
				m.ActualCreators,
				m.TotalViews,
				m.VerifiedViews,
				m.ValidURLPosts,
				m.InvalidURLPosts,
				string(m.QualityStatus),
				m.ComputedAt,
			)
		}

		query := `
		INSERT INTO campaign_metrics (
			campaign_id, actual_posts, actual_creators, total_views, verified_views,
			valid_url_posts, invalid_url_posts, quality_status, computed_at
		) VALUES ` + valuesClause(len(chunk), cols, 0) + `
		ON CONFLICT (campaign_id) DO UPDATE SET
			actual_posts = EXCLUDED.actual_posts,
			actual_creators = EXCLUDED.actual_creators,
			total_views = EXCLUDED.total_views,
			verified_views = EXCLUDED.verified_views,
			valid_url_posts = EXCLUDED.valid_url_posts,
			invalid_url_posts = EXCLUDED.invalid_url_posts,
			quality_status = EXCLUDED.quality_status,
			computed_at = EXCLUDED.computed_at`

		if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save campaign metrics: %w", err)
		}
	}
	return nil
}
