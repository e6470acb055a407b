package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
)

// lastTouched is the later of the last successful sync and the last hydration attempt, so
// campaigns that keep failing upstream drop behind the rest of the queue.
const lastTouched = "GREATEST(c.last_synced_at, COALESCE(c.last_hydration_attempt_at, c.last_synced_at))"

type SweepStore struct {
	db *sqlx.DB
}

func NewSweepStore(db *sqlx.DB) *SweepStore {
	return &SweepStore{db: db}
}

// PendingCandidates returns campaigns first seen within the horizon whose quality status is not
// ready, past the grace age on both first-seen and last-touched, ordered by recency tier
// (last 24h, last 7d, older) and then by how long ago they were last touched.
func (s *SweepStore) PendingCandidates(ctx context.Context, ac access.Context, q domain.PendingQuery) ([]domain.CampaignRef, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	cutoff := q.Now.Add(-q.MinAge)
	args := []any{
		q.Now.Add(-q.Horizon),
		cutoff,
		q.Now.Add(-24 * time.Hour),
		q.Now.Add(-7 * 24 * time.Hour),
		q.SourceKey,
		q.Limit,
	}
	pred, args := scoped(ac, "c.organization_id", args)

	query := `
		SELECT c.id, c.source_key, c.campaign_id, c.title, c.first_seen_at
		FROM campaigns c
		JOIN agency_sources s ON s.key = c.source_key AND s.active
		LEFT JOIN campaign_metrics m ON m.campaign_id = c.id
		WHERE c.first_seen_at >= $1
			AND c.first_seen_at <= $2
			AND ` + lastTouched + ` <= $2
			AND COALESCE(m.quality_status, 'missing_posts') <> 'ready'
			AND NOT c.is_test_data
			AND ($5::text = '' OR c.source_key = $5)
			AND ` + pred + `
		ORDER BY
			CASE
				WHEN c.first_seen_at >= $3 THEN 0
				WHEN c.first_seen_at >= $4 THEN 1
				ELSE 2
			END,
			` + lastTouched + ` ASC,
			c.id ASC
		LIMIT $6`

	var refs []domain.CampaignRef
	if err := getQueryer(ctx, s.db).SelectContext(ctx, &refs, query, args...); err != nil {
		return nil, fmt.Errorf("select pending campaigns: %w", err)
	}
	return refs, nil
}

// DiscoveryCandidates returns the least recently touched campaigns regardless of quality status.
func (s *SweepStore) DiscoveryCandidates(ctx context.Context, ac access.Context, q domain.DiscoveryQuery) ([]domain.CampaignRef, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	args := []any{q.Now.Add(-q.Stale), q.SourceKey, q.Limit}
	pred, args := scoped(ac, "c.organization_id", args)

	query := `
		SELECT c.id, c.source_key, c.campaign_id, c.title, c.first_seen_at
		FROM campaigns c
		JOIN agency_sources s ON s.key = c.source_key AND s.active
		WHERE ` + lastTouched + ` <= $1
			AND NOT c.is_test_data
			AND COALESCE(c.archived, FALSE) = FALSE
			AND ($2::text = '' OR c.source_key = $2)
			AND ` + pred + `
		ORDER BY ` + lastTouched + ` ASC, c.id ASC
		LIMIT $3`

	var refs []domain.CampaignRef
	if err := getQueryer(ctx, s.db).SelectContext(ctx, &refs, query, args...); err != nil {
		return nil, fmt.Errorf("select discovery campaigns: %w", err)
	}
	return refs, nil
}

// MarkAttempted stamps a hydration attempt on the given campaign rows before they are fetched.
func (s *SweepStore) MarkAttempted(ctx context.Context, ac access.Context, ids []int64, at time.Time) error {
	if err := ac.Validate(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	pred, args := scoped(ac, "c.organization_id", []any{pq.Array(ids), at})
	query := `
		UPDATE campaigns c
		SET last_hydration_attempt_at = $2
		WHERE c.id = ANY($1) AND ` + pred

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark hydration attempts: %w", err)
	}
	return nil
}
