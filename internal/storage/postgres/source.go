package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
)

type SourceStore struct {
	db *sqlx.DB
}

func NewSourceStore(db *sqlx.DB) *SourceStore {
	return &SourceStore{db: db}
}

// Register upserts configured sources and marks them active.
func (s *SourceStore) Register(ctx context.Context, ac access.Context, sources []domain.AgencySource) error {
	if err := ac.RequireUnrestricted(); err != nil {
		return err
	}
	if len(sources) == 0 {
		return nil
	}

	args := make([]any, 0, len(sources)*3)
	for _, src := range sources {
		args = append(args, src.Key, src.Name, src.BaseEndpoint)
	}

	query := `
		INSERT INTO agency_sources (key, name, base_endpoint)
		VALUES ` + valuesClause(len(sources), 3, 0) + `
		ON CONFLICT (key) DO UPDATE SET
			name = EXCLUDED.name,
			base_endpoint = EXCLUDED.base_endpoint,
			active = TRUE,
			updated_at = NOW()`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("register sources: %w", err)
	}
	return nil
}

// DeactivateMissing flags every active source whose key is not in keys.
func (s *SourceStore) DeactivateMissing(ctx context.Context, ac access.Context, keys []string) (int64, error) {
	if err := ac.RequireUnrestricted(); err != nil {
		return 0, err
	}
	if keys == nil {
		keys = []string{}
	}

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		UPDATE agency_sources
		SET active = FALSE, updated_at = NOW()
		WHERE active AND NOT (key = ANY($1))`,
		pq.Array(keys),
	)
	if err != nil {
		return 0, fmt.Errorf("deactivate sources: %w", err)
	}
	return res.RowsAffected()
}

func (s *SourceStore) Active(ctx context.Context, ac access.Context) ([]domain.AgencySource, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	var sources []domain.AgencySource
	err := getQueryer(ctx, s.db).SelectContext(ctx, &sources, `
		SELECT id, key, name, base_endpoint, active, updated_at
		FROM agency_sources
		WHERE active
		ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list active sources: %w", err)
	}
	return sources, nil
}
