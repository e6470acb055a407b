package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
)

// CursorStore persists the resumable position per (entity, source).
type CursorStore struct {
	db *sqlx.DB
}

func NewCursorStore(db *sqlx.DB) *CursorStore {
	return &CursorStore{db: db}
}

func (s *CursorStore) Get(ctx context.Context, ac access.Context, entity domain.EntityType, sourceKey string) (*domain.SyncCursor, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	var cursor domain.SyncCursor
	query := `
		SELECT entity_type, source_key, last_cursor, last_synced_at, records_synced
		FROM sync_cursors
		WHERE entity_type = $1 AND source_key = $2`

	err := getQueryer(ctx, s.db).GetContext(ctx, &cursor, query, entity, sourceKey)
	if errors.Is(err, sql.ErrNoRows) {
		// New sources start at zero.
		return &domain.SyncCursor{EntityType: entity, SourceKey: sourceKey}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s cursor for %s: %w", entity, sourceKey, err)
	}
	return &cursor, nil
}

// Advance moves the cursor to max(stored, observed) and adds the advanced delta to
// records_synced. It never moves the cursor backwards.
func (s *CursorStore) Advance(ctx context.Context, ac access.Context, entity domain.EntityType, sourceKey string, observed int64, syncedAt time.Time) (*domain.SyncCursor, error) {
	if err := ac.RequireUnrestricted(); err != nil {
		return nil, err
	}
	if observed < 0 {
		observed = 0
	}

	query := `
		INSERT INTO sync_cursors (entity_type, source_key, last_cursor, last_synced_at, records_synced)
		VALUES ($1, $2, $3, $4, $3)
		ON CONFLICT (entity_type, source_key) DO UPDATE SET
			last_cursor = GREATEST(sync_cursors.last_cursor, EXCLUDED.last_cursor),
			last_synced_at = EXCLUDED.last_synced_at,
			records_synced = sync_cursors.records_synced
				+ GREATEST(EXCLUDED.last_cursor - sync_cursors.last_cursor, 0)
		RETURNING entity_type, source_key, last_cursor, last_synced_at, records_synced`

	var cursor domain.SyncCursor
	row := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query, entity, sourceKey, observed, syncedAt)
	if err := row.StructScan(&cursor); err != nil {
		return nil, fmt.Errorf("advance %s cursor for %s: %w", entity, sourceKey, err)
	}
	return &cursor, nil
}
