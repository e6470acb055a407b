package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"creatorcore/internal/access"
)

type CreatorStore struct {
	db *sqlx.DB
}

func NewCreatorStore(db *sqlx.DB) *CreatorStore {
	return &CreatorStore{db: db}
}

// RecordSeen upserts creators by lowercased username and returns how many were new. Creators
// are shared across organizations, so only unrestricted callers may write them.
func (s *CreatorStore) RecordSeen(ctx context.Context, ac access.Context, usernames []string, seenAt time.Time) (int, error) {
	if err := ac.RequireUnrestricted(); err != nil {
		return 0, err
	}
	names := make([]string, 0, len(usernames))
	for _, u := range usernames {
		if u = strings.ToLower(strings.TrimSpace(u)); u != "" {
			names = append(names, u)
		}
	}
	if len(names) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO creators (username, first_seen_at, last_seen_at)
		SELECT DISTINCT u, $2::timestamptz, $2::timestamptz FROM unnest($1::text[]) AS u
		ON CONFLICT (username) DO UPDATE SET
			last_seen_at = GREATEST(creators.last_seen_at, EXCLUDED.last_seen_at)
		RETURNING (xmax = 0) AS inserted`

	var inserted []bool
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &inserted, query, pq.Array(names), seenAt); err != nil {
		return 0, fmt.Errorf("record creators: %w", err)
	}

	created := 0
	for _, ok := range inserted {
		if ok {
			created++
		}
	}
	return created, nil
}
