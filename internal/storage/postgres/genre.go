package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
)

// retryableSources are unclassified outcomes worth another attempt on a later run.
var retryableSources = []string{domain.GenreSourceBudget, domain.GenreSourceSearchFailed}

// titleSources are unclassified outcomes that depend only on the title, retried once the
// title differs from the one that was classified.
var titleSources = []string{domain.GenreSourceNoArtist, domain.GenreSourceSearchNoResult, domain.GenreSourceCacheNegative}

type GenreStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewGenreStore(db *sqlx.DB) *GenreStore {
	return &GenreStore{db: db, tm: NewTransactionManager(db)}
}

// GetArtistGenre returns the cached search outcome for artist, or nil when never searched.
func (s *GenreStore) GetArtistGenre(ctx context.Context, artist string) (*domain.GenreCacheEntry, error) {
	var entry domain.GenreCacheEntry
	err := getQueryer(ctx, s.db).GetContext(ctx, &entry, `
		SELECT artist, genre, confidence, updated_at
		FROM genre_cache
		WHERE artist = LOWER($1)`, artist)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get artist genre: %w", err)
	}
	return &entry, nil
}

func (s *GenreStore) PutArtistGenre(ctx context.Context, entry domain.GenreCacheEntry) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO genre_cache (artist, genre, confidence, updated_at)
		VALUES (LOWER($1), $2, $3, $4)
		ON CONFLICT (artist) DO UPDATE SET
			genre = EXCLUDED.genre,
			confidence = EXCLUDED.confidence,
			updated_at = EXCLUDED.updated_at`,
		entry.Artist, entry.Genre, entry.Confidence, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put artist genre: %w", err)
	}
	return nil
}

// UnclassifiedCampaigns lists campaigns without a genre, those left unclassified by an exhausted
// budget or a failed search, and those whose title changed since an unclassified outcome,
// newest first.
func (s *GenreStore) UnclassifiedCampaigns(ctx context.Context, ac access.Context, limit int) ([]domain.CampaignRef, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	pred, args := scoped(ac, "organization_id", []any{pq.Array(retryableSources), pq.Array(titleSources), limit})
	var refs []domain.CampaignRef
	err := getQueryer(ctx, s.db).SelectContext(ctx, &refs, `
		SELECT id, source_key, campaign_id, title, first_seen_at
		FROM campaigns
		WHERE NOT is_test_data
			AND (
				genre IS NULL
				OR genre_source = ANY($1)
				OR (genre_source = ANY($2) AND title IS DISTINCT FROM genre_title)
			)
			AND `+pred+`
		ORDER BY first_seen_at DESC, id DESC
		LIMIT $3`, args...)
	if err != nil {
		return nil, fmt.Errorf("select unclassified campaigns: %w", err)
	}
	return refs, nil
}

// SaveCampaignClassification writes the primary genre fields, the title they were derived from
// and, for a resolved genre, the campaign's single weight-1.0 label row.
func (s *GenreStore) SaveCampaignClassification(ctx context.Context, ac access.Context, campaignID int64, title string, c domain.Classification, classified bool) error {
	if err := ac.RequireUnrestricted(); err != nil {
		return err
	}
	entityID := strconv.FormatInt(campaignID, 10)

	return s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, s.db)

		if _, err := exec.ExecContext(ctx, `
			UPDATE campaigns
			SET genre = $2, genre_id = $3, genre_confidence = $4, genre_source = $5, genre_title = $6
			WHERE id = $1`,
			campaignID, c.Genre, c.GenreID, c.Confidence, c.Source, title,
		); err != nil {
			return fmt.Errorf("update campaign genre: %w", err)
		}

		if _, err := exec.ExecContext(ctx, `
			DELETE FROM entity_genre_labels
			WHERE entity_type = $1 AND entity_id = $2 AND genre_id <> $3`,
			domain.GenreEntityCampaign, entityID, c.GenreID,
		); err != nil {
			return fmt.Errorf("clear campaign labels: %w", err)
		}

		if !classified {
			return nil
		}

		if _, err := exec.ExecContext(ctx, `
			INSERT INTO entity_genre_labels (entity_type, entity_id, genre_id, weight, confidence, source, evidence, updated_at)
			VALUES ($1, $2, $3, 1.0, $4, $5, $6, NOW())
			ON CONFLICT (entity_type, entity_id, genre_id) DO UPDATE SET
				weight = EXCLUDED.weight,
				confidence = EXCLUDED.confidence,
				source = EXCLUDED.source,
				evidence = EXCLUDED.evidence,
				updated_at = EXCLUDED.updated_at`,
			domain.GenreEntityCampaign, entityID, c.GenreID, c.Confidence, c.Source, c.Evidence,
		); err != nil {
			return fmt.Errorf("write campaign label: %w", err)
		}
		return nil
	})
}

// RollupCreatorGenres rebuilds creator labels from campaign labels: each post contributes its
// campaign's label weights to the post's creator, and each creator's weights are divided by the
// creator's total. Returns the number of label rows written.
func (s *GenreStore) RollupCreatorGenres(ctx context.Context, ac access.Context) (int64, error) {
	if err := ac.RequireUnrestricted(); err != nil {
		return 0, err
	}

	var written int64
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, s.db)

		if _, err := exec.ExecContext(ctx,
			`DELETE FROM entity_genre_labels WHERE entity_type = $1`, domain.GenreEntityCreator,
		); err != nil {
			return fmt.Errorf("clear creator labels: %w", err)
		}

		res, err := exec.ExecContext(ctx, `
			WITH weights AS (
				SELECT
					LOWER(p.username) AS username,
					l.genre_id,
					SUM(l.weight) AS weight,
					SUM(l.weight * l.confidence) AS weighted_confidence
				FROM posts p
				JOIN entity_genre_labels l
					ON l.entity_type = 'campaign' AND l.entity_id = p.campaign_id::text
				WHERE p.username IS NOT NULL AND p.username <> '' AND NOT p.is_test_data
				GROUP BY LOWER(p.username), l.genre_id
			), totals AS (
				SELECT username, SUM(weight) AS total FROM weights GROUP BY username
			)
			INSERT INTO entity_genre_labels (entity_type, entity_id, genre_id, weight, confidence, source, evidence, updated_at)
			SELECT
				$1,
				w.username,
				w.genre_id,
				w.weight / t.total,
				w.weighted_confidence / w.weight,
				$2,
				'campaign_weight=' || w.weight::text,
				NOW()
			FROM weights w
			JOIN totals t USING (username)
			WHERE t.total > 0 AND w.weight > 0`,
			domain.GenreEntityCreator, domain.GenreSourceCreatorRollup,
		)
		if err != nil {
			return fmt.Errorf("insert creator labels: %w", err)
		}
		written, err = res.RowsAffected()
		return err
	})
	return written, err
}

type RunStore struct {
	db *sqlx.DB
}

func NewRunStore(db *sqlx.DB) *RunStore {
	return &RunStore{db: db}
}

func (s *RunStore) SaveRun(ctx context.Context, ac access.Context, run domain.ClassificationRun) error {
	if err := ac.RequireUnrestricted(); err != nil {
		return err
	}
	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), `
		INSERT INTO classification_runs (
			run_id, started_at, finished_at, considered, classified, unclassified,
			search_calls, cache_hits, failed
		) VALUES (
			:run_id, :started_at, :finished_at, :considered, :classified, :unclassified,
			:search_calls, :cache_hits, :failed
		)
		ON CONFLICT (run_id) DO NOTHING`, run)
	if err != nil {
		return fmt.Errorf("save classification run: %w", err)
	}
	return nil
}
