package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
)

const defaultChunkSize = 250

type CampaignStore struct {
	db        *sqlx.DB
	tm        *TransactionManager
	chunkSize int
}

func NewCampaignStore(db *sqlx.DB, chunkSize int) *CampaignStore {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &CampaignStore{db: db, tm: NewTransactionManager(db), chunkSize: chunkSize}
}

// Upsert merges campaigns keyed on (source_key, campaign_id), one transaction per chunk.
// Campaigns owned by an organization outside ac are skipped.
func (s *CampaignStore) Upsert(ctx context.Context, ac access.Context, campaigns []*domain.Campaign, now time.Time) (domain.UpsertCounts, error) {
	var counts domain.UpsertCounts
	if err := ac.Validate(); err != nil {
		return counts, err
	}

	rows := make([]*domain.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c == nil || !ac.Permits(c.OrganizationID) {
			counts.Skipped++
			continue
		}
		rows = append(rows, c)
	}

	unique := collapseCampaigns(rows)
	counts.Skipped += len(rows) - len(unique)

	for _, chunk := range chunks(unique, s.chunkSize) {
		var chunkCounts domain.UpsertCounts
		err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
			var err error
			chunkCounts, err = s.upsertChunk(ctx, ac, chunk, now)
			if err != nil {
				return err
			}
			return s.resolveSlugCollisions(ctx, chunkCounts.CampaignIDs)
		})
		if err != nil {
			return counts, fmt.Errorf("upsert campaigns: %w", err)
		}
		counts.Add(chunkCounts)
	}

	return counts, nil
}

func (s *CampaignStore) upsertChunk(ctx context.Context, ac access.Context, chunk []*domain.Campaign, now time.Time) (domain.UpsertCounts, error) {
	var counts domain.UpsertCounts
	cols := campaignTable.Columns()

	args := make([]any, 0, len(chunk)*len(cols))
	for _, c := range chunk {
		args = append(args,
			c.SourceKey,
			c.CampaignID,
			c.Slug,
			c.SlugIsFallback,
			c.Title,
			c.Budget,
			c.Currency,
			c.OrganizationID,
			pq.Array(c.Platforms),
			c.Archived,
			c.CreatorCount,
			c.TotalPosts,
			c.ThumbnailURL,
			c.APICostUSD,
			pq.Array(c.PostRefs),
			c.IsTestData,
			now,
			now,
			now,
		)
	}

	guard := ""
	if !ac.Unrestricted() {
		var pred string
		pred, args = scoped(ac, "campaigns.organization_id", args)
		guard = "\n\t\tWHERE " + pred
	}

	query := fmt.Sprintf(`
		INSERT INTO campaigns (%s)
		VALUES %s
		ON CONFLICT (source_key, campaign_id) DO UPDATE SET
			%s%s
		RETURNING id, (xmax = 0) AS inserted`,
		strings.Join(cols, ", "), valuesClause(len(chunk), len(cols), 0), campaignTable.SetClause(), guard,
	)

	result, err := GetExecutor(ctx, s.db).QueryxContext(ctx, query, args...)
	if err != nil {
		return counts, err
	}
	defer result.Close()

	for result.Next() {
		var id int64
		var inserted bool
		if err := result.Scan(&id, &inserted); err != nil {
			return counts, err
		}
		if inserted {
			counts.Inserted++
		} else {
			counts.Updated++
		}
		counts.CampaignIDs = append(counts.CampaignIDs, id)
	}
	if err := result.Err(); err != nil {
		return counts, err
	}

	// Rows the scope guard refused to update come back without a RETURNING row.
	counts.Skipped = len(chunk) - counts.Inserted - counts.Updated
	return counts, nil
}

// resolveSlugCollisions keeps the lowest id on a shared slug and suffixes every other holder
// with its own id.
func (s *CampaignStore) resolveSlugCollisions(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query := `
		UPDATE campaigns c
		SET slug = c.slug || '-' || c.id
		FROM (
			SELECT id, ROW_NUMBER() OVER (PARTITION BY slug ORDER BY id) AS rn
			FROM campaigns
			WHERE slug IN (SELECT slug FROM campaigns WHERE id = ANY($1))
		) dup
		WHERE c.id = dup.id AND dup.rn > 1`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("resolve slug collisions: %w", err)
	}
	return nil
}

// Get loads a campaign reference by natural key.
func (s *CampaignStore) Get(ctx context.Context, ac access.Context, sourceKey, campaignID string) (*domain.CampaignRef, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}
	pred, args := scoped(ac, "organization_id", []any{sourceKey, campaignID})

	var ref domain.CampaignRef
	err := getQueryer(ctx, s.db).GetContext(ctx, &ref, `
		SELECT id, source_key, campaign_id, title, first_seen_at
		FROM campaigns
		WHERE source_key = $1 AND campaign_id = $2 AND `+pred, args...)
	if err != nil {
		return nil, fmt.Errorf("get campaign %s/%s: %w", sourceKey, campaignID, err)
	}
	return &ref, nil
}

// collapseCampaigns keeps the last occurrence of each (source_key, campaign_id).
func collapseCampaigns(in []*domain.Campaign) []*domain.Campaign {
	type key struct{ source, id string }
	pos := make(map[key]int, len(in))
	out := make([]*domain.Campaign, 0, len(in))
	for _, c := range in {
		k := key{c.SourceKey, c.CampaignID}
		if i, ok := pos[k]; ok {
			out[i] = c
			continue
		}
		pos[k] = len(out)
		out = append(out, c)
	}
	return out
}
