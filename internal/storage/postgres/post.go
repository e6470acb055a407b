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
	"creatorcore/internal/normalize"
)

type PostStore struct {
	db        *sqlx.DB
	tm        *TransactionManager
	chunkSize int
}

func NewPostStore(db *sqlx.DB, chunkSize int) *PostStore {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &PostStore{db: db, tm: NewTransactionManager(db), chunkSize: chunkSize}
}

// Upsert merges posts keyed on canonical_key. An incoming post without a link inherits the link
// already stored for its (source_key, post_id), so a dropped URL never changes its key. A stored
// post whose (source_key, post_id) now hashes to a different key is re-keyed first, unless
// another row already holds that key, in which case the two are merged into the existing
// holder. CampaignIDs in the result lists the campaign rows the posts belong to.
func (s *PostStore) Upsert(ctx context.Context, ac access.Context, posts []*domain.Post, now time.Time) (domain.UpsertCounts, error) {
	var counts domain.UpsertCounts
	if err := ac.Validate(); err != nil {
		return counts, err
	}

	valid := make([]*domain.Post, 0, len(posts))
	for _, p := range posts {
		if p == nil || p.CanonicalKey == "" {
			counts.Skipped++
			continue
		}
		valid = append(valid, p)
	}

	valid, err := s.inheritStoredURLs(ctx, valid)
	if err != nil {
		return counts, err
	}

	unique := collapsePosts(valid)
	counts.Skipped += len(valid) - len(unique)
	if len(unique) == 0 {
		return counts, nil
	}

	campaignIDs, err := s.resolveCampaigns(ctx, ac, unique)
	if err != nil {
		return counts, err
	}

	rows := make([]*domain.Post, 0, len(unique))
	for _, p := range unique {
		// Scoped writers may only attach posts to campaigns they can see.
		if !ac.Unrestricted() {
			if _, ok := campaignIDs[campaignKey{p.SourceKey, p.CampaignRef}]; !ok {
				counts.Skipped++
				continue
			}
		}
		rows = append(rows, p)
	}

	touched := make(map[int64]struct{})
	for _, chunk := range chunks(rows, s.chunkSize) {
		var chunkCounts domain.UpsertCounts
		err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.rekey(ctx, chunk); err != nil {
				return err
			}
			var err error
			chunkCounts, err = s.upsertChunk(ctx, chunk, campaignIDs, now)
			return err
		})
		if err != nil {
			return counts, fmt.Errorf("upsert posts: %w", err)
		}
		for _, id := range chunkCounts.CampaignIDs {
			touched[id] = struct{}{}
		}
		chunkCounts.CampaignIDs = nil
		counts.Add(chunkCounts)
	}

	for id := range touched {
		counts.CampaignIDs = append(counts.CampaignIDs, id)
	}
	return counts, nil
}

type campaignKey struct {
	source string
	id     string
}

type postKey struct {
	source string
	id     string
}

func (s *PostStore) resolveCampaigns(ctx context.Context, ac access.Context, posts []*domain.Post) (map[campaignKey]int64, error) {
	sources := map[string]struct{}{}
	refs := map[string]struct{}{}
	for _, p := range posts {
		if p.CampaignRef == "" {
			continue
		}
		sources[p.SourceKey] = struct{}{}
		refs[p.CampaignRef] = struct{}{}
	}
	out := make(map[campaignKey]int64)
	if len(refs) == 0 {
		return out, nil
	}

	pred, args := scoped(ac, "organization_id", []any{pq.Array(setKeys(sources)), pq.Array(setKeys(refs))})
	query := `
		SELECT id, source_key, campaign_id
		FROM campaigns
		WHERE source_key = ANY($1) AND campaign_id = ANY($2) AND ` + pred

	rows, err := GetExecutor(ctx, s.db).QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve post campaigns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var k campaignKey
		if err := rows.Scan(&id, &k.source, &k.id); err != nil {
			return nil, fmt.Errorf("scan post campaign: %w", err)
		}
		out[k] = id
	}
	return out, rows.Err()
}

// inheritStoredURLs fills the link of posts that arrived without one from the stored row and
// recomputes the link flags and canonical key from it.
func (s *PostStore) inheritStoredURLs(ctx context.Context, posts []*domain.Post) ([]*domain.Post, error) {
	var sources, ids []string
	for _, p := range posts {
		if p.URL == nil || strings.TrimSpace(*p.URL) == "" {
			sources = append(sources, p.SourceKey)
			ids = append(ids, p.PostID)
		}
	}
	if len(ids) == 0 {
		return posts, nil
	}

	query := `
		SELECT p.source_key, p.post_id, p.url
		FROM posts p
		JOIN unnest($1::text[], $2::text[]) AS v(source_key, post_id)
			ON p.source_key = v.source_key AND p.post_id = v.post_id
		WHERE p.url IS NOT NULL AND p.url <> ''`

	rows, err := getQueryer(ctx, s.db).QueryxContext(ctx, query, pq.Array(sources), pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load stored post urls: %w", err)
	}
	defer rows.Close()

	stored := make(map[postKey]string)
	for rows.Next() {
		var k postKey
		var link string
		if err := rows.Scan(&k.source, &k.id, &link); err != nil {
			return nil, fmt.Errorf("scan stored post url: %w", err)
		}
		stored[k] = link
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load stored post urls: %w", err)
	}
	if len(stored) == 0 {
		return posts, nil
	}

	out := make([]*domain.Post, len(posts))
	for i, p := range posts {
		out[i] = p
		link, ok := stored[postKey{p.SourceKey, p.PostID}]
		if !ok || (p.URL != nil && strings.TrimSpace(*p.URL) != "") {
			continue
		}
		next := *p
		next.URL = &link
		next.URLReason = normalize.ClassifyURL(link)
		next.URLValid = next.URLReason == domain.URLValid
		if next.Platform == nil {
			if platform := normalize.PlatformFromURL(link); platform != "" {
				next.Platform = &platform
			}
		}
		next.CanonicalKey = normalize.CanonicalKey(&next)
		out[i] = &next
	}
	return out, nil
}

// rekey moves stored rows onto their new canonical keys. A move blocked by a row that itself
// moves later in the same chunk succeeds on the next pass, so passes repeat until none changes.
func (s *PostStore) rekey(ctx context.Context, chunk []*domain.Post) error {
	sources := make([]string, len(chunk))
	ids := make([]string, len(chunk))
	keys := make([]string, len(chunk))
	for i, p := range chunk {
		sources[i], ids[i], keys[i] = p.SourceKey, p.PostID, p.CanonicalKey
	}

	query := `
		UPDATE posts p
		SET canonical_key = v.canonical_key
		FROM unnest($1::text[], $2::text[], $3::text[]) AS v(source_key, post_id, canonical_key)
		WHERE p.source_key = v.source_key
			AND p.post_id = v.post_id
			AND p.canonical_key <> v.canonical_key
			AND NOT EXISTS (SELECT 1 FROM posts o WHERE o.canonical_key = v.canonical_key)`

	for pass := 0; pass <= len(chunk); pass++ {
		res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, pq.Array(sources), pq.Array(ids), pq.Array(keys))
		if err != nil {
			return fmt.Errorf("rekey posts: %w", err)
		}
		moved, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rekey posts: %w", err)
		}
		if moved == 0 {
			return nil
		}
	}
	return nil
}

func (s *PostStore) upsertChunk(ctx context.Context, chunk []*domain.Post, campaignIDs map[campaignKey]int64, now time.Time) (domain.UpsertCounts, error) {
	var counts domain.UpsertCounts
	cols := postTable.Columns()

	args := make([]any, 0, len(chunk)*len(cols))
	for _, p := range chunk {
		var campaignID *int64
		if id, ok := campaignIDs[campaignKey{p.SourceKey, p.CampaignRef}]; ok {
			campaignID = &id
		}
		args = append(args,
			p.SourceKey,
			p.PostID,
			p.CanonicalKey,
			campaignID,
			p.Username,
			p.Platform,
			p.URL,
			p.URLValid,
			string(p.URLReason),
			p.Views,
			p.PostDate,
			p.Status,
			p.IsTestData,
			now,
			now,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO posts (%s)
		VALUES %s
		ON CONFLICT (canonical_key) DO UPDATE SET
			%s
		RETURNING id, campaign_id, (xmax = 0) AS inserted`,
		strings.Join(cols, ", "), valuesClause(len(chunk), len(cols), 0), postTable.SetClause(),
	)

	result, err := GetExecutor(ctx, s.db).QueryxContext(ctx, query, args...)
	if err != nil {
		return counts, err
	}
	defer result.Close()

	for result.Next() {
		var id int64
		var campaignID *int64
		var inserted bool
		if err := result.Scan(&id, &campaignID, &inserted); err != nil {
			return counts, err
		}
		if inserted {
			counts.Inserted++
		} else {
			counts.Updated++
		}
		if campaignID != nil {
			counts.CampaignIDs = append(counts.CampaignIDs, *campaignID)
		}
	}
	return counts, result.Err()
}

// PostIDsForCampaign lists upstream post ids already stored for a campaign row visible to ac,
// most recently seen first.
func (s *PostStore) PostIDsForCampaign(ctx context.Context, ac access.Context, campaignID int64, limit int) ([]string, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	pred, args := scoped(ac, "c.organization_id", []any{campaignID, limit})
	var ids []string
	err := getQueryer(ctx, s.db).SelectContext(ctx, &ids, `
		SELECT p.post_id
		FROM posts p
		JOIN campaigns c ON c.id = p.campaign_id
		WHERE p.campaign_id = $1 AND `+pred+`
		ORDER BY p.last_seen_at DESC, p.id DESC
		LIMIT $2`, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts for campaign %d: %w", campaignID, err)
	}
	return ids, nil
}

// collapsePosts merges duplicates inside one batch: same canonical key keeps the later record
// with the larger view count, then same (source_key, post_id) keeps the later record.
func collapsePosts(in []*domain.Post) []*domain.Post {
	byKey := make(map[string]int, len(in))
	merged := make([]*domain.Post, 0, len(in))
	for _, p := range in {
		i, ok := byKey[p.CanonicalKey]
		if !ok {
			byKey[p.CanonicalKey] = len(merged)
			merged = append(merged, p)
			continue
		}
		prev := merged[i]
		next := *p
		next.Views = maxViews(prev.Views, p.Views)
		merged[i] = &next
	}

	byID := make(map[postKey]int, len(merged))
	out := make([]*domain.Post, 0, len(merged))
	for _, p := range merged {
		k := postKey{p.SourceKey, p.PostID}
		if i, ok := byID[k]; ok {
			out[i] = p
			continue
		}
		byID[k] = len(out)
		out = append(out, p)
	}
	return out
}

func maxViews(a, b *int64) *int64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a >= *b:
		return a
	default:
		return b
	}
}

func setKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
