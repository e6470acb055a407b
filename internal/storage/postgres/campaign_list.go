package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

var listSorts = map[string]string{
	"":       "c.first_seen_at DESC, c.id DESC",
	"recent": "c.first_seen_at DESC, c.id DESC",
	"views":  "total_views DESC, c.id DESC",
	"budget": "c.budget DESC NULLS LAST, c.id DESC",
	"title":  "LOWER(c.title) ASC, c.id ASC",
}

// listQuery accumulates WHERE conditions with positional arguments.
type listQuery struct {
	conds []string
	args  []any
}

func (q *listQuery) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *listQuery) where(cond string) {
	q.conds = append(q.conds, cond)
}

// ListCampaigns is the dashboard listing read path, scoped to ac.
func (s *CampaignStore) ListCampaigns(ctx context.Context, ac access.Context, f domain.CampaignFilter, now time.Time) ([]domain.CampaignListItem, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	order, ok := listSorts[f.Sort]
	if !ok {
		return nil, fmt.Errorf("unsupported sort %q", f.Sort)
	}

	q := &listQuery{}
	q.where("NOT c.is_test_data")

	pred, args := scoped(ac, "c.organization_id", q.args)
	q.args = args
	q.where(pred)

	if term := strings.TrimSpace(f.Search); term != "" {
		p := q.arg("%" + escapeLike(term) + "%")
		q.where(fmt.Sprintf("(c.title ILIKE %s OR c.slug ILIKE %s)", p, p))
	}
	if f.Genre != "" {
		q.where(fmt.Sprintf("LOWER(c.genre) = LOWER(%s)", q.arg(f.Genre)))
	}
	if f.Platform != "" {
		q.where(fmt.Sprintf("%s = ANY(c.platforms)", q.arg(strings.ToLower(f.Platform))))
	}
	if f.MinBudget != nil {
		q.where(fmt.Sprintf("c.budget >= %s", q.arg(*f.MinBudget)))
	}
	if f.MaxBudget != nil {
		q.where(fmt.Sprintf("c.budget <= %s", q.arg(*f.MaxBudget)))
	}

	day := now.Add(-24 * time.Hour)
	week := now.Add(-7 * 24 * time.Hour)
	switch f.IntakeBucket {
	case "":
	case "24h":
		q.where(fmt.Sprintf("c.first_seen_at >= %s", q.arg(day)))
	case "7d":
		q.where(fmt.Sprintf("c.first_seen_at >= %s AND c.first_seen_at < %s", q.arg(week), q.arg(day)))
	case "older":
		q.where(fmt.Sprintf("c.first_seen_at < %s", q.arg(week)))
	default:
		return nil, fmt.Errorf("unsupported intake bucket %q", f.IntakeBucket)
	}

	if f.NeedsReview != nil {
		review := fmt.Sprintf("(c.first_seen_at >= %s AND c.reviewed_at IS NULL)", q.arg(week))
		if *f.NeedsReview {
			q.where(review)
		} else {
			q.where("NOT " + review)
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT
			c.id, c.slug, c.title, c.source_key, c.budget, c.currency, c.genre,
			COALESCE(m.total_views, 0) AS total_views,
			COALESCE(m.actual_posts, 0) AS actual_posts,
			COALESCE(m.quality_status, 'missing_posts') AS quality_status,
			c.first_seen_at
		FROM campaigns c
		LEFT JOIN campaign_metrics m ON m.campaign_id = c.id
		WHERE %s
		ORDER BY %s
		LIMIT %s OFFSET %s`,
		strings.Join(q.conds, " AND "), order, q.arg(limit), q.arg(offset),
	)

	var items []domain.CampaignListItem
	if err := getQueryer(ctx, s.db).SelectContext(ctx, &items, query, q.args...); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return items, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
