package agency

import (
	"context"
	"fmt"

	"creatorcore/internal/domain"
)

// PageFetcher is the part of the client Walk needs.
type PageFetcher interface {
	FetchPage(ctx context.Context, entity domain.EntityType, cursor int64, limit int) (*domain.Page, error)
}

type WalkResult struct {
	Pages   int
	Fetched int
	// Cursor is the furthest next-cursor observed.
	Cursor  int64
	HasMore bool
}

// Walk fetches pages from start until the upstream reports nothing remaining, returns an empty
// page, or maxPages is reached (maxPages <= 0 means no bound). visit runs once per page; pages
// visited before an error stay visited.
func Walk(ctx context.Context, f PageFetcher, entity domain.EntityType, start int64, limit, maxPages int, visit func(*domain.Page) error) (WalkResult, error) {
	res := WalkResult{Cursor: start}
	cursor := start

	for maxPages <= 0 || res.Pages < maxPages {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		page, err := f.FetchPage(ctx, entity, cursor, limit)
		if err != nil {
			return res, fmt.Errorf("fetch %s page at cursor %d: %w", entity, cursor, err)
		}

		res.Pages++
		res.Fetched += len(page.Results)
		if page.NextCursor > res.Cursor {
			res.Cursor = page.NextCursor
		}

		if err := visit(page); err != nil {
			return res, err
		}

		res.HasMore = page.Remaining > 0 && len(page.Results) > 0
		if !res.HasMore {
			break
		}
		if page.NextCursor <= cursor {
			// Upstream did not move; stop rather than loop on the same page.
			break
		}
		cursor = page.NextCursor
	}

	return res, nil
}
