package agency

import (
	"encoding/json"
	"strconv"

	"creatorcore/internal/domain"
)

// listResponse covers the envelope variants partner APIs return for list endpoints.
type listResponse struct {
	Results    []domain.RawRecord `json:"results"`
	Data       []domain.RawRecord `json:"data"`
	Items      []domain.RawRecord `json:"items"`
	Remaining  *int               `json:"remaining"`
	Count      *int               `json:"count"`
	Cursor     any                `json:"cursor"`
	NextCursor any                `json:"next_cursor"`
}

func (r *listResponse) records() []domain.RawRecord {
	switch {
	case len(r.Results) > 0:
		return r.Results
	case len(r.Data) > 0:
		return r.Data
	default:
		return r.Items
	}
}

func (r *listResponse) toPage(cursor int64, limit int) *domain.Page {
	records := r.records()
	page := &domain.Page{
		Results: records,
		Count:   len(records),
	}

	if r.Count != nil {
		page.Count = *r.Count
	}

	switch {
	case r.Remaining != nil:
		page.Remaining = *r.Remaining
	case limit > 0 && len(records) >= limit:
		// No remaining count: a full page suggests more.
		page.Remaining = 1
	}

	next, ok := parseCursor(r.NextCursor)
	if !ok {
		next, ok = parseCursor(r.Cursor)
	}
	if !ok || next <= 0 {
		next = cursor + int64(len(records))
	}
	page.NextCursor = next

	return page
}

func parseCursor(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			return int64(f), ferr == nil
		}
		return n, true
	case float64:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// unwrapRecord strips a {"result": {...}} or {"data": {...}} wrapper from single-item responses.
func unwrapRecord(rec domain.RawRecord) domain.RawRecord {
	if len(rec) != 1 {
		return rec
	}
	for _, key := range []string{"result", "data", "item"} {
		if inner, ok := rec[key].(map[string]any); ok {
			return domain.RawRecord(inner)
		}
	}
	return rec
}
