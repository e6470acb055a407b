package search

import (
	"context"
	"errors"
)

// ErrDisabled is returned by NewProvider when no provider is configured.
var ErrDisabled = errors.New("search: provider not configured")

// Provider runs a keyed web search and returns ranked snippets.
type Provider interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error)
}

// Result is a single search hit.
type Result struct {
	Title   string
	URL     string
	Content string
	Score   float64
}

// Text is the title and snippet joined, the part genre scoring reads.
func (r Result) Text() string {
	if r.Content == "" {
		return r.Title
	}
	return r.Title + " " + r.Content
}

type SearchOptions struct {
	Limit int
}
