package domain

import "time"

// Breakdown is one row of a top-N list.
type Breakdown struct {
	Key   string `db:"key" json:"key"`
	Count int    `db:"count" json:"count"`
	Views int64  `db:"views" json:"views"`
}

type OrgDashboardStats struct {
	OrganizationKey  string      `json:"organization_key"`
	TotalCampaigns   int         `json:"total_campaigns"`
	TotalCreators    int         `json:"total_creators"`
	TotalPosts       int         `json:"total_posts"`
	TotalViews       int64       `json:"total_views"`
	VerifiedViews    int64       `json:"verified_views"`
	NewCampaigns24h  int         `json:"new_campaigns_24h"`
	NewCampaigns7d   int         `json:"new_campaigns_7d"`
	NewCreators24h   int         `json:"new_creators_24h"`
	NewCreators7d    int         `json:"new_creators_7d"`
	PendingCampaigns int         `json:"pending_campaigns"`
	ReviewCampaigns  int         `json:"review_campaigns"`
	ReviewCreators   int         `json:"review_creators"`
	TopGenres        []Breakdown `json:"top_genres"`
	TopPlatforms     []Breakdown `json:"top_platforms"`
	ComputedAt       time.Time   `json:"computed_at"`
}

// Empty reports whether the snapshot carries no data worth serving.
func (s *OrgDashboardStats) Empty() bool {
	return s == nil || (s.TotalCampaigns == 0 && s.TotalPosts == 0 && s.ComputedAt.IsZero())
}

// CampaignFilter drives the dashboard listing query.
type CampaignFilter struct {
	Search       string
	Genre        string
	Platform     string
	MinBudget    *float64
	MaxBudget    *float64
	IntakeBucket string // "24h", "7d", "older"
	NeedsReview  *bool
	Sort         string // "recent", "views", "budget", "title"
	Limit        int
	Offset       int
}

type CampaignListItem struct {
	ID            int64     `db:"id" json:"id"`
	Slug          string    `db:"slug" json:"slug"`
	Title         string    `db:"title" json:"title"`
	SourceKey     string    `db:"source_key" json:"source_key"`
	Budget        *float64  `db:"budget" json:"budget,omitempty"`
	Currency      *string   `db:"currency" json:"currency,omitempty"`
	Genre         *string   `db:"genre" json:"genre,omitempty"`
	TotalViews    int64     `db:"total_views" json:"total_views"`
	ActualPosts   int       `db:"actual_posts" json:"actual_posts"`
	QualityStatus string    `db:"quality_status" json:"quality_status"`
	FirstSeenAt   time.Time `db:"first_seen_at" json:"first_seen_at"`
}
