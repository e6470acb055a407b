package domain

import "time"

const DefaultTitle = "Untitled"

type Campaign struct {
	ID             int64
	SourceKey      string
	CampaignID     string
	Slug           string
	SlugIsFallback bool
	Title          string
	Budget         *float64
	Currency       *string
	OrganizationID *string
	Platforms      []string
	Archived       *bool
	CreatorCount   *int
	TotalPosts     *int
	ThumbnailURL   *string
	APICostUSD     *float64
	IsTestData     bool
	PostRefs       []string
	FirstSeenAt    time.Time
	LastSeenAt     time.Time
	LastSyncedAt   time.Time
}

// HasDefaultTitle reports whether the title is still the placeholder.
func (c *Campaign) HasDefaultTitle() bool {
	return c.Title == "" || c.Title == DefaultTitle
}

// CampaignRef identifies a stored campaign for sweeps and classification.
type CampaignRef struct {
	ID          int64     `db:"id"`
	SourceKey   string    `db:"source_key"`
	CampaignID  string    `db:"campaign_id"`
	Title       string    `db:"title"`
	FirstSeenAt time.Time `db:"first_seen_at"`
}

// CampaignAggregate is the raw material for a metrics recompute, read fresh from posts.
type CampaignAggregate struct {
	CampaignID      int64     `db:"campaign_id"`
	Title           string    `db:"title"`
	PlatformCount   int       `db:"platform_count"`
	FirstSeenAt     time.Time `db:"first_seen_at"`
	ActualPosts     int       `db:"actual_posts"`
	ActualCreators  int       `db:"actual_creators"`
	TotalViews      int64     `db:"total_views"`
	VerifiedViews   int64     `db:"verified_views"`
	ValidURLPosts   int       `db:"valid_url_posts"`
	InvalidURLPosts int       `db:"invalid_url_posts"`
}

type CampaignMetrics struct {
	CampaignID      int64         `db:"campaign_id"`
	ActualPosts     int           `db:"actual_posts"`
	ActualCreators  int           `db:"actual_creators"`
	TotalViews      int64         `db:"total_views"`
	VerifiedViews   int64         `db:"verified_views"`
	ValidURLPosts   int           `db:"valid_url_posts"`
	InvalidURLPosts int           `db:"invalid_url_posts"`
	QualityStatus   QualityStatus `db:"quality_status"`
	ComputedAt      time.Time     `db:"computed_at"`
}

type QualityStatus string

const (
	QualityMissingPosts        QualityStatus = "missing_posts"
	QualityPlaceholderLinks    QualityStatus = "placeholder_links_only"
	QualityMissingCoreMetadata QualityStatus = "missing_core_metadata"
	QualityReady               QualityStatus = "ready"
)

// DeriveQualityStatus classifies a campaign from its current aggregates. Metadata gaps are not
// reported until the campaign is older than grace.
func DeriveQualityStatus(agg CampaignAggregate, now time.Time, grace time.Duration) QualityStatus {
	switch {
	case agg.ActualPosts == 0:
		return QualityMissingPosts
	case agg.ValidURLPosts == 0:
		return QualityPlaceholderLinks
	}

	missingMeta := agg.Title == "" || agg.Title == DefaultTitle || agg.PlatformCount == 0
	if missingMeta && now.Sub(agg.FirstSeenAt) > grace {
		return QualityMissingCoreMetadata
	}
	return QualityReady
}

// MetricsFromAggregate builds the rollup row for one campaign.
func MetricsFromAggregate(agg CampaignAggregate, now time.Time, grace time.Duration) CampaignMetrics {
	return CampaignMetrics{
		CampaignID:      agg.CampaignID,
		ActualPosts:     agg.ActualPosts,
		ActualCreators:  agg.ActualCreators,
		TotalViews:      agg.TotalViews,
		VerifiedViews:   agg.VerifiedViews,
		ValidURLPosts:   agg.ValidURLPosts,
		InvalidURLPosts: agg.InvalidURLPosts,
		QualityStatus:   DeriveQualityStatus(agg, now, grace),
		ComputedAt:      now,
	}
}
