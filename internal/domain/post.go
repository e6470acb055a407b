package domain

import "time"

type URLReason string

const (
	URLValid            URLReason = "valid"
	URLMissing          URLReason = "missing_url"
	URLInvalid          URLReason = "invalid_url"
	URLDisallowedDomain URLReason = "disallowed_domain"
	URLUnsupported      URLReason = "unsupported_domain"
)

type Post struct {
	ID           int64
	SourceKey    string
	PostID       string
	CanonicalKey string
	CampaignRef  string // upstream campaign id, resolved to a row id on write
	Username     *string
	Platform     *string
	URL          *string
	URLValid     bool
	URLReason    URLReason
	Views        *int64
	PostDate     *time.Time
	Status       *string
	IsTestData   bool
}

// Creator is a distinct username observed on any post, keyed case-insensitively.
type Creator struct {
	Username    string    `db:"username"`
	FirstSeenAt time.Time `db:"first_seen_at"`
	LastSeenAt  time.Time `db:"last_seen_at"`
}
