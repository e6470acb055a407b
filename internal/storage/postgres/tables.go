package postgres

import (
	"creatorcore/internal/domain"
	"creatorcore/internal/merge"
)

// campaignTable is the single declaration of how an incoming campaign merges with a stored one.
// Column order is the insert order used by CampaignStore.
var campaignTable = merge.Table{
	Name: "campaigns",
	Fields: []merge.Field{
		{Column: "source_key", Policy: merge.PreferExisting},
		{Column: "campaign_id", Policy: merge.PreferExisting},
		{
			Column:      "slug",
			Policy:      merge.ReplaceFallback,
			Default:     domain.DefaultTitle,
			FlagColumn:  "slug_is_fallback",
			GuardColumn: "title",
		},
		{Column: "title", Policy: merge.NeverOverwriteDefault, Default: domain.DefaultTitle},
		{Column: "budget", Policy: merge.Coalesce},
		{Column: "currency", Policy: merge.Coalesce},
		{Column: "organization_id", Policy: merge.Coalesce},
		{Column: "platforms", Policy: merge.Coalesce},
		{Column: "archived", Policy: merge.Coalesce},
		{Column: "creator_count", Policy: merge.Coalesce},
		{Column: "total_posts", Policy: merge.Coalesce},
		{Column: "thumbnail_url", Policy: merge.Coalesce},
		{Column: "api_cost_usd", Policy: merge.Coalesce},
		{Column: "post_refs", Policy: merge.Coalesce},
		{Column: "is_test_data", Policy: merge.PreferIncoming},
		{Column: "first_seen_at", Policy: merge.PreferExisting},
		{Column: "last_seen_at", Policy: merge.PreferIncoming},
		{Column: "last_synced_at", Policy: merge.PreferIncoming},
	},
}

var postTable = merge.Table{
	Name: "posts",
	Fields: []merge.Field{
		{Column: "source_key", Policy: merge.PreferExisting},
		{Column: "post_id", Policy: merge.PreferExisting},
		{Column: "canonical_key", Policy: merge.PreferExisting},
		{Column: "campaign_id", Policy: merge.Coalesce},
		{Column: "username", Policy: merge.Coalesce},
		{Column: "platform", Policy: merge.Coalesce},
		{Column: "url", Policy: merge.Coalesce},
		{Column: "url_valid", Policy: merge.PreferIncoming},
		{Column: "url_reason", Policy: merge.PreferIncoming},
		{Column: "views", Policy: merge.Max},
		{Column: "post_date", Policy: merge.Coalesce},
		{Column: "status", Policy: merge.Coalesce},
		{Column: "is_test_data", Policy: merge.PreferIncoming},
		{Column: "first_seen_at", Policy: merge.PreferExisting},
		{Column: "last_seen_at", Policy: merge.PreferIncoming},
	},
}
