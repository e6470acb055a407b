// Package normalize maps upstream campaign and post records onto canonical domain records.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"creatorcore/internal/domain"
)

const EnvironmentTest = "test"

type Options struct {
	Environment   string
	AllowFixtures bool
}

type Normalizer struct {
	opts Options
}

func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

var (
	fixtureSource    = regexp.MustCompile(`^(test|tests|fixture|fixtures|mock|synthetic|seed)([-_].*)?$`)
	fixtureSignature = regexp.MustCompile(`(?i)(\bfixture\b|\blorem ipsum\b|\btest (campaign|post)\b|\[test\]|example\.(com|org|net)|\.invalid\b|\.test\b)`)
	whitespace       = regexp.MustCompile(`\s+`)
)

func (n *Normalizer) fixtureMode() bool {
	return n.opts.Environment == EnvironmentTest && n.opts.AllowFixtures
}

// isFixture requires all three signals; real deployments never match.
func (n *Normalizer) isFixture(sourceKey string, texts ...string) bool {
	if !n.fixtureMode() || !fixtureSource.MatchString(strings.ToLower(sourceKey)) {
		return false
	}
	for _, t := range texts {
		if t != "" && fixtureSignature.MatchString(t) {
			return true
		}
	}
	return false
}

// Campaign returns nil when the record carries no upstream id.
func (n *Normalizer) Campaign(raw domain.RawRecord, sourceKey string) *domain.Campaign {
	id := stringField(raw, "_id", "id", "campaignId", "campaign_id")
	if id == "" {
		return nil
	}

	title := whitespace.ReplaceAllString(stringField(raw, "title", "name", "campaignTitle", "campaign_title"), " ")
	if title == "" {
		title = domain.DefaultTitle
	}
	slug, fallback := CampaignSlug(stringField(raw, "slug"), title, id)

	c := &domain.Campaign{
		SourceKey:      sourceKey,
		CampaignID:     id,
		Slug:           slug,
		SlugIsFallback: fallback,
		Title:          title,
		Budget:         numberField(raw, "budget", "budgetAmount", "budget_amount"),
		Currency:       optString(strings.ToUpper(stringField(raw, "currency", "budgetCurrency", "budget_currency"))),
		OrganizationID: optString(stringField(raw, "organizationId", "organization_id", "orgId", "org_id", "organization")),
		Platforms:      normalizePlatforms(listField(raw, "platforms", "platform")),
		Archived:       boolField(raw, "archived", "isArchived", "is_archived"),
		CreatorCount:   intField(raw, "creatorCount", "creator_count", "creators"),
		TotalPosts:     intField(raw, "totalPosts", "total_posts", "postCount", "post_count"),
		ThumbnailURL:   optString(stringField(raw, "thumbnail", "thumbnailUrl", "thumbnail_url", "imageUrl", "image_url")),
		APICostUSD:     numberField(raw, "apiCostUsd", "api_cost_usd", "apiCost"),
		PostRefs:       refsField(raw, "posts", "postIds", "post_ids"),
	}

	if budget := nestedRecord(raw, "budget"); budget != nil {
		c.Budget = numberField(budget, "amount", "value", "total")
		if cur := stringField(budget, "currency"); cur != "" {
			c.Currency = optString(strings.ToUpper(cur))
		}
	}
	if c.TotalPosts == nil && len(c.PostRefs) > 0 {
		total := len(c.PostRefs)
		c.TotalPosts = &total
	}
	c.IsTestData = n.isFixture(sourceKey, title, deref(c.ThumbnailURL))

	return c
}

// Post returns nil when the record carries no upstream id, or when it links to a synthetic host
// outside fixture mode.
func (n *Normalizer) Post(raw domain.RawRecord, sourceKey string) *domain.Post {
	id := stringField(raw, "_id", "id", "postId", "post_id")
	if id == "" {
		return nil
	}

	link := stringField(raw, "url", "link", "postUrl", "post_url", "permalink")
	reason := ClassifyURL(link)
	if reason == domain.URLDisallowedDomain && !n.fixtureMode() {
		return nil
	}

	p := &domain.Post{
		SourceKey:   sourceKey,
		PostID:      id,
		CampaignRef: stringField(raw, "campaign", "campaignId", "campaign_id"),
		Username:    optString(username(raw)),
		URL:         optString(link),
		URLValid:    reason == domain.URLValid,
		URLReason:   reason,
		Views:       int64Field(raw, "views", "viewCount", "view_count", "plays", "playCount"),
		PostDate:    timeField(raw, "postDate", "post_date", "postedAt", "posted_at", "createdAt", "created_at", "date"),
		Status:      optString(strings.ToLower(stringField(raw, "status"))),
	}

	platform := strings.ToLower(stringField(raw, "platform", "network"))
	if platform == "" {
		platform = PlatformFromURL(link)
	}
	p.Platform = optString(platform)
	p.CanonicalKey = CanonicalKey(p)
	p.IsTestData = n.isFixture(sourceKey, link, stringField(raw, "caption", "title"))

	return p
}

func username(raw domain.RawRecord) string {
	name := stringField(raw, "username", "handle", "creatorUsername", "creator_username", "author")
	if name == "" {
		if creator := nestedRecord(raw, "creator"); creator != nil {
			name = stringField(creator, "username", "handle", "name")
		} else if s, ok := raw["creator"].(string); ok {
			name = strings.TrimSpace(s)
		}
	}
	return strings.TrimPrefix(name, "@")
}

func normalizePlatforms(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
