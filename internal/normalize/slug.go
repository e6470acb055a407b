package normalize

import "strings"

const maxSlugLen = 80

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	out := strings.Trim(sb.String(), "-")
	if len(out) > maxSlugLen {
		out = strings.Trim(out[:maxSlugLen], "-")
	}
	return out
}

// CampaignSlug slugifies the upstream slug, or derives one from the title and the tail of the
// upstream id when the slug is empty or degenerate. The second result marks a derived slug.
func CampaignSlug(provided, title, id string) (string, bool) {
	if s := Slugify(provided); s != "" && s != "untitled" {
		return s, false
	}

	base := Slugify(title)
	if base == "" {
		base = "campaign"
	}
	tail := id
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	if suffix := Slugify(tail); suffix != "" {
		return base + "-" + suffix, true
	}
	return base, true
}
