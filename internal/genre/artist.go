package genre

import (
	"regexp"
	"strings"
)

var (
	// "Artist — Track", "Artist - Track", "Artist: Track", "Artist | Campaign"
	artistSeparator = regexp.MustCompile(`\s+[—–\-|]\s+|:\s+`)
	byArtist        = regexp.MustCompile(`(?i)\bby\s+(.+)$`)
	featuring       = regexp.MustCompile(`(?i)\s+(feat\.?|ft\.?|featuring|x|&|with)\s+.*$`)
	bracketed       = regexp.MustCompile(`[\(\[\{][^\)\]\}]*[\)\]\}]`)
	quoted          = regexp.MustCompile(`["“”'‘’]`)
)

// genericNames are left-hand sides that are campaign boilerplate rather than artists.
var genericNames = map[string]struct{}{
	"untitled": {}, "campaign": {}, "new campaign": {}, "promo": {}, "promotion": {},
	"new music": {}, "new single": {}, "new release": {}, "tiktok": {}, "instagram": {},
	"youtube": {}, "spotify": {}, "ugc": {}, "creator": {}, "creators": {}, "test": {},
	"official": {}, "music": {}, "sound": {}, "audio": {}, "song": {},
}

// ExtractArtist pulls an artist name out of a campaign title.
func ExtractArtist(title string) (string, bool) {
	title = strings.TrimSpace(bracketed.ReplaceAllString(title, " "))
	if title == "" {
		return "", false
	}

	var candidate string
	if parts := artistSeparator.Split(title, 2); len(parts) == 2 {
		candidate = parts[0]
	} else if m := byArtist.FindStringSubmatch(title); m != nil {
		candidate = m[1]
	} else {
		return "", false
	}

	candidate = featuring.ReplaceAllString(candidate, "")
	candidate = quoted.ReplaceAllString(candidate, "")
	candidate = strings.Join(strings.Fields(candidate), " ")

	if !plausibleArtist(candidate) {
		return "", false
	}
	return candidate, true
}

func plausibleArtist(s string) bool {
	if len(s) < 2 || len(s) > 60 {
		return false
	}
	if len(strings.Fields(s)) > 5 {
		return false
	}
	if _, generic := genericNames[strings.ToLower(s)]; generic {
		return false
	}
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r > 0x7f {
			return true
		}
	}
	return false
}

// CacheKey is the artist's cache identity.
func CacheKey(artist string) string {
	return strings.ToLower(strings.Join(strings.Fields(artist), " "))
}
