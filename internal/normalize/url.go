package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"

	"creatorcore/internal/domain"
)

// allowedHosts are the social and media hosts a post link may point at.
var allowedHosts = []string{
	"instagram.com",
	"tiktok.com",
	"youtube.com",
	"youtu.be",
	"twitter.com",
	"x.com",
	"facebook.com",
	"fb.watch",
	"threads.net",
	"snapchat.com",
	"twitch.tv",
	"soundcloud.com",
	"spotify.com",
	"music.apple.com",
	"audiomack.com",
	"reddit.com",
	"pinterest.com",
	"linkedin.com",
}

// blockedHosts are synthetic hosts that only appear in fixtures.
var blockedHosts = []string{
	"example.com",
	"example.org",
	"example.net",
	"localhost",
	"test",
	"invalid",
	"example",
	"fixtures.local",
	"mock.api",
}

var platformHosts = map[string]string{
	"instagram.com":   "instagram",
	"tiktok.com":      "tiktok",
	"youtube.com":     "youtube",
	"youtu.be":        "youtube",
	"twitter.com":     "x",
	"x.com":           "x",
	"facebook.com":    "facebook",
	"fb.watch":        "facebook",
	"threads.net":     "threads",
	"snapchat.com":    "snapchat",
	"twitch.tv":       "twitch",
	"soundcloud.com":  "soundcloud",
	"spotify.com":     "spotify",
	"music.apple.com": "apple_music",
}

func parseLink(raw string) (*url.URL, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	if !strings.Contains(s, "://") {
		s = "https://" + strings.TrimPrefix(s, "//")
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	host := canonicalHost(u.Hostname())
	if host == "" || (!strings.Contains(host, ".") && host != "localhost") {
		return nil, false
	}
	return u, true
}

func canonicalHost(host string) string {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	for _, prefix := range []string{"www.", "m.", "mobile.", "vm.", "vt."} {
		host = strings.TrimPrefix(host, prefix)
	}
	return host
}

func hostMatches(host string, list []string) (string, bool) {
	for _, d := range list {
		if host == d || strings.HasSuffix(host, "."+d) {
			return d, true
		}
	}
	return "", false
}

// ClassifyURL reports the validity reason for a post link.
func ClassifyURL(raw string) domain.URLReason {
	if strings.TrimSpace(raw) == "" {
		return domain.URLMissing
	}
	u, ok := parseLink(raw)
	if !ok {
		return domain.URLInvalid
	}
	host := canonicalHost(u.Hostname())
	if _, blocked := hostMatches(host, blockedHosts); blocked {
		return domain.URLDisallowedDomain
	}
	if _, allowed := hostMatches(host, allowedHosts); allowed {
		return domain.URLValid
	}
	return domain.URLUnsupported
}

// NormalizeURL reduces a link to lowercased host plus trimmed path.
func NormalizeURL(raw string) (string, bool) {
	u, ok := parseLink(raw)
	if !ok {
		return "", false
	}
	path := strings.TrimRight(u.EscapedPath(), "/")
	return canonicalHost(u.Hostname()) + path, true
}

// PlatformFromURL infers the platform for links on known hosts.
func PlatformFromURL(raw string) string {
	u, ok := parseLink(raw)
	if !ok {
		return ""
	}
	if d, ok := hostMatches(canonicalHost(u.Hostname()), allowedHosts); ok {
		return platformHosts[d]
	}
	return ""
}

// CanonicalKey derives the cross-source dedup key for a post. Posts without a usable link fall back
// to platform, username, date, id and source; reposts without a stable date can still slip through.
func CanonicalKey(p *domain.Post) string {
	if p.URL != nil {
		if norm, ok := NormalizeURL(*p.URL); ok {
			return digest("url", norm)
		}
	}

	date := ""
	if p.PostDate != nil {
		date = p.PostDate.UTC().Format(time.RFC3339)
	}
	return digest("post",
		strings.ToLower(deref(p.Platform)),
		strings.ToLower(deref(p.Username)),
		date,
		p.PostID,
		p.SourceKey,
	)
}

func digest(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
