package infer

import (
	"regexp"
	"strings"
)

var siteNames = []string{"linkedin"}

// "(3) Backend Engineer | LinkedIn": unread-notification counter
var reNotifCount = regexp.MustCompile(`^\(\d+\+?\)\s*`)

// TitleFromMeta derives a title, and possibly a company, from og:title and
// then the document title. Bare site names are noise and skipped.
func TitleFromMeta(ogTitle, docTitle string) (title, company string) {
	for _, raw := range []string{ogTitle, docTitle} {
		if t, c := splitTitle(raw); t != "" {
			return t, c
		}
	}
	return "", ""
}

func splitTitle(raw string) (title, company string) {
	s := strings.TrimSpace(reNotifCount.ReplaceAllString(strings.TrimSpace(raw), ""))
	if s == "" || isNoiseTitle(s) {
		return "", ""
	}

	s = stripSiteSuffix(s)

	parts := splitNonEmpty(s, " - ")
	if len(parts) < 2 {
		parts = splitNonEmpty(s, " | ")
	}
	if len(parts) == 0 {
		return "", ""
	}
	title = parts[0]
	if isSiteName(title) {
		return "", ""
	}
	if len(parts) > 1 && !isSiteName(parts[1]) {
		company = parts[1]
	}
	return title, company
}

// isNoiseTitle: the site's own name, or a generic "Jobs | Site" page title.
func isNoiseTitle(s string) bool {
	if strings.Contains(s, " - ") {
		return false
	}
	if isSiteName(s) {
		return true
	}
	rest := strings.TrimSpace(stripSiteSuffix(s))
	if rest == s {
		return false
	}
	l := strings.ToLower(rest)
	return l == "" || l == "jobs" || isSiteName(l)
}

func stripSiteSuffix(s string) string {
	for _, sep := range []string{" | ", " - "} {
		i := strings.LastIndex(s, sep)
		if i < 0 {
			continue
		}
		if isSiteName(s[i+len(sep):]) {
			return strings.TrimSpace(s[:i])
		}
	}
	return s
}

func isSiteName(s string) bool {
	l := strings.ToLower(strings.TrimSpace(s))
	for _, n := range siteNames {
		if l == n {
			return true
		}
	}
	return false
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
