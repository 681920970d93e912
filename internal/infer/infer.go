// Package infer backfills fields from free text when markup has nothing.
// Every rule is pure: same input, same answer, "" when it has no opinion.
package infer

import (
	"regexp"
	"strings"

	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/page"
)

// U+2010 and U+2011 show up in "On‑site" pills.
var dashFolder = strings.NewReplacer("‐", "-", "‑", "-")

var reCityState = regexp.MustCompile(`\b[A-Z][a-zA-Z.'-]*(?:\s[A-Z][a-zA-Z.'-]*)*,\s[A-Z]{2}\b`)

// LocationFromText returns the first "City, ST" span in text.
func LocationFromText(text string) string {
	return page.CleanText(reCityState.FindString(text))
}

var (
	reCompanyAt   = regexp.MustCompile(`(?:^|[^A-Za-z])[Aa]t\s+([A-Z][A-Za-z0-9&'-]*(?:\s[A-Z][A-Za-z0-9&'-]*)?)`)
	reCompanyIsA  = regexp.MustCompile(`\b([A-Z][A-Za-z0-9&'-]*(?:\s[A-Z][A-Za-z0-9&'-]*)?)\s+(?:is|are)\s+(?:a|an)\b`)
	companyByText = []*regexp.Regexp{reCompanyAt, reCompanyIsA}
)

// CompanyFromText tries "... at Name ..." before "Name is a ...".
func CompanyFromText(text string) string {
	for _, re := range companyByText {
		if m := re.FindStringSubmatch(text); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// WorkModeFromLabels returns the first text that is exactly a workplace pill.
func WorkModeFromLabels(texts []string) domain.WorkMode {
	for _, t := range texts {
		switch dashFolder.Replace(page.CleanText(t)) {
		case "Remote":
			return domain.WorkModeRemote
		case "Hybrid":
			return domain.WorkModeHybrid
		case "On-site", "On site":
			return domain.WorkModeOnsite
		}
	}
	return domain.WorkModeUnknown
}

var relocationPhrases = []string{
	"based on our campus",
	"relocation to",
	"requires relocation",
	"relocation assistance",
}

// WorkModeFromText scans free text in fixed priority: remote, hybrid,
// on-site, then relocation wording (which implies on-site).
func WorkModeFromText(text string) domain.WorkMode {
	low := strings.ToLower(dashFolder.Replace(text))

	switch {
	case strings.Contains(low, "remote"):
		return domain.WorkModeRemote
	case strings.Contains(low, "hybrid"):
		return domain.WorkModeHybrid
	case strings.Contains(low, "on-site") || strings.Contains(low, "on site") || strings.Contains(low, "onsite"):
		return domain.WorkModeOnsite
	}
	for _, p := range relocationPhrases {
		if strings.Contains(low, p) {
			return domain.WorkModeOnsite
		}
	}
	return domain.WorkModeUnknown
}

var reSalary = regexp.MustCompile(`(?i)(?:USD|CAD|CA\$|\$|€|£)\s?\d[\d,]*(?:\.\d+)?(?:\s?[–-]\s?(?:USD|CAD|CA\$|\$|€|£)?\s?\d[\d,]*(?:\.\d+)?)?.{0,40}?\b(?:per hour|per year|hour|hr|day|week|month|year|annum|annually)`)

// SalaryFromText returns a currency amount (or range) that is followed
// within 40 characters by a pay period.
func SalaryFromText(text string) string {
	return reSalary.FindString(page.CleanText(text))
}

// embedded work-mode keywords in the order they are looked for
var embeddedModes = []struct {
	kw   string
	mode domain.WorkMode
}{
	{"Remote", domain.WorkModeRemote},
	{"Hybrid", domain.WorkModeHybrid},
	{"On-site", domain.WorkModeOnsite},
	{"On site", domain.WorkModeOnsite},
	{"On‑site", domain.WorkModeOnsite},
	{"On‐site", domain.WorkModeOnsite},
}

var locationPunct = strings.NewReplacer("(", " ", ")", " ", "·", " ")

// SplitWorkMode pulls a work-mode keyword out of a combined location string.
// When one is found the keyword, parentheses and middle dots are removed and
// whitespace collapsed. Without a keyword the location is returned untouched.
func SplitWorkMode(location string) (string, domain.WorkMode) {
	for _, c := range embeddedModes {
		if !strings.Contains(location, c.kw) {
			continue
		}
		loc := strings.ReplaceAll(location, c.kw, "")
		loc = locationPunct.Replace(loc)
		return strings.Join(strings.Fields(loc), " "), c.mode
	}
	return location, domain.WorkModeUnknown
}
