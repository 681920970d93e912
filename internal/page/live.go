package page

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// LivePage is a Document over a page open in a real browser. Each call
// queries the current DOM, so content rendered after navigation is seen.
type LivePage struct {
	p       playwright.Page
	timeout float64 // ms, per element read
}

func NewLivePage(p playwright.Page) *LivePage {
	return &LivePage{p: p, timeout: 1500}
}

func (l *LivePage) URL() string { return l.p.URL() }

func (l *LivePage) Title() string {
	t, err := l.p.Title()
	if err != nil {
		return ""
	}
	return CleanText(t)
}

func (l *LivePage) Text(selector string) string {
	loc := l.p.Locator(selector)
	if n, err := loc.Count(); err != nil || n == 0 {
		return ""
	}
	txt, err := loc.First().InnerText(playwright.LocatorInnerTextOptions{Timeout: playwright.Float(l.timeout)})
	if err != nil {
		return ""
	}
	return CleanText(txt)
}

func (l *LivePage) Texts(selector string) []string {
	all, err := l.p.Locator(selector).AllInnerTexts()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(all))
	for _, t := range all {
		out = append(out, CleanText(t))
	}
	return out
}

func (l *LivePage) Meta(property string) string {
	for _, attr := range []string{"property", "name"} {
		loc := l.p.Locator(fmt.Sprintf(`meta[%s=%q]`, attr, property))
		if n, err := loc.Count(); err != nil || n == 0 {
			continue
		}
		v, err := loc.First().GetAttribute("content", playwright.LocatorGetAttributeOptions{Timeout: playwright.Float(l.timeout)})
		if err != nil {
			continue
		}
		if v = CleanText(v); v != "" {
			return v
		}
	}
	return ""
}

func (l *LivePage) BodyText() string {
	loc := l.p.Locator("body")
	if n, err := loc.Count(); err != nil || n == 0 {
		return ""
	}
	txt, err := loc.First().InnerText(playwright.LocatorInnerTextOptions{Timeout: playwright.Float(l.timeout)})
	if err != nil {
		return ""
	}
	return CleanText(txt)
}
