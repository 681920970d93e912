// Package extract resolves fields from a page through ordered fallbacks.
package extract

import "jobflow-engine/internal/page"

// SelectorList is ordered by preference: earlier selectors win.
type SelectorList []string

// Resolve returns the text of the first selector that matches a non-empty
// element, or "" when none does. Later selectors are not evaluated once one hits.
func Resolve(doc page.Document, selectors SelectorList) string {
	for _, sel := range selectors {
		if t := doc.Text(sel); t != "" {
			return t
		}
	}
	return ""
}

// Attempt is one way of getting a value out of a page; "" means no value.
type Attempt struct {
	Name string
	Try  func(doc page.Document) string
}

// Strategy is an ordered list of attempts.
type Strategy []Attempt

// Run returns the first non-empty attempt value and the name of the attempt
// that produced it.
func (s Strategy) Run(doc page.Document) (value, source string) {
	for _, a := range s {
		if v := a.Try(doc); v != "" {
			return v, a.Name
		}
	}
	return "", ""
}

// FromSelectors wraps Resolve as an Attempt.
func FromSelectors(name string, selectors SelectorList) Attempt {
	return Attempt{Name: name, Try: func(doc page.Document) string {
		return Resolve(doc, selectors)
	}}
}

// FromMeta reads a meta property as an Attempt.
func FromMeta(property string) Attempt {
	return Attempt{Name: "meta:" + property, Try: func(doc page.Document) string {
		return doc.Meta(property)
	}}
}
