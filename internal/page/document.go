// Package page is the read-only view of a job posting that extraction runs against.
package page

// Document is implemented by a parsed HTML snapshot and by a live browser page.
// Every call re-reads the underlying page; nothing is cached between calls.
// Missing elements and unparseable selectors yield "" (or nil), never an error.
type Document interface {
	URL() string
	Title() string

	// Text returns the normalized visible text of the first element matching selector.
	Text(selector string) string

	// Texts returns the normalized visible text of every match, in document order.
	Texts(selector string) []string

	// Meta returns the trimmed content attribute of <meta property=...> (or name=...).
	Meta(property string) string

	BodyText() string
}
