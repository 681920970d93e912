package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// HTMLDocument is a Document over a parsed snapshot of a page.
type HTMLDocument struct {
	url string
	doc *goquery.Document
}

func NewHTMLDocument(url string, doc *goquery.Document) *HTMLDocument {
	return &HTMLDocument{url: url, doc: doc}
}

func Parse(url string, r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse html: %w", err)
	}
	return NewHTMLDocument(url, doc), nil
}

func ParseString(url, src string) (*HTMLDocument, error) {
	return Parse(url, strings.NewReader(src))
}

// URL is the address the snapshot was loaded from. A snapshot parsed without
// one falls back to the page's own <link rel="canonical">, then og:url.
func (d *HTMLDocument) URL() string {
	if d.url != "" {
		return d.url
	}
	if href, ok := d.doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		if href = strings.TrimSpace(href); href != "" {
			return href
		}
	}
	return d.Meta("og:url")
}

func (d *HTMLDocument) Title() string {
	return CleanText(d.doc.Find("title").First().Text())
}

func (d *HTMLDocument) Text(selector string) string {
	return ElementText(d.doc.Find(selector))
}

func (d *HTMLDocument) Texts(selector string) []string {
	var out []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, CleanText(visibleText(s.Nodes)))
	})
	return out
}

func (d *HTMLDocument) Meta(property string) string {
	for _, attr := range []string{"property", "name"} {
		if v, ok := d.doc.Find(fmt.Sprintf(`meta[%s=%q]`, attr, property)).First().Attr("content"); ok {
			if v = CleanText(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func (d *HTMLDocument) BodyText() string {
	return CleanText(visibleText(d.doc.Find("body").Nodes))
}

// ElementText returns the visible text of the first element in sel, or ""
// for an empty selection.
func ElementText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return CleanText(visibleText(sel.First().Nodes))
}

var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true, "head": true,
}

// block-level elements get a line break around them so adjacent blocks
// don't run their words together ("Austin, TXRemote").
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true, "main": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true, "button": true,
}

func visibleText(nodes []*html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipTags[n.Data] || hasAttr(n, "hidden") {
				return
			}
		}
		block := n.Type == html.ElementNode && blockTags[n.Data]
		if block {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte('\n')
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return b.String()
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
