// Package host runs extraction against a page and hands back the result.
// It is the stand-in for "run this function in that browser tab".
package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"jobflow-engine/internal/assemble"
	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/page"
)

// ErrNoTarget means there is no page to run against.
var ErrNoTarget = errors.New("host: no target page")

// Host captures one page. A nil result with a nil error means the page was
// reached but extraction could not run on it.
type Host interface {
	Capture(ctx context.Context, ann domain.Annotations) (*assemble.Result, error)
}

// FileHost captures from saved HTML.
type FileHost struct {
	Path string
	URL  string // page URL the file was saved from
	Asm  *assemble.Assembler
}

func (h FileHost) Capture(ctx context.Context, ann domain.Annotations) (*assemble.Result, error) {
	if h.Path == "" {
		return nil, ErrNoTarget
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(h.Path)
	if err != nil {
		return nil, fmt.Errorf("host: read %s: %w", h.Path, err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	doc, err := page.Parse(h.URL, bytes.NewReader(b))
	if err != nil {
		return nil, nil
	}
	res := h.Asm.Assemble(doc, ann)
	return &res, nil
}

// HTTPHost fetches the page over plain HTTP.
type HTTPHost struct {
	URL     string
	Fetcher *page.Fetcher
	Asm     *assemble.Assembler
}

func (h HTTPHost) Capture(ctx context.Context, ann domain.Annotations) (*assemble.Result, error) {
	if h.URL == "" {
		return nil, ErrNoTarget
	}
	doc, err := h.Fetcher.Fetch(ctx, h.URL)
	if errors.Is(err, page.ErrNotHTML) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	res := h.Asm.Assemble(doc, ann)
	return &res, nil
}
