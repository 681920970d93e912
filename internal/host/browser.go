package host

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"jobflow-engine/internal/assemble"
	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/page"
)

type BrowserOptions struct {
	Headless   bool
	NavTimeout time.Duration
	UserAgent  string
}

// Browser is one Chromium instance shared by any number of captures.
type Browser struct {
	opts    BrowserOptions
	pw      *playwright.Playwright
	browser playwright.Browser

	closeOnce sync.Once
}

func OpenBrowser(opts BrowserOptions) (*Browser, error) {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("host: start playwright: %w", err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("host: launch chromium: %w", err)
	}
	return &Browser{opts: opts, pw: pw, browser: b}, nil
}

func (b *Browser) Close() error {
	var err error
	b.closeOnce.Do(func() {
		if e := b.browser.Close(); e != nil {
			err = e
		}
		if e := b.pw.Stop(); e != nil && err == nil {
			err = e
		}
	})
	return err
}

// Host returns a Host that opens url in a fresh tab of this browser.
func (b *Browser) Host(url string, asm *assemble.Assembler) Host {
	return browserHost{b: b, url: url, asm: asm}
}

type browserHost struct {
	b   *Browser
	url string
	asm *assemble.Assembler
}

func (h browserHost) Capture(ctx context.Context, ann domain.Annotations) (*assemble.Result, error) {
	if h.url == "" {
		return nil, ErrNoTarget
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bctx, err := h.b.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: optString(h.b.opts.UserAgent),
	})
	if err != nil {
		return nil, fmt.Errorf("host: new browser context: %w", err)
	}
	defer bctx.Close()

	pg, err := bctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("host: new page: %w", err)
	}

	resp, err := pg.Goto(h.url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(h.b.opts.NavTimeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("host: goto %s: %w", h.url, err)
	}
	if resp != nil {
		if !resp.Ok() {
			return nil, fmt.Errorf("host: goto %s: status %d", h.url, resp.Status())
		}
		if ct := resp.Headers()["content-type"]; ct != "" && !page.IsHTMLContentType(ct) {
			return nil, nil
		}
	}

	res := h.asm.Assemble(page.NewLivePage(pg), ann)
	return &res, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return playwright.String(s)
}
