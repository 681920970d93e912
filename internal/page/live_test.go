package page

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPlaywright(t *testing.T) (*playwright.Playwright, playwright.Browser, playwright.Page) {
	t.Helper()
	pw, err := playwright.Run()
	if err != nil {
		t.Skipf("playwright driver not available: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		_ = pw.Stop()
		t.Skipf("could not launch browser: %v", err)
	}
	pg, err := browser.NewPage()
	require.NoError(t, err)
	return pw, browser, pg
}

func TestLivePageReadsCurrentDOM(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}
	pw, browser, pg := setupPlaywright(t)
	defer pw.Stop()
	defer browser.Close()

	require.NoError(t, pg.SetContent(`<html><head><title>Jobs | LinkedIn</title>
<meta property="og:title" content="Backend Engineer - Acme - LinkedIn"></head>
<body><h1 class="t"> Backend   Engineer </h1><button>Remote</button><button>Hybrid</button></body></html>`))

	doc := NewLivePage(pg)
	assert.Equal(t, "Backend Engineer", doc.Text("h1.t"))
	assert.Equal(t, "", doc.Text("h2.none"))
	assert.Equal(t, "Backend Engineer - Acme - LinkedIn", doc.Meta("og:title"))
	assert.Equal(t, "Jobs | LinkedIn", doc.Title())
	assert.Equal(t, []string{"Remote", "Hybrid"}, doc.Texts("button"))

	_, err := pg.Evaluate(`document.querySelector("h1.t").textContent = "Changed"`)
	require.NoError(t, err)
	assert.Equal(t, "Changed", doc.Text("h1.t"))
}
