package assemble

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/page"
)

const jobURL = "https://www.linkedin.com/jobs/view/4012345678/?refId=abc&trackingId=xyz"

func load(t *testing.T, name string) page.Document {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	doc, err := page.ParseString(jobURL, string(b))
	require.NoError(t, err)
	return doc
}

func parse(t *testing.T, src string) page.Document {
	t.Helper()
	doc, err := page.ParseString(jobURL, src)
	require.NoError(t, err)
	return doc
}

func TestAssembleUnifiedTopCard(t *testing.T) {
	res := New(Options{}).Assemble(load(t, "unified_top_card.html"), domain.Annotations{Stage: "Screening", Notes: "via referral"})
	rec := res.Record

	assert.True(t, res.Identified())
	assert.Equal(t, "https://www.linkedin.com/jobs/view/4012345678/", rec.ExternalID)
	assert.Equal(t, rec.ExternalID, rec.URL)
	assert.Equal(t, "Senior Go Engineer", rec.Position)
	assert.Equal(t, "Initech", rec.Company)
	assert.Equal(t, "Austin, TX", rec.Location)
	assert.Equal(t, domain.WorkModeHybrid, rec.WorkMode, "embedded keyword beats the Remote pill")
	assert.Equal(t, "$140,000 - $175,000 per year", rec.Salary)
	assert.Equal(t, "Initech is a software company. Pay range: $140,000 - $175,000 per year.", rec.Description)
	assert.Equal(t, "Captured from LinkedIn\n\nvia referral", rec.Notes)
	assert.Equal(t, "Screening", rec.Stage)
	assert.Equal(t, "Active", rec.Outcome)
	assert.Equal(t, "", rec.NextInterview)

	assert.Equal(t, map[string]string{
		FieldPosition:    "selectors",
		FieldCompany:     "selectors",
		FieldLocation:    "selectors",
		FieldWorkMode:    SourceEmbedded,
		FieldDescription: "selectors",
		FieldSalary:      SourceText,
	}, res.Sources)
}

func TestAssembleFromMetaOnly(t *testing.T) {
	res := New(Options{}).Assemble(load(t, "meta_only.html"), domain.Annotations{})
	rec := res.Record

	assert.Equal(t, "Backend Engineer", rec.Position)
	assert.Equal(t, "Acme", rec.Company)
	assert.Equal(t, "We are hiring in Denver, CO. Relocation assistance available. $60 - $75 per hour.", rec.Description)
	assert.Equal(t, "Denver, CO", rec.Location)
	assert.Equal(t, domain.WorkModeOnsite, rec.WorkMode)
	assert.Equal(t, "$60 - $75 per hour", rec.Salary)
	assert.Equal(t, "Applied", rec.Stage)
	assert.Equal(t, "Captured from LinkedIn", rec.Notes)

	assert.Equal(t, SourceTitleMeta, res.Sources[FieldPosition])
	assert.Equal(t, SourceTitleMeta, res.Sources[FieldCompany])
	assert.Equal(t, "meta:og:description", res.Sources[FieldDescription])
	assert.Equal(t, SourceText, res.Sources[FieldLocation])
	assert.Equal(t, SourceText, res.Sources[FieldWorkMode])
}

func TestAssembleBodyFallbackAndTextInference(t *testing.T) {
	res := New(Options{}).Assemble(load(t, "body_only.html"), domain.Annotations{})
	rec := res.Record

	assert.False(t, res.Identified(), "generic page titles are noise")
	assert.Equal(t, "", rec.Position)
	assert.False(t, strings.HasPrefix(strings.ToLower(rec.Description), "0 notifications"))
	assert.True(t, strings.HasPrefix(rec.Description, "You'll report to the VP"))
	assert.Equal(t, "Globex Corp", rec.Company)
	assert.Equal(t, "Springfield, IL", rec.Location)
	assert.Equal(t, domain.WorkModeRemote, rec.WorkMode)
	assert.Equal(t, SourceBody, res.Sources[FieldDescription])
}

func TestAssembleBodyFallbackIsBounded(t *testing.T) {
	long := strings.Repeat("word ", 2000)
	res := New(Options{DescriptionLimit: 1500}).Assemble(parse(t, "<body><div>"+long+"</div></body>"), domain.Annotations{})
	assert.Len(t, []rune(res.Record.Description), 1500)
}

func TestAssembleEmptyPage(t *testing.T) {
	res := New(Options{}).Assemble(parse(t, "<html><body></body></html>"), domain.Annotations{})
	rec := res.Record

	assert.False(t, res.Identified())
	assert.Equal(t, domain.JobRecord{
		ExternalID: "https://www.linkedin.com/jobs/view/4012345678/",
		URL:        "https://www.linkedin.com/jobs/view/4012345678/",
		Notes:      "Captured from LinkedIn",
		Stage:      "Applied",
		Outcome:    "Active",
	}, rec)
	assert.Empty(t, res.Sources)
}

func TestAssembleLabelPillsBeatText(t *testing.T) {
	doc := parse(t, `<body>
<h1>Data Engineer</h1>
<span class="jobs-unified-top-card__bullet">Chicago, IL</span>
<button>On site</button>
<div class="jobs-description__content">Occasional remote days.</div>
</body>`)
	res := New(Options{}).Assemble(doc, domain.Annotations{})

	assert.Equal(t, "Chicago, IL", res.Record.Location)
	assert.Equal(t, domain.WorkModeOnsite, res.Record.WorkMode)
	assert.Equal(t, SourceLabels, res.Sources[FieldWorkMode])
}

func TestAssembleLocationNeverKeepsKeyword(t *testing.T) {
	doc := parse(t, `<body><h1>X</h1>
<span data-test-job-location>Remote · Austin, TX (hybrid flexibility)</span></body>`)
	rec := New(Options{}).Assemble(doc, domain.Annotations{}).Record

	assert.Equal(t, domain.WorkModeRemote, rec.WorkMode)
	assert.Equal(t, "Austin, TX hybrid flexibility", rec.Location)
}

func TestAssembleInferredLocationWithKeywordIsDropped(t *testing.T) {
	doc := parse(t, `<body><h1>X</h1><div class="jobs-description__content">Open to Remote, US applicants.</div></body>`)
	rec := New(Options{}).Assemble(doc, domain.Annotations{}).Record

	assert.Equal(t, "", rec.Location)
	assert.Equal(t, domain.WorkModeRemote, rec.WorkMode)
}

func TestAssembleIsDeterministic(t *testing.T) {
	doc := load(t, "unified_top_card.html")
	a := New(Options{})

	first := a.Assemble(doc, domain.Annotations{Notes: "n"})
	second := a.Assemble(doc, domain.Annotations{Notes: "n"})
	assert.Equal(t, first, second)
}
