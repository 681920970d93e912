// Package assemble builds a JobRecord from a page, field by field.
package assemble

import (
	"regexp"

	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/extract"
	"jobflow-engine/internal/infer"
	"jobflow-engine/internal/page"
)

const DefaultDescriptionLimit = 2000

// Field names used as keys of Result.Sources.
const (
	FieldPosition    = "position"
	FieldCompany     = "company"
	FieldLocation    = "location"
	FieldDescription = "description"
	FieldWorkMode    = "work_mode"
	FieldSalary      = "salary"
)

// Source names for values that didn't come from an extract.Attempt.
const (
	SourceTitleMeta = "title-meta"
	SourceText      = "text"
	SourceEmbedded  = "location"
	SourceLabels    = "labels"
	SourceBody      = "body"
)

// LinkedIn's logged-in body text starts with the notification badge.
var reNoisePrefix = regexp.MustCompile(`(?i)^0 notifications?(?:\s+total)?\s*`)

type Options struct {
	// DescriptionLimit bounds the body-text fallback, in characters.
	DescriptionLimit int
}

type Assembler struct {
	descLimit int

	title       extract.Strategy
	company     extract.Strategy
	location    extract.Strategy
	description extract.Strategy
}

func New(opts Options) *Assembler {
	limit := opts.DescriptionLimit
	if limit <= 0 {
		limit = DefaultDescriptionLimit
	}
	a := &Assembler{descLimit: limit}

	a.title = extract.Strategy{extract.FromSelectors("selectors", extract.TitleSelectors)}
	a.company = extract.Strategy{extract.FromSelectors("selectors", extract.CompanySelectors)}
	a.location = extract.Strategy{extract.FromSelectors("selectors", extract.LocationSelectors)}
	a.description = extract.Strategy{
		extract.FromSelectors("selectors", extract.DescriptionSelectors),
		extract.FromMeta("og:description"),
		{Name: SourceBody, Try: func(doc page.Document) string {
			return page.Truncate(stripNoise(doc.BodyText()), a.descLimit)
		}},
	}
	return a
}

// Result is an assembled record plus which source filled each field.
type Result struct {
	Record  domain.JobRecord
	Sources map[string]string
}

// Identified reports whether a title was found. An unidentified record is
// still complete; the caller decides whether to send it.
func (r Result) Identified() bool {
	return r.Record.Position != ""
}

// Assemble never fails: fields that can't be found are left empty.
// Two calls against an unchanged document return equal results.
func (a *Assembler) Assemble(doc page.Document, ann domain.Annotations) Result {
	src := map[string]string{}
	set := func(field, value, source string) string {
		if value != "" {
			src[field] = source
		}
		return value
	}

	canonical := page.CanonicalURL(doc.URL())

	// 1. title, with og:title / <title> as the fallback
	title, how := a.title.Run(doc)
	if title == "" {
		title, _ = infer.TitleFromMeta(doc.Meta("og:title"), doc.Title())
		how = SourceTitleMeta
	}
	title = set(FieldPosition, title, how)

	// description is resolved before the text-based fallbacks that read it
	description, how := a.description.Run(doc)
	description = set(FieldDescription, stripNoise(description), how)

	// 2. company
	company, how := a.company.Run(doc)
	if company == "" {
		_, company = infer.TitleFromMeta(doc.Meta("og:title"), doc.Title())
		how = SourceTitleMeta
	}
	if company == "" && description != "" {
		company, how = infer.CompanyFromText(description), SourceText
	}
	company = set(FieldCompany, company, how)

	// 3. location; a combined location string may carry the work mode
	var mode domain.WorkMode
	location, how := a.location.Run(doc)
	if location != "" {
		location, mode = infer.SplitWorkMode(location)
		if mode != domain.WorkModeUnknown {
			src[FieldWorkMode] = SourceEmbedded
		}
	}
	if location == "" && description != "" {
		if loc, embedded := infer.SplitWorkMode(infer.LocationFromText(description)); embedded == domain.WorkModeUnknown {
			location, how = loc, SourceText
		}
	}
	location = set(FieldLocation, location, how)

	// 5. work mode: embedded, then pills, then description text
	if mode == domain.WorkModeUnknown {
		mode = infer.WorkModeFromLabels(doc.Texts(extract.LabelSelectors))
		set(FieldWorkMode, string(mode), SourceLabels)
	}
	if mode == domain.WorkModeUnknown && description != "" {
		mode = infer.WorkModeFromText(description)
		set(FieldWorkMode, string(mode), SourceText)
	}

	// 6. salary
	salary := set(FieldSalary, infer.SalaryFromText(description), SourceText)

	return Result{
		Record: domain.JobRecord{
			ExternalID:    canonical,
			Position:      title,
			Company:       company,
			Location:      location,
			URL:           canonical,
			WorkMode:      mode,
			Salary:        salary,
			Description:   description,
			Notes:         domain.ComposeNotes(ann.Notes),
			Stage:         ann.StageOrDefault(),
			Outcome:       domain.InitialOutcome,
			NextInterview: "",
		},
		Sources: src,
	}
}

func stripNoise(s string) string {
	return reNoisePrefix.ReplaceAllString(s, "")
}
