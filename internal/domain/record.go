package domain

import "strings"

type WorkMode string

const (
	WorkModeUnknown WorkMode = ""
	WorkModeRemote  WorkMode = "Remote"
	WorkModeHybrid  WorkMode = "Hybrid"
	WorkModeOnsite  WorkMode = "On-site"
)

const (
	DefaultStage   = "Applied"
	InitialOutcome = "Active"
	ProvenanceNote = "Captured from LinkedIn"
)

// JobRecord is what a capture produces and what POST /apply accepts.
// Every field is a plain string; empty means "not found".
type JobRecord struct {
	ExternalID    string   `json:"external_id"`
	Position      string   `json:"position"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	URL           string   `json:"url"`
	WorkMode      WorkMode `json:"work_mode"`
	Salary        string   `json:"salary"`
	Description   string   `json:"description"`
	Notes         string   `json:"notes"`
	Stage         string   `json:"stage"`
	Outcome       string   `json:"outcome"`
	NextInterview string   `json:"next_interview"`
}

// Annotations are the caller-supplied values merged into a record.
type Annotations struct {
	Stage string
	Notes string
}

// StageOrDefault returns the stage label, or DefaultStage when blank.
func (a Annotations) StageOrDefault() string {
	if s := strings.TrimSpace(a.Stage); s != "" {
		return s
	}
	return DefaultStage
}

// ComposeNotes prefixes the provenance tag to the user's free text.
func ComposeNotes(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		return ProvenanceNote
	}
	return ProvenanceNote + "\n\n" + user
}

// ParseWorkMode maps loose spellings onto the canonical set.
func ParseWorkMode(s string) (WorkMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return WorkModeUnknown, true
	case "remote":
		return WorkModeRemote, true
	case "hybrid":
		return WorkModeHybrid, true
	case "on-site", "on site", "onsite", "on‑site":
		return WorkModeOnsite, true
	default:
		return WorkModeUnknown, false
	}
}
