package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeNotes(t *testing.T) {
	assert.Equal(t, "Captured from LinkedIn", ComposeNotes(""))
	assert.Equal(t, "Captured from LinkedIn", ComposeNotes("   "))
	assert.Equal(t, "Captured from LinkedIn\n\nreferral from Sam", ComposeNotes(" referral from Sam "))
}

func TestAnnotationsStageOrDefault(t *testing.T) {
	assert.Equal(t, "Applied", Annotations{}.StageOrDefault())
	assert.Equal(t, "Interviewing", Annotations{Stage: "Interviewing"}.StageOrDefault())
}

func TestParseWorkMode(t *testing.T) {
	tests := []struct {
		in   string
		want WorkMode
		ok   bool
	}{
		{"", WorkModeUnknown, true},
		{"remote", WorkModeRemote, true},
		{"Hybrid", WorkModeHybrid, true},
		{"On site", WorkModeOnsite, true},
		{"onsite", WorkModeOnsite, true},
		{"On‑site", WorkModeOnsite, true},
		{"flexible", WorkModeUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseWorkMode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestJobRecordWireNames(t *testing.T) {
	b, err := json.Marshal(JobRecord{Position: "Engineer", WorkMode: WorkModeOnsite})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{
		"external_id", "position", "company", "location", "url", "work_mode",
		"salary", "description", "notes", "stage", "outcome", "next_interview",
	} {
		assert.Contains(t, m, k)
	}
	assert.Equal(t, "On-site", m["work_mode"])
}
