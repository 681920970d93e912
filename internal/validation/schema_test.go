package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateApply(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  bool
		wantList bool
	}{
		{"full record", `{"external_id":"u","position":"Engineer","company":"Acme","location":"","url":"u","work_mode":"On-site","salary":"","description":"d","notes":"n","stage":"Applied","outcome":"Active","next_interview":""}`, false, false},
		{"minimal", `{"url":"https://example.com/jobs/1"}`, false, false},
		{"null next_interview", `{"url":"u","next_interview":null}`, false, false},
		{"unknown fields allowed", `{"url":"u","extra":1}`, false, false},
		{"missing url", `{"position":"Engineer"}`, true, true},
		{"empty url", `{"url":""}`, true, true},
		{"bad work mode", `{"url":"u","work_mode":"remote"}`, true, true},
		{"wrong type", `{"url":"u","position":42}`, true, true},
		{"not an object", `[1,2]`, true, true},
		{"not json", `{"url":`, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateApply([]byte(tt.body))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *Error
			assert.Equal(t, tt.wantList, errors.As(err, &verr))
			if tt.wantList {
				assert.NotEmpty(t, verr.Problems)
			}
		})
	}
}
