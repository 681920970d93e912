// Package validation checks /apply payloads against a JSON schema before
// they reach the store.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const applySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "JobRecord",
  "type": "object",
  "required": ["url"],
  "properties": {
    "external_id":    {"type": "string", "maxLength": 2048},
    "position":       {"type": "string", "maxLength": 512},
    "company":        {"type": "string", "maxLength": 512},
    "location":       {"type": "string", "maxLength": 512},
    "url":            {"type": "string", "minLength": 1, "maxLength": 2048},
    "work_mode":      {"enum": ["", "Remote", "Hybrid", "On-site"]},
    "salary":         {"type": "string", "maxLength": 512},
    "description":    {"type": "string", "maxLength": 200000},
    "notes":          {"type": "string", "maxLength": 20000},
    "stage":          {"type": "string", "maxLength": 128},
    "outcome":        {"type": "string", "maxLength": 128},
    "next_interview": {"type": ["string", "null"]}
  }
}`

var applySchema = mustSchema(applySchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("validation: bad built-in schema: %v", err))
	}
	return s
}

// Error lists every schema violation found in a payload.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return "payload validation failed: " + strings.Join(e.Problems, "; ")
}

// ValidateApply checks a raw /apply body. A body that isn't JSON at all is
// reported as a plain error, not an *Error.
func ValidateApply(body []byte) error {
	result, err := applySchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		problems[i] = desc.String()
	}
	return &Error{Problems: problems}
}
