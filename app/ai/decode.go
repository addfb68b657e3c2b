package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedOutputError reports model output that could not be parsed as
// the requested JSON shape. The raw text is kept for diagnostics.
type MalformedOutputError struct {
	Raw   string
	Cause error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed generation output: %v", e.Cause)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Cause
}

// DecodeJSON parses model output into v. Models occasionally wrap JSON
// in markdown code fences even when asked for raw JSON, so fences are
// stripped before parsing. Any parse failure is a hard error; callers
// must not retry.
func DecodeJSON(raw string, v interface{}) error {
	cleaned := stripCodeFences(raw)

	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &MalformedOutputError{Raw: raw, Cause: err}
	}

	return nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line (```json, ```, etc.)
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}

	return s
}
