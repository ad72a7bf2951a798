package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/swatch/internal/harness"
)

// marshalOutcome converts a session-level outcome to JSON TEXT.
// Uses json.Encoder with HTML escaping disabled so stored text matches
// the canonical form used for report hashing.
// Note: Outcome is a struct, so we build a map with sorted keys to
// ensure consistent output across writes.
func marshalOutcome(o harness.Outcome) (string, error) {
	// Go's json.Marshal sorts map keys alphabetically since Go 1.12
	m := map[string]any{
		"code":    string(o.Code),
		"message": o.Message,
		"status":  string(o.Status),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("marshal outcome: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalOutcome parses JSON TEXT to an Outcome.
func unmarshalOutcome(data string) (harness.Outcome, error) {
	var o harness.Outcome
	if data == "" || data == "{}" {
		return o, nil
	}
	if err := json.Unmarshal([]byte(data), &o); err != nil {
		return harness.Outcome{}, fmt.Errorf("unmarshal outcome: %w", err)
	}
	return o, nil
}
