package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/swatch/internal/harness"
)

// DomainReport is the domain prefix for report content hashing. The
// version suffix leaves room for algorithm migration.
const DomainReport = "swatch/report/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data). The null byte
// separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SessionHash computes the content-addressed identity of one session
// report. Durations are excluded: two runs with identical verdicts
// hash identically regardless of timing.
func SessionHash(rep harness.SessionReport) (string, error) {
	canonical, err := MarshalCanonical(canonicalSession(rep))
	if err != nil {
		return "", fmt.Errorf("SessionHash: %w", err)
	}
	return hashWithDomain(DomainReport, canonical), nil
}

// ReportHash computes the content-addressed identity of a whole run.
// The summary is derived data and excluded, as are durations.
func ReportHash(rep *AggregateReport) (string, error) {
	sessions := make([]any, len(rep.Sessions))
	for i, s := range rep.Sessions {
		sessions[i] = canonicalSession(s)
	}
	failures := make([]any, len(rep.LoadFailures))
	for i, f := range rep.LoadFailures {
		failures[i] = map[string]any{
			"path":    f.Path,
			"outcome": canonicalOutcome(f.Outcome),
		}
	}

	canonical, err := MarshalCanonical(map[string]any{
		"sessions":      sessions,
		"load_failures": failures,
	})
	if err != nil {
		return "", fmt.Errorf("ReportHash: %w", err)
	}
	return hashWithDomain(DomainReport, canonical), nil
}

func canonicalSession(rep harness.SessionReport) map[string]any {
	results := make([]any, len(rep.Results))
	for i, r := range rep.Results {
		results[i] = map[string]any{
			"name":        r.Name,
			"description": r.Description,
			"outcome":     canonicalOutcome(r.Outcome),
		}
	}
	m := map[string]any{
		"fixture_id":  rep.FixtureID,
		"description": rep.Description,
		"status":      string(rep.Status),
		"results":     results,
	}
	if rep.SessionError != nil {
		m["session_error"] = canonicalOutcome(*rep.SessionError)
	}
	return m
}

func canonicalOutcome(o harness.Outcome) map[string]any {
	m := map[string]any{"status": string(o.Status)}
	if o.Code != "" {
		m["code"] = string(o.Code)
	}
	if o.Message != "" {
		m["message"] = o.Message
	}
	return m
}
