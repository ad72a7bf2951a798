package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"

	"github.com/roach88/swatch/internal/harness"
)

// RenderJSON renders the aggregate as indented JSON for machine
// consumption. Field order is fixed by the struct definitions, so the
// same aggregate always renders to the same bytes.
func RenderJSON(rep *AggregateReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TextOptions configures human rendering.
type TextOptions struct {
	// Color enables ANSI colors on the result marks.
	Color bool
}

// RenderText renders the aggregate for humans: one line per fixture,
// indented detail lines for every subtest that did not pass, and a
// closing summary.
func RenderText(rep *AggregateReport, opts TextOptions) []byte {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	if opts.Color {
		pass.EnableColor()
		fail.EnableColor()
	} else {
		pass.DisableColor()
		fail.DisableColor()
	}

	var buf bytes.Buffer
	for _, s := range rep.Sessions {
		counts := s.Count()
		switch {
		case s.Status == harness.StatusPass:
			fmt.Fprintf(&buf, "%s %s: %s (%d subtests)\n",
				pass.Sprint("✓"), s.FixtureID, s.Description, counts.Total())
		case s.SessionError != nil:
			fmt.Fprintf(&buf, "%s %s: %s\n",
				fail.Sprint("✗"), s.FixtureID, s.Description)
			fmt.Fprintf(&buf, "  %s [%s]\n", s.SessionError.Message, s.SessionError.Code)
		default:
			fmt.Fprintf(&buf, "%s %s: %s (%d subtests: %d passed, %d failed, %d errors)\n",
				fail.Sprint("✗"), s.FixtureID, s.Description,
				counts.Total(), counts.Passed, counts.Failed, counts.Errors)
			for _, res := range s.Results {
				if res.Outcome.Passed() {
					continue
				}
				if res.Description != "" {
					fmt.Fprintf(&buf, "  %s %s: %s\n", fail.Sprint("✗"), res.Name, res.Description)
				} else {
					fmt.Fprintf(&buf, "  %s %s\n", fail.Sprint("✗"), res.Name)
				}
				fmt.Fprintf(&buf, "    %s [%s]\n", res.Outcome.Message, res.Outcome.Code)
			}
		}
	}

	for _, f := range rep.LoadFailures {
		fmt.Fprintf(&buf, "%s %s: failed to load\n", fail.Sprint("✗"), f.Path)
		fmt.Fprintf(&buf, "  %s [%s]\n", f.Outcome.Message, f.Outcome.Code)
	}

	s := rep.Summary
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Fixtures: %d passed, %d failed, %d errors, %d unloadable (%d total)\n",
		s.FixturesPassed, s.FixturesFailed, s.FixtureErrors, s.LoadFailures, s.Fixtures)
	fmt.Fprintf(&buf, "Subtests: %d passed, %d failed, %d errors\n",
		s.Subtests.Passed, s.Subtests.Failed, s.Subtests.Errors)
	if rep.AllPassed() {
		fmt.Fprintf(&buf, "%s All fixtures passed\n", pass.Sprint("✓"))
	}
	return buf.Bytes()
}
