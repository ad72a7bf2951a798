package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/swatch/internal/harness"
	"github.com/roach88/swatch/internal/report"
)

// loadResult carries everything the load phase produced: the fixtures
// that bound cleanly, in argument order, and one load failure per
// manifest that did not.
type loadResult struct {
	Fixtures []*harness.Fixture
	Failures []report.LoadFailure
}

// loadFixtures loads every manifest up front, before anything runs. A
// malformed manifest becomes a load failure and does not stop the
// remaining paths from loading; an unreadable path is a command error
// and aborts immediately. A fixture id repeating across manifests is a
// load failure for the later path, so every session in a run reports
// under a distinct id.
func loadFixtures(paths []string, reg *harness.Registry) (*loadResult, error) {
	res := &loadResult{}
	seen := make(map[string]string) // fixture id -> first manifest path

	for _, path := range paths {
		fixture, err := harness.LoadFixture(path, reg)
		if err != nil {
			var malformed *harness.MalformedFixtureError
			if errors.As(err, &malformed) {
				res.Failures = append(res.Failures, report.LoadFailure{
					Path:    path,
					Outcome: harness.Fault(harness.CodeMalformedFixture, err.Error()),
				})
				continue
			}
			return nil, WrapExitError(ExitCommandError, "failed to load fixture", err)
		}

		if first, dup := seen[fixture.ID]; dup {
			res.Failures = append(res.Failures, report.LoadFailure{
				Path: path,
				Outcome: harness.Fault(harness.CodeMalformedFixture,
					fmt.Sprintf("duplicate fixture id %q (already loaded from %s)", fixture.ID, first)),
			})
			continue
		}
		seen[fixture.ID] = path
		res.Fixtures = append(res.Fixtures, fixture)
	}

	return res, nil
}
