package report

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares rendered report bytes against a golden file in
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/report -update
func AssertGolden(t *testing.T, name string, rendered []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, rendered)
}
