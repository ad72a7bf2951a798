// Package harness executes style-resolution conformance fixtures.
//
// The harness loads fixture manifests, binds their subtests to
// registered checks, and runs each fixture as an isolated session that
// reports a per-subtest outcome.
//
// # Fixture Format
//
// Fixtures are defined in YAML files with the following structure:
//
//	fixture: computed_style_basics
//	description: "Computed views resolve cascade results and stay read-only"
//	document: documents/basic.cue
//	timeout: 2s
//	subtests:
//	  - name: resolve_content
//	    description: "Resolving a known element yields a view"
//	    check: view_resolves
//	    with: { element: content, as: content }
//	  - name: read_only
//	    description: "Computed views reject writes"
//	    check: set_value_throws
//	    with: { view: content, property: color, value: red }
//
// Decoding is strict: unknown fields, missing names, duplicate subtest
// names, and unknown checks are all load errors, collected together in
// a MalformedFixtureError. A malformed fixture loads zero subtests.
//
// # Execution Model
//
// A Session runs one fixture once:
//
//   - Setup runs first and at most once. It loads the fixture's styled
//     document and builds the style oracle over it. A setup failure is
//     a session-level error and no subtest runs.
//   - Each subtest body runs on its own goroutine behind a recovery
//     barrier. Assertion failures, uncaught panics, and timeouts become
//     outcomes; nothing a subtest does can abort the session.
//   - Every subtest runs regardless of earlier outcomes, and the report
//     carries one result per subtest in declaration order.
//
// Outcomes carry a status (pass, fail, error) and, for non-passing
// results, a stable code and a message naming the mismatch.
//
// # Usage
//
// Load a fixture against a check registry and run it:
//
//	fixture, err := harness.LoadFixture("testdata/fixtures/basic.yaml", reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report := harness.NewSession(fixture).Run(ctx)
//	if report.Status != harness.StatusPass {
//	    for _, res := range report.Results {
//	        log.Println(res.Name, res.Outcome.Message)
//	    }
//	}
package harness
