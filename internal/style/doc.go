// Package style is the reference style-resolution oracle.
//
// The harness checks computed style values against an oracle it does not
// implement; this package is the small in-repo implementation fixtures
// run against by default. It resolves a closed property registry over a
// loaded document:
//
//   - initial values from the registry
//   - stylesheet declarations, by selector specificity then source order
//   - inline declarations, which beat the stylesheet
//   - inheritance for inherited properties, plus the inherit/initial
//     keywords
//   - normalization of colors to rgb()/rgba() and of px/em lengths,
//     with em resolved against the parent's computed font-size
//
// Resolution is exposed through two view flavors. Computed views are
// live (every Value call re-resolves, so inline mutations are visible)
// and read-only: SetValue and SetBulkText fail with a
// NoModificationAllowed fault. Declared views expose and mutate an
// element's inline declaration text.
//
// Faults carry a Kind from a closed enumeration (see errors.go) so
// conformance checks match failures by value.
//
// Deliberately not a CSS engine: simple selectors only (tag, #id,
// .class, *, no combinators), no !important, no shorthand expansion,
// no layout-dependent used values.
package style
