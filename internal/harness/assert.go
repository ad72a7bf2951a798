package harness

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/swatch/internal/style"
)

// Equals compares two style values under their natural string equality
// and returns the outcome. Values are NFC-normalized before comparison
// so composed and decomposed serializations of the same text cannot
// produce a spurious mismatch. The failure message carries both values
// and the caller's message.
//
// Pure: no side effects, never aborts execution. Aborting a subtest on
// failure is the runner's job, via T.
func Equals(actual, expected, message string) Outcome {
	if norm.NFC.String(actual) == norm.NFC.String(expected) {
		return Pass()
	}
	return Fail(CodeAssertionFailed,
		fmt.Sprintf("%s: expected %q, got %q", message, expected, actual))
}

// Throws invokes op and checks that it fails with the expected fault
// kind. Three verdicts:
//
//   - op returns a fault of the expected kind: Pass
//   - op completes without failing: Fail (the expected failure never
//     happened)
//   - op fails with a different kind: Fail, stating expected vs actual
//     kind
//
// A non-fault error compares as the TypeError kind.
func Throws(expected style.Kind, op func() error, message string) Outcome {
	if op == nil {
		return Fault(CodeUnexpectedFault, fmt.Sprintf("%s: no operation provided", message))
	}
	err := op()
	if err == nil {
		return Fail(CodeAssertionFailed,
			fmt.Sprintf("%s: expected %s fault, but operation completed", message, expected))
	}
	actual, _ := style.KindOf(err)
	if actual == expected {
		return Pass()
	}
	return Fail(CodeWrongErrorKind,
		fmt.Sprintf("%s: expected %s fault, got %s (%v)", message, expected, actual, err))
}
