package harness

// Status classifies an assertion, subtest, or session outcome.
type Status string

const (
	// StatusPass means every evaluated assertion held.
	StatusPass Status = "pass"

	// StatusFail means a deliberate comparison mismatched: an expected
	// value differed, an expected fault never happened, or a fault had
	// the wrong kind.
	StatusFail Status = "fail"

	// StatusError means something outside the assertions went wrong:
	// an uncaught fault, a timeout, or a setup failure.
	StatusError Status = "error"
)

// Code identifies the category of a non-pass outcome.
// Codes are stable: they appear in reports and in the run store.
type Code string

const (
	// CodeAssertionFailed marks an expected-value mismatch, or an
	// operation that completed when a fault was expected.
	CodeAssertionFailed Code = "ASSERTION_FAILED"

	// CodeWrongErrorKind marks an operation that faulted, but not with
	// the expected kind.
	CodeWrongErrorKind Code = "WRONG_ERROR_KIND"

	// CodeUnexpectedFault marks an uncaught fault from a subtest body.
	CodeUnexpectedFault Code = "UNEXPECTED_FAULT"

	// CodeSubtestTimeout marks a body that exceeded its execution bound.
	CodeSubtestTimeout Code = "SUBTEST_TIMEOUT"

	// CodeSetupFailed marks a fixture whose one-time setup faulted.
	// Fatal to that fixture's session only; no subtest runs.
	CodeSetupFailed Code = "SETUP_FAILED"

	// CodeMalformedFixture marks a structural defect in a fixture
	// definition, surfaced at load time before any execution.
	CodeMalformedFixture Code = "MALFORMED_FIXTURE"
)

// Outcome is the result of one assertion, subtest, or session-level
// event. Pass outcomes carry no code or message.
type Outcome struct {
	Status  Status `json:"status"`
	Code    Code   `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Pass returns the passing outcome.
func Pass() Outcome {
	return Outcome{Status: StatusPass}
}

// Fail returns a failing outcome: a real mismatch in the system under
// test, recorded and moved past.
func Fail(code Code, message string) Outcome {
	return Outcome{Status: StatusFail, Code: code, Message: message}
}

// Fault returns an error outcome: the test itself could not run to a
// verdict.
func Fault(code Code, message string) Outcome {
	return Outcome{Status: StatusError, Code: code, Message: message}
}

// Passed reports whether the outcome is a pass.
func (o Outcome) Passed() bool {
	return o.Status == StatusPass
}
