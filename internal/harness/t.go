package harness

import (
	"fmt"
	"sync"

	"github.com/roach88/swatch/internal/style"
)

// T is the assertion recorder handed to subtest bodies. Methods wrap
// the pure assertion functions: the outcome is recorded and, when it is
// not a pass, the body is aborted so no further assertions run. The
// first non-pass outcome is the subtest's outcome.
//
// Thread-safety: T is mutex-guarded because a timed-out body keeps
// running on its abandoned goroutine; its late records are dropped.
type T struct {
	mu        sync.Mutex
	outcome   Outcome
	done      bool
	abandoned bool
}

// abortSubtest is the sentinel panic that unwinds a subtest body after
// a non-pass record. Only the runner's recover interprets it.
type abortSubtest struct{}

func newT() *T {
	return &T{outcome: Pass()}
}

// Equals records an equality assertion and aborts the body on mismatch.
func (t *T) Equals(actual, expected, message string) {
	t.record(Equals(actual, expected, message))
}

// Throws records a throws-with-kind assertion and aborts the body when
// the operation did not fail with the expected kind.
func (t *T) Throws(expected style.Kind, op func() error, message string) {
	t.record(Throws(expected, op, message))
}

// Fatalf records an error outcome for a body that cannot proceed
// (for example a missing captured view) and aborts it.
func (t *T) Fatalf(format string, args ...any) {
	t.record(Fault(CodeUnexpectedFault, fmt.Sprintf(format, args...)))
}

// record stores the first non-pass outcome and aborts the body for any
// non-pass. Records after abandonment are dropped but still abort, so a
// leaked goroutine unwinds instead of running its remaining assertions.
func (t *T) record(o Outcome) {
	t.mu.Lock()
	if t.abandoned {
		t.mu.Unlock()
		panic(abortSubtest{})
	}
	if o.Passed() {
		t.mu.Unlock()
		return
	}
	if !t.done {
		t.outcome = o
		t.done = true
	}
	t.mu.Unlock()
	panic(abortSubtest{})
}

// snapshot returns the recorded outcome.
func (t *T) snapshot() Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outcome
}

// abandon marks the recorder as no longer listened to.
func (t *T) abandon() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.abandoned = true
}
