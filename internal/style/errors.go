package style

import (
	"errors"
	"fmt"
	"sort"
)

// Fault represents a failure raised by the style oracle.
//
// Faults carry a Kind from a closed enumeration so that conformance
// checks can match failures by value instead of inspecting dynamic
// error types. The kinds mirror DOM exception names (e.g. a computed
// style view rejects mutation with NoModificationAllowed).
type Fault struct {
	// Kind identifies the failure category.
	Kind Kind

	// Op names the operation that failed (e.g. "SetValue").
	Op string

	// Ref identifies the element or view involved, when known.
	Ref string

	// Message is a human-readable description.
	Message string
}

// Kind categorizes oracle faults. The set is closed: assertion
// parameters referencing an unknown kind are rejected at fixture
// load time via ParseKind.
type Kind string

const (
	// KindNoModificationAllowed indicates a write to a read-only view.
	KindNoModificationAllowed Kind = "NoModificationAllowed"

	// KindNotFound indicates an element reference that resolved to nothing.
	KindNotFound Kind = "NotFound"

	// KindTypeError indicates a failure outside the oracle's fault model,
	// such as a nil view or a foreign error type.
	KindTypeError Kind = "TypeError"

	// KindSyntax indicates unparseable declaration text.
	KindSyntax Kind = "Syntax"
)

// knownKinds is the closed enumeration ParseKind accepts.
var knownKinds = map[Kind]bool{
	KindNoModificationAllowed: true,
	KindNotFound:              true,
	KindTypeError:             true,
	KindSyntax:                true,
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Op != "" && f.Ref != "" {
		return fmt.Sprintf("%s: %s (op=%s, ref=%s)", f.Kind, f.Message, f.Op, f.Ref)
	}
	if f.Ref != "" {
		return fmt.Sprintf("%s: %s (ref=%s)", f.Kind, f.Message, f.Ref)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// KindOf extracts the fault kind from an error chain.
// Non-fault errors report KindTypeError with ok=false so callers can
// distinguish "faulted with a foreign error" from "faulted with kind X".
// Uses errors.As to handle wrapped errors.
func KindOf(err error) (Kind, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return KindTypeError, false
}

// IsNoModificationAllowed returns true if the error is a read-only
// view rejection. Uses errors.As to handle wrapped errors.
func IsNoModificationAllowed(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNoModificationAllowed
}

// ParseKind validates a kind name against the closed enumeration.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !knownKinds[k] {
		return "", fmt.Errorf("unknown fault kind %q (valid: %s)", s, knownKindList())
	}
	return k, nil
}

// KnownKinds returns the valid kind names in sorted order.
func KnownKinds() []string {
	return knownKindList()
}

func knownKindList() []string {
	names := make([]string, 0, len(knownKinds))
	for k := range knownKinds {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// NewNoModificationFault creates a Fault for a rejected write on a
// read-only view.
func NewNoModificationFault(op, ref string) *Fault {
	return &Fault{
		Kind:    KindNoModificationAllowed,
		Op:      op,
		Ref:     ref,
		Message: "view is read-only",
	}
}

// NewNotFoundFault creates a Fault for an unresolved element reference.
func NewNotFoundFault(ref string) *Fault {
	return &Fault{
		Kind:    KindNotFound,
		Ref:     ref,
		Message: "no element with this id",
	}
}

// NewSyntaxFault creates a Fault for unparseable declaration text.
func NewSyntaxFault(op, ref, detail string) *Fault {
	return &Fault{
		Kind:    KindSyntax,
		Op:      op,
		Ref:     ref,
		Message: detail,
	}
}
