package style

import (
	"fmt"
	"strings"

	"github.com/roach88/swatch/internal/document"
)

// View is one style surface for one element: either the live computed
// view or the mutable declared (inline) view. Unknown or unset
// properties answer with the empty string.
type View interface {
	// Ref returns the element reference the view was resolved for.
	Ref() string

	// ReadOnly reports whether mutation entry points reject writes.
	ReadOnly() bool

	// Value returns the view's value for a property, or "".
	Value(property string) string

	// SetValue writes one declaration. Read-only views fail with a
	// NoModificationAllowed fault.
	SetValue(property, value string) error

	// SetBulkText replaces the whole declaration block. Read-only views
	// fail with a NoModificationAllowed fault.
	SetBulkText(text string) error
}

// computedView is the live resolved view: every Value call runs the
// cascade afresh, so declared-view mutations are visible through it.
type computedView struct {
	eng *Engine
	el  *document.Element
	ref string
}

func (v *computedView) Ref() string { return v.ref }

func (v *computedView) ReadOnly() bool { return true }

func (v *computedView) Value(property string) string {
	prop := strings.ToLower(strings.TrimSpace(property))
	if _, ok := Lookup(prop); !ok {
		return ""
	}
	return v.eng.computedValue(v.el, prop)
}

func (v *computedView) SetValue(property, value string) error {
	return NewNoModificationFault("SetValue", v.ref)
}

func (v *computedView) SetBulkText(text string) error {
	return NewNoModificationFault("SetBulkText", v.ref)
}

// declaredView exposes an element's inline declarations as written.
type declaredView struct {
	el  *document.Element
	ref string
}

func (v *declaredView) Ref() string { return v.ref }

func (v *declaredView) ReadOnly() bool { return false }

func (v *declaredView) Value(property string) string {
	decls, err := ParseDeclarations(v.el.Style)
	if err != nil {
		return ""
	}
	val, _ := declarationValue(decls, strings.ToLower(strings.TrimSpace(property)))
	return val
}

// SetValue writes one inline declaration. An empty value removes the
// declaration, mirroring how a declaration surface clears properties.
func (v *declaredView) SetValue(property, value string) error {
	prop := strings.ToLower(strings.TrimSpace(property))
	if !validProperty.MatchString(prop) {
		return NewSyntaxFault("SetValue", v.ref, fmt.Sprintf("invalid property name %q", property))
	}

	decls, err := ParseDeclarations(v.el.Style)
	if err != nil {
		decls = nil
	}

	val := strings.TrimSpace(value)
	if val == "" {
		decls = removeDeclaration(decls, prop)
	} else {
		parsed, err := ParseDeclarations(prop + ": " + val)
		if err != nil || len(parsed) != 1 {
			return NewSyntaxFault("SetValue", v.ref, fmt.Sprintf("invalid value %q for %q", value, prop))
		}
		decls = setDeclaration(decls, prop, parsed[0].Value)
	}
	v.el.Style = SerializeDeclarations(decls)
	return nil
}

// SetBulkText replaces the whole inline declaration block.
func (v *declaredView) SetBulkText(text string) error {
	decls, err := ParseDeclarations(text)
	if err != nil {
		return NewSyntaxFault("SetBulkText", v.ref, err.Error())
	}
	v.el.Style = SerializeDeclarations(decls)
	return nil
}
