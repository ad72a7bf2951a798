// Package document loads styled documents from CUE sources.
//
// A styled document is the read-only input a conformance fixture runs
// against: an element tree plus the stylesheet sources that apply to it.
// Documents are validated against an embedded CUE schema at load time,
// then indexed so elements can be looked up by id. The harness never
// mutates a document directly; only inline style text changes, and only
// through the oracle's declared views.
package document

import (
	"fmt"
	"strings"
)

// Document is one loaded styled document.
//
// Immutable after Load apart from Element.Style, which the style
// oracle's declared views may rewrite.
type Document struct {
	// Title is a human-readable label for diagnostics.
	Title string `json:"title,omitempty"`

	// Styles holds the stylesheet sources in declaration order.
	Styles []StyleSource `json:"styles,omitempty"`

	// Root is the tree root. Never nil after a successful Load.
	Root *Element `json:"root"`

	byID map[string]*Element
}

// StyleSource is one stylesheet rule as written in the document.
// Parsing the selector and declarations is the style package's job.
type StyleSource struct {
	Selector     string `json:"selector"`
	Declarations string `json:"declarations"`
}

// Element is one node of the document tree.
type Element struct {
	// Tag is the element name (lowercase).
	Tag string `json:"tag"`

	// ID is the element identifier, unique within the document when set.
	ID string `json:"id,omitempty"`

	// Class is the space-separated class list.
	Class string `json:"class,omitempty"`

	// Style is the inline declaration text. Mutable through declared views.
	Style string `json:"style,omitempty"`

	// Text is the element's text content. Unused by resolution; kept so
	// documents read like the pages they stand in for.
	Text string `json:"text,omitempty"`

	Children []*Element `json:"children,omitempty"`

	parent *Element
}

// Parent returns the enclosing element, or nil for the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Classes returns the class list split on whitespace.
func (e *Element) Classes() []string {
	return strings.Fields(e.Class)
}

// Ref returns the identifier diagnostics should use for this element:
// the id when set, otherwise the tag.
func (e *Element) Ref() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Tag
}

// New assembles a document from an already-built tree and indexes it.
// Used by tests and programmatic callers; file-based documents go
// through Load.
func New(title string, styles []StyleSource, root *Element) (*Document, error) {
	d := &Document{Title: title, Styles: styles, Root: root}
	if err := d.index(); err != nil {
		return nil, err
	}
	return d, nil
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	return d.byID[id]
}

// Walk visits every element in document order, parents before children.
func (d *Document) Walk(fn func(*Element)) {
	if d.Root == nil {
		return
	}
	walk(d.Root, fn)
}

func walk(e *Element, fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		walk(c, fn)
	}
}

// index wires parent pointers and builds the id lookup table.
// Duplicate ids are a structural defect in the document.
func (d *Document) index() error {
	d.byID = make(map[string]*Element)
	if d.Root == nil {
		return fmt.Errorf("document has no root element")
	}
	return d.indexElement(d.Root, nil)
}

func (d *Document) indexElement(e *Element, parent *Element) error {
	e.parent = parent
	if e.ID != "" {
		if _, dup := d.byID[e.ID]; dup {
			return fmt.Errorf("duplicate element id %q", e.ID)
		}
		d.byID[e.ID] = e
	}
	for _, c := range e.Children {
		if err := d.indexElement(c, e); err != nil {
			return err
		}
	}
	return nil
}
