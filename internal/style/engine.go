package style

import (
	"strings"

	"github.com/roach88/swatch/internal/document"
)

// Oracle is the style-resolution surface the harness checks against.
// The reference Engine implements it; fixtures could in principle be
// pointed at any other implementation.
//
// Refs name elements by id, or by tag name for elements declared
// without one (first match in document order).
type Oracle interface {
	// Resolve returns the live, read-only computed view for the
	// referenced element.
	Resolve(ref string) (View, error)

	// Declared returns the mutable inline-declaration view for the
	// referenced element.
	Declared(ref string) (View, error)
}

// Engine resolves computed style values for one loaded document.
//
// Construction parses every stylesheet rule and validates every
// element's inline declaration text, so resolution itself cannot fail:
// a document that reaches Resolve is known parseable.
type Engine struct {
	doc   *document.Document
	rules []rule
}

type rule struct {
	selector Selector
	decls    []Declaration
	seq      int
}

// New builds the reference oracle for a document.
// Unparseable selectors or declarations fail with a Syntax fault.
func New(doc *document.Document) (*Engine, error) {
	e := &Engine{doc: doc}
	for i, src := range doc.Styles {
		sel, err := ParseSelector(src.Selector)
		if err != nil {
			return nil, NewSyntaxFault("ParseSelector", src.Selector, err.Error())
		}
		decls, err := ParseDeclarations(src.Declarations)
		if err != nil {
			return nil, NewSyntaxFault("ParseDeclarations", src.Selector, err.Error())
		}
		e.rules = append(e.rules, rule{selector: sel, decls: decls, seq: i})
	}

	var walkErr error
	doc.Walk(func(el *document.Element) {
		if walkErr != nil || el.Style == "" {
			return
		}
		if _, err := ParseDeclarations(el.Style); err != nil {
			walkErr = NewSyntaxFault("ParseDeclarations", el.Ref(), err.Error())
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return e, nil
}

// Resolve implements Oracle.
func (e *Engine) Resolve(ref string) (View, error) {
	el := e.findElement(ref)
	if el == nil {
		return nil, NewNotFoundFault(ref)
	}
	return &computedView{eng: e, el: el, ref: ref}, nil
}

// Declared implements Oracle.
func (e *Engine) Declared(ref string) (View, error) {
	el := e.findElement(ref)
	if el == nil {
		return nil, NewNotFoundFault(ref)
	}
	return &declaredView{el: el, ref: ref}, nil
}

// findElement locates the element a ref names: an id match first, then
// the first element in document order with that tag.
func (e *Engine) findElement(ref string) *document.Element {
	if el := e.doc.ByID(ref); el != nil {
		return el
	}
	var match *document.Element
	e.doc.Walk(func(el *document.Element) {
		if match == nil && el.Tag == ref {
			match = el
		}
	})
	return match
}

// declaredFor returns the winning declared value for prop on el.
// Inline declarations beat stylesheet rules; among stylesheet rules,
// higher specificity wins and later source order breaks ties.
//
// Inline text is re-parsed on every call: declared views may have
// rewritten it since the engine was built, and computed views are live.
func (e *Engine) declaredFor(el *document.Element, prop string) (string, bool) {
	if el.Style != "" {
		if decls, err := ParseDeclarations(el.Style); err == nil {
			if v, ok := declarationValue(decls, prop); ok {
				return v, true
			}
		}
	}

	found := false
	var bestSpec Specificity
	var bestVal string
	for _, r := range e.rules {
		if !r.selector.Matches(el) {
			continue
		}
		v, ok := declarationValue(r.decls, prop)
		if !ok {
			continue
		}
		// Iteration follows source order, so >= lets a later rule of
		// equal specificity displace an earlier one.
		if !found || r.selector.Specificity().Compare(bestSpec) >= 0 {
			found = true
			bestSpec = r.selector.Specificity()
			bestVal = v
		}
	}
	return bestVal, found
}

// computedFor resolves the full computed map for el, recursing through
// ancestors for inherited values and font-relative units.
func (e *Engine) computedFor(el *document.Element) map[string]string {
	var parentComputed map[string]string
	parentFont := float64(defaultFontPx)
	if p := el.Parent(); p != nil {
		parentComputed = e.computedFor(p)
		if f, ok := pxValue(parentComputed["font-size"]); ok {
			parentFont = f
		}
	}

	computed := make(map[string]string, len(registry))

	// font-size resolves first: other length properties depend on it.
	computed["font-size"] = e.resolveProperty(el, registry["font-size"], parentComputed, parentFont, parentFont)
	ownFont := parentFont
	if f, ok := pxValue(computed["font-size"]); ok {
		ownFont = f
	}

	for name, prop := range registry {
		if name == "font-size" {
			continue
		}
		computed[name] = e.resolveProperty(el, prop, parentComputed, parentFont, ownFont)
	}
	return computed
}

func (e *Engine) resolveProperty(el *document.Element, prop Property, parentComputed map[string]string, parentFont, ownFont float64) string {
	v, declared := e.declaredFor(el, prop.Name)
	if declared {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "inherit":
			if parentComputed != nil {
				return parentComputed[prop.Name]
			}
			return prop.Initial
		case "initial":
			return prop.Initial
		}
		return normalizeValue(prop.Name, v, parentFont, ownFont)
	}
	if prop.Inherited && parentComputed != nil {
		return parentComputed[prop.Name]
	}
	return prop.Initial
}

func (e *Engine) computedValue(el *document.Element, prop string) string {
	return e.computedFor(el)[prop]
}
