// Package checks provides the built-in conformance checks that fixture
// manifests reference by name.
//
// Each check is a Builder: it validates its manifest parameters at load
// time and returns a subtest body. Bodies read and store style views
// through the shared Env, so a fixture can resolve a view once and
// assert against it across several subtests.
//
// Parameter conventions:
//
//   - "element" names a document element (id, or tag for id-less
//     elements)
//   - "view" names a slot in the Env, stored earlier by view_resolves
//     or declared_set_value
//   - "kind" names a fault kind and defaults to NoModificationAllowed
//     where a default makes sense
package checks

import (
	"fmt"
	"strings"

	"github.com/roach88/swatch/internal/harness"
	"github.com/roach88/swatch/internal/style"
)

// Info describes one built-in check for listings.
type Info struct {
	Name    string
	Summary string
	Params  []string

	builder harness.Builder
}

var catalog = []Info{
	{
		Name:    "view_resolves",
		Summary: "Resolve an element's computed view and store it for later subtests",
		Params:  []string{"element", "as (optional, defaults to element)"},
		builder: viewResolves,
	},
	{
		Name:    "resolve_throws",
		Summary: "Resolving an element fails with the expected fault kind",
		Params:  []string{"element", "kind (optional, defaults to NotFound)"},
		builder: resolveThrows,
	},
	{
		Name:    "value_equals",
		Summary: "A stored view reports the expected value for a property",
		Params:  []string{"view", "property", "expect"},
		builder: valueEquals,
	},
	{
		Name:    "values_match",
		Summary: "Two stored views agree on a property's value",
		Params:  []string{"view", "other", "property"},
		builder: valuesMatch,
	},
	{
		Name:    "value_empty",
		Summary: "A stored view reports the empty string for a property",
		Params:  []string{"view", "property"},
		builder: valueEmpty,
	},
	{
		Name:    "set_value_throws",
		Summary: "Writing a property through a stored view fails with the expected fault kind",
		Params:  []string{"view", "property", "value", "kind (optional)"},
		builder: setValueThrows,
	},
	{
		Name:    "set_text_throws",
		Summary: "Replacing a stored view's declaration text fails with the expected fault kind",
		Params:  []string{"view", "text", "kind (optional)"},
		builder: setTextThrows,
	},
	{
		Name:    "declared_set_value",
		Summary: "Write a property through an element's declared view and read it back",
		Params:  []string{"element", "property", "value", "as (optional)"},
		builder: declaredSetValue,
	},
}

// NewRegistry returns a registry holding every built-in check.
func NewRegistry() *harness.Registry {
	reg := harness.NewRegistry()
	for _, c := range catalog {
		reg.MustRegister(c.Name, c.builder)
	}
	return reg
}

// Catalog lists the built-in checks in a stable order.
func Catalog() []Info {
	return append([]Info(nil), catalog...)
}

// mustView fetches a stored view or aborts the body with the slot
// names that do exist.
func mustView(ht *harness.T, env *harness.Env, name string) style.View {
	view, ok := env.View(name)
	if !ok || view == nil {
		ht.Fatalf("no view stored under %q (have: %s)",
			name, strings.Join(env.ViewNames(), ", "))
	}
	return view
}

func viewResolves(args harness.Args) (harness.Body, error) {
	if err := args.AllowOnly("element", "as"); err != nil {
		return nil, err
	}
	element, err := args.Require("element")
	if err != nil {
		return nil, err
	}
	slot := element
	if as, ok := args.Get("as"); ok && as != "" {
		slot = as
	}
	return func(ht *harness.T, env *harness.Env) {
		view, err := env.Oracle.Resolve(element)
		if err != nil {
			ht.Fatalf("resolve %q: %v", element, err)
		}
		if view == nil {
			ht.Fatalf("resolve %q returned no view", element)
		}
		env.StoreView(slot, view)
	}, nil
}

func resolveThrows(args harness.Args) (harness.Body, error) {
	if err := args.AllowOnly("element", "kind"); err != nil {
		return nil, err
	}
	element, err := args.Require("element")
	if err != nil {
		return nil, err
	}
	kind, err := optionalKind(args, style.KindNotFound)
	if err != nil {
		return nil, err
	}
	return func(ht *harness.T, env *harness.Env) {
		ht.Throws(kind, func() error {
			_, err := env.Oracle.Resolve(element)
			return err
		}, fmt.Sprintf("resolve %q", element))
	}, nil
}

func valueEquals(args harness.Args) (harness.Body, error) {
	if err := args.AllowOnly("view", "property", "expect"); err != nil {
		return nil, err
	}
	viewName, err := args.Require("view")
	if err != nil {
		return nil, err
	}
	property, err := args.Require("property")
	if err != nil {
		return nil, err
	}
	expect, ok := args.Get("expect")
	if !ok {
		return nil, fmt.Errorf("missing required param %q", "expect")
	}
	return func(ht *harness.T, env *harness.Env) {
		view := mustView(ht, env, viewName)
		ht.Equals(view.Value(property), expect,
			fmt.Sprintf("%s of view %q", property, viewName))
	}, nil
}

func valuesMatch(args harness.Args) (harness.Body, error) {
	if err := args.AllowOnly("view", "other", "property"); err != nil {
		return nil, err
	}
	viewName, err := args.Require("view")
	if err != nil {
		return nil, err
	}
	otherName, err := args.Require("other")
	if err != nil {
		return nil, err
	}
	property, err := args.Require("property")
	if err != nil {
		return nil, err
	}
	return func(ht *harness.T, env *harness.Env) {
		view := mustView(ht, env, viewName)
		other := mustView(ht, env, otherName)
		ht.Equals(view.Value(property), other.Value(property),
			fmt.Sprintf("%s of views %q and %q", property, viewName, otherName))
	}, nil
}

func valueEmpty(args harness.Args) (harness.Body, error) {
	if err := args.AllowOnly("view", "property"); err != nil {
		return nil, err
	}
	viewName, err := args.Require("view")
	if err != nil {
		return nil, err
	}
	property, err := args.Require("property")
	if err != nil {
		return nil, err
	}
	return func(ht *harness.T, env *harness.Env) {
		view := mustView(ht, env, viewName)
		ht.Equals(view.Value(property), "",
			fmt.Sprintf("%s of view %q", property, viewName))
	}, nil
}

func setValueThrows(args harness.Args) (harness.Body, error) {
	if err := args.AllowOnly("view", "property", "value", "kind"); err != nil {
		return nil, err
	}
	viewName, err := args.Require("view")
	if err != nil {
		return nil, err
	}
	property, err := args.Require("property")
	if err != nil {
		return nil, err
	}
	value, err := args.Require("value")
	if err != nil {
		return nil, err
	}
	kind, err := optionalKind(args, style.KindNoModificationAllowed)
	if err != nil {
		return nil, err
	}
	return func(ht *harness.T, env *harness.Env) {
		view := mustView(ht, env, viewName)
		ht.Throws(kind, func() error {
			return view.SetValue(property, value)
		}, fmt.Sprintf("set %s on view %q", property, viewName))
	}, nil
}

func setTextThrows(args harness.Args) (harness.Body, error) {
	if err := args.AllowOnly("view", "text", "kind"); err != nil {
		return nil, err
	}
	viewName, err := args.Require("view")
	if err != nil {
		return nil, err
	}
	text, ok := args.Get("text")
	if !ok {
		return nil, fmt.Errorf("missing required param %q", "text")
	}
	kind, err := optionalKind(args, style.KindNoModificationAllowed)
	if err != nil {
		return nil, err
	}
	return func(ht *harness.T, env *harness.Env) {
		view := mustView(ht, env, viewName)
		ht.Throws(kind, func() error {
			return view.SetBulkText(text)
		}, fmt.Sprintf("set declaration text on view %q", viewName))
	}, nil
}

func declaredSetValue(args harness.Args) (harness.Body, error) {
	if err := args.AllowOnly("element", "property", "value", "as"); err != nil {
		return nil, err
	}
	element, err := args.Require("element")
	if err != nil {
		return nil, err
	}
	property, err := args.Require("property")
	if err != nil {
		return nil, err
	}
	value, err := args.Require("value")
	if err != nil {
		return nil, err
	}
	slot, _ := args.Get("as")
	return func(ht *harness.T, env *harness.Env) {
		view, err := env.Oracle.Declared(element)
		if err != nil {
			ht.Fatalf("declared view for %q: %v", element, err)
		}
		if err := view.SetValue(property, value); err != nil {
			ht.Fatalf("set %s on declared view %q: %v", property, element, err)
		}
		ht.Equals(view.Value(property), value,
			fmt.Sprintf("%s read back from declared view %q", property, element))
		if slot != "" {
			env.StoreView(slot, view)
		}
	}, nil
}

// optionalKind parses the "kind" parameter, falling back to a default.
// Unknown kinds fail at load time.
func optionalKind(args harness.Args, fallback style.Kind) (style.Kind, error) {
	name, ok := args.Get("kind")
	if !ok || name == "" {
		return fallback, nil
	}
	return style.ParseKind(name)
}
