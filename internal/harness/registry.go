package harness

import (
	"fmt"
	"sort"
	"strings"
)

// Args is the parameter map a manifest's "with" block passes to a
// check builder. Values are strings; builders parse what they need.
type Args map[string]string

// Get returns a parameter value.
func (a Args) Get(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// Require returns a parameter value or an error naming the missing key.
func (a Args) Require(key string) (string, error) {
	v, ok := a[key]
	if !ok || v == "" {
		return "", fmt.Errorf("missing required param %q", key)
	}
	return v, nil
}

// AllowOnly rejects parameters outside the given set, so a typo in a
// manifest fails at load time instead of being silently ignored.
func (a Args) AllowOnly(keys ...string) error {
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}
	var unknown []string
	for k := range a {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown params: %s", strings.Join(unknown, ", "))
}

// Builder constructs a subtest body from manifest parameters. Builders
// validate their parameters here, at load time, so a bad manifest is a
// MalformedFixtureError before anything executes.
type Builder func(args Args) (Body, error)

// Registry maps check names to builders. The fixture loader binds each
// manifest subtest to a registered check by name; an unknown name is a
// load error, never a silent skip.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder under a name. Duplicate names are an error.
func (r *Registry) Register(name string, b Builder) error {
	if name == "" {
		return fmt.Errorf("check name is required")
	}
	if b == nil {
		return fmt.Errorf("check %q: builder is required", name)
	}
	if _, dup := r.builders[name]; dup {
		return fmt.Errorf("check %q already registered", name)
	}
	r.builders[name] = b
	return nil
}

// MustRegister is Register that panics; for building the default set.
func (r *Registry) MustRegister(name string, b Builder) {
	if err := r.Register(name, b); err != nil {
		panic(err)
	}
}

// Lookup returns the builder registered under name.
func (r *Registry) Lookup(name string) (Builder, bool) {
	b, ok := r.builders[name]
	return b, ok
}

// Names returns the registered check names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
