package harness

import (
	"sort"

	"github.com/roach88/swatch/internal/document"
	"github.com/roach88/swatch/internal/style"
)

// Env is the shared context a fixture's setup produces and every
// subtest receives. It carries the styled document, the oracle under
// test, and a named slot map for style views captured by subtests.
// Later subtests read views stored by earlier ones, which is why
// declaration order is execution order.
//
// Context is passed explicitly; nothing here is looked up from global
// state.
type Env struct {
	// Doc is the loaded document the fixture runs against. Read-only
	// from the harness's perspective.
	Doc *document.Document

	// Oracle resolves style views for Doc's elements.
	Oracle style.Oracle

	views map[string]style.View
}

// NewEnv builds the shared context around a document and its oracle.
func NewEnv(doc *document.Document, oracle style.Oracle) *Env {
	return &Env{Doc: doc, Oracle: oracle, views: make(map[string]style.View)}
}

// StoreView captures a style view under a name for later subtests.
func (e *Env) StoreView(name string, v style.View) {
	e.views[name] = v
}

// View returns a previously captured view.
func (e *Env) View(name string) (style.View, bool) {
	v, ok := e.views[name]
	return v, ok
}

// ViewNames returns the captured view names in sorted order, for
// diagnostics when a lookup misses.
func (e *Env) ViewNames() []string {
	names := make([]string, 0, len(e.views))
	for name := range e.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
