package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/swatch/internal/document"
	"github.com/roach88/swatch/internal/style"
)

// Fixture is one self-contained conformance test: an identifier, a
// one-time setup, and an ordered sequence of subtests.
//
// Immutable once loaded. Sessions copy the subtest slice before
// running, so a fixture can back any number of independent sessions.
type Fixture struct {
	// ID identifies the fixture in reports. Unique across one run.
	ID string

	// Description is the fixture's human-readable summary.
	Description string

	// DocumentPath is the styled document the default setup loads,
	// resolved relative to the manifest file.
	DocumentPath string

	// Timeout bounds each subtest's execution. Zero means the runner's
	// caller decides.
	Timeout time.Duration

	// Setup runs at most once per session and produces the shared Env.
	// A setup failure is a session-level error; no subtest runs.
	Setup SetupFunc

	// Subtests in declaration order. Order is significant: later
	// subtests may read views captured by earlier ones.
	Subtests []Subtest
}

// Subtest is one named, independently reported check within a fixture.
type Subtest struct {
	Name        string
	Description string
	Body        Body
}

// Body is the executable part of a subtest. It performs zero or more
// assertions through T against the shared Env.
type Body func(t *T, env *Env)

// SetupFunc produces the shared context for one session.
type SetupFunc func(ctx context.Context) (*Env, error)

// MalformedFixtureError reports structural defects in a fixture
// definition: unparseable YAML, missing or duplicate names, unknown
// checks, bad check parameters. Every problem found is listed, and a
// malformed fixture loads zero subtests.
type MalformedFixtureError struct {
	Path     string
	Problems []string
}

func (e *MalformedFixtureError) Error() string {
	return fmt.Sprintf("malformed fixture %s: %s", e.Path, strings.Join(e.Problems, "; "))
}

// manifest mirrors the YAML fixture source. Decoding is strict:
// unknown fields are a load error.
type manifest struct {
	Fixture     string         `yaml:"fixture"`
	Description string         `yaml:"description"`
	Document    string         `yaml:"document"`
	Timeout     string         `yaml:"timeout"`
	Subtests    []subtestEntry `yaml:"subtests"`
}

type subtestEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Check       string `yaml:"check"`
	With        Args   `yaml:"with"`
}

// LoadFixture parses a fixture manifest and binds each declared subtest
// to an executable body from the registry.
//
// Binding is a by-name lookup that fails loudly: a manifest entry that
// cannot be matched to a registered check, a duplicate subtest name, or
// a parameter the check rejects all produce a MalformedFixtureError.
func LoadFixture(path string, reg *Registry) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m manifest
	if err := dec.Decode(&m); err != nil {
		return nil, &MalformedFixtureError{
			Path:     path,
			Problems: []string{fmt.Sprintf("failed to parse YAML: %v", err)},
		}
	}

	var problems []string
	addProblem := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if m.Fixture == "" {
		addProblem("fixture id is required")
	}
	if m.Description == "" {
		addProblem("description is required")
	}
	if m.Document == "" {
		addProblem("document is required")
	}

	var timeout time.Duration
	if m.Timeout != "" {
		timeout, err = time.ParseDuration(m.Timeout)
		if err != nil {
			addProblem("invalid timeout %q: %v", m.Timeout, err)
		} else if timeout < 0 {
			addProblem("timeout must be non-negative, got %q", m.Timeout)
		}
	}

	if len(m.Subtests) == 0 {
		addProblem("subtests list is required")
	}

	seen := make(map[string]bool, len(m.Subtests))
	subtests := make([]Subtest, 0, len(m.Subtests))
	for i, entry := range m.Subtests {
		label := fmt.Sprintf("subtests[%d]", i)
		if entry.Name == "" {
			addProblem("%s: name is required", label)
		} else {
			label = fmt.Sprintf("subtests[%d] (%q)", i, entry.Name)
			if seen[entry.Name] {
				addProblem("%s: duplicate name", label)
			}
			seen[entry.Name] = true
		}
		if entry.Description == "" {
			addProblem("%s: description is required", label)
		}
		if entry.Check == "" {
			addProblem("%s: check is required", label)
			continue
		}

		builder, ok := reg.Lookup(entry.Check)
		if !ok {
			addProblem("%s: unknown check %q (valid: %s)", label, entry.Check, strings.Join(reg.Names(), ", "))
			continue
		}
		body, err := builder(entry.With)
		if err != nil {
			addProblem("%s: check %q: %v", label, entry.Check, err)
			continue
		}
		subtests = append(subtests, Subtest{
			Name:        entry.Name,
			Description: entry.Description,
			Body:        body,
		})
	}

	if len(problems) > 0 {
		return nil, &MalformedFixtureError{Path: path, Problems: problems}
	}

	docPath := m.Document
	if !filepath.IsAbs(docPath) {
		docPath = filepath.Join(filepath.Dir(path), docPath)
	}

	return &Fixture{
		ID:           m.Fixture,
		Description:  m.Description,
		DocumentPath: docPath,
		Timeout:      timeout,
		Setup:        documentSetup(docPath),
		Subtests:     subtests,
	}, nil
}

// documentSetup builds the default setup: load the styled document and
// stand up the reference oracle over it. Document defects surface here,
// at session time, as setup failures; manifest defects surface earlier,
// at load time.
func documentSetup(docPath string) SetupFunc {
	return func(ctx context.Context) (*Env, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := document.Load(docPath)
		if err != nil {
			return nil, fmt.Errorf("loading document: %w", err)
		}
		oracle, err := style.New(doc)
		if err != nil {
			return nil, fmt.Errorf("building style oracle: %w", err)
		}
		return NewEnv(doc, oracle), nil
	}
}
