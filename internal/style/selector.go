package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/swatch/internal/document"
)

// Selector is one parsed simple selector: an optional tag, an optional
// id, and zero or more classes, or the universal selector. Combinators
// are not supported.
type Selector struct {
	Universal bool
	Tag       string
	ID        string
	Classes   []string
}

// Specificity orders selectors for the cascade: ids, then classes,
// then types. Source order breaks ties.
type Specificity struct {
	IDs     int
	Classes int
	Types   int
}

// Compare returns -1, 0, or 1 as s sorts below, equal to, or above o.
func (s Specificity) Compare(o Specificity) int {
	if s.IDs != o.IDs {
		return compareInt(s.IDs, o.IDs)
	}
	if s.Classes != o.Classes {
		return compareInt(s.Classes, o.Classes)
	}
	return compareInt(s.Types, o.Types)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

var (
	validTagName   = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	validIdentName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
)

// ParseSelector parses a simple selector such as "div", "#content",
// ".box.primary", "div.box#main", or "*".
func ParseSelector(s string) (Selector, error) {
	src := strings.TrimSpace(s)
	if src == "" {
		return Selector{}, fmt.Errorf("empty selector")
	}
	if src == "*" {
		return Selector{Universal: true}, nil
	}
	if strings.ContainsAny(src, " \t>+~,") {
		return Selector{}, fmt.Errorf("selector %q: combinators and selector lists are not supported", src)
	}

	var sel Selector
	rest := src
	if rest[0] != '#' && rest[0] != '.' {
		tag, tail := splitSimpleToken(rest)
		if !validTagName.MatchString(tag) {
			return Selector{}, fmt.Errorf("selector %q: invalid tag name %q", src, tag)
		}
		sel.Tag = tag
		rest = tail
	}
	for rest != "" {
		marker := rest[0]
		name, tail := splitSimpleToken(rest[1:])
		if !validIdentName.MatchString(name) {
			return Selector{}, fmt.Errorf("selector %q: invalid identifier %q", src, name)
		}
		switch marker {
		case '#':
			if sel.ID != "" {
				return Selector{}, fmt.Errorf("selector %q: multiple id selectors", src)
			}
			sel.ID = name
		case '.':
			sel.Classes = append(sel.Classes, name)
		default:
			return Selector{}, fmt.Errorf("selector %q: unexpected character %q", src, string(marker))
		}
		rest = tail
	}
	return sel, nil
}

// splitSimpleToken cuts the leading run before the next '#' or '.'.
func splitSimpleToken(s string) (token, rest string) {
	if i := strings.IndexAny(s, "#."); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// Matches reports whether the selector selects the element.
func (s Selector) Matches(e *document.Element) bool {
	if s.Universal {
		return true
	}
	if s.Tag != "" && s.Tag != e.Tag {
		return false
	}
	if s.ID != "" && s.ID != e.ID {
		return false
	}
	if len(s.Classes) > 0 {
		have := make(map[string]bool)
		for _, c := range e.Classes() {
			have[c] = true
		}
		for _, want := range s.Classes {
			if !have[want] {
				return false
			}
		}
	}
	return true
}

// Specificity computes the selector's cascade weight.
func (s Selector) Specificity() Specificity {
	var sp Specificity
	if s.ID != "" {
		sp.IDs = 1
	}
	sp.Classes = len(s.Classes)
	if s.Tag != "" {
		sp.Types = 1
	}
	return sp
}

// String reserializes the selector for diagnostics.
func (s Selector) String() string {
	if s.Universal {
		return "*"
	}
	var b strings.Builder
	b.WriteString(s.Tag)
	if s.ID != "" {
		b.WriteByte('#')
		b.WriteString(s.ID)
	}
	for _, c := range s.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	return b.String()
}
