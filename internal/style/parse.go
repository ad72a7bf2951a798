package style

import (
	"fmt"
	"regexp"
	"strings"
)

// Declaration is one property/value pair from a declaration block.
// The property name is canonical (lowercase, trimmed); the value is
// trimmed but otherwise as written.
type Declaration struct {
	Property string
	Value    string
}

// validProperty matches CSS-style property names.
var validProperty = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ParseDeclarations parses declaration text of the form
// "width: 100px; color: red". Empty segments are skipped; a segment
// without a colon, or with an empty property or value, is an error.
func ParseDeclarations(text string) ([]Declaration, error) {
	var decls []Declaration
	for _, segment := range strings.Split(text, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		propPart, valuePart, found := strings.Cut(segment, ":")
		if !found {
			return nil, fmt.Errorf("declaration %q: missing ':'", segment)
		}
		prop := strings.ToLower(strings.TrimSpace(propPart))
		value := strings.TrimSpace(valuePart)
		if prop == "" {
			return nil, fmt.Errorf("declaration %q: empty property name", segment)
		}
		if !validProperty.MatchString(prop) {
			return nil, fmt.Errorf("declaration %q: invalid property name %q", segment, prop)
		}
		if value == "" {
			return nil, fmt.Errorf("declaration %q: empty value", segment)
		}
		decls = append(decls, Declaration{Property: prop, Value: value})
	}
	return decls, nil
}

// SerializeDeclarations renders declarations back to canonical block
// text: "width: 100px; color: red".
func SerializeDeclarations(decls []Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.Property+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}

// declarationValue returns the winning value for prop within one block.
// Later declarations win over earlier ones.
func declarationValue(decls []Declaration, prop string) (string, bool) {
	for i := len(decls) - 1; i >= 0; i-- {
		if decls[i].Property == prop {
			return decls[i].Value, true
		}
	}
	return "", false
}

// setDeclaration replaces the declaration for prop in place, or appends
// one. Replacement keeps the original position, matching how a style
// declaration surface updates an existing property.
func setDeclaration(decls []Declaration, prop, value string) []Declaration {
	for i := range decls {
		if decls[i].Property == prop {
			decls[i].Value = value
			return decls
		}
	}
	return append(decls, Declaration{Property: prop, Value: value})
}

// removeDeclaration drops every declaration for prop.
func removeDeclaration(decls []Declaration, prop string) []Declaration {
	kept := decls[:0]
	for _, d := range decls {
		if d.Property != prop {
			kept = append(kept, d)
		}
	}
	return kept
}
