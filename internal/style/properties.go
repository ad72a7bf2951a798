package style

import "sort"

// Property describes one entry in the property registry.
type Property struct {
	// Name is the canonical (lowercase) property name.
	Name string

	// Inherited marks properties whose computed value flows from the
	// parent when the property is not declared on the element.
	Inherited bool

	// Initial is the computed form of the property's initial value.
	Initial string
}

// registry is the closed set of properties the reference resolver
// computes. Values asked of a computed view outside this set resolve to
// the empty string, mirroring how a style declaration surface answers
// for unknown properties.
var registry = map[string]Property{
	"display":          {Name: "display", Initial: "inline"},
	"width":            {Name: "width", Initial: "auto"},
	"height":           {Name: "height", Initial: "auto"},
	"margin-top":       {Name: "margin-top", Initial: "0px"},
	"margin-right":     {Name: "margin-right", Initial: "0px"},
	"margin-bottom":    {Name: "margin-bottom", Initial: "0px"},
	"margin-left":      {Name: "margin-left", Initial: "0px"},
	"padding-top":      {Name: "padding-top", Initial: "0px"},
	"padding-right":    {Name: "padding-right", Initial: "0px"},
	"padding-bottom":   {Name: "padding-bottom", Initial: "0px"},
	"padding-left":     {Name: "padding-left", Initial: "0px"},
	"color":            {Name: "color", Inherited: true, Initial: "rgb(0, 0, 0)"},
	"background-color": {Name: "background-color", Initial: "rgba(0, 0, 0, 0)"},
	"font-size":        {Name: "font-size", Inherited: true, Initial: "16px"},
	"font-family":      {Name: "font-family", Inherited: true, Initial: "serif"},
	"text-align":       {Name: "text-align", Inherited: true, Initial: "start"},
	"visibility":       {Name: "visibility", Inherited: true, Initial: "visible"},
}

// Lookup returns the registry entry for a canonical property name.
func Lookup(name string) (Property, bool) {
	p, ok := registry[name]
	return p, ok
}

// KnownProperties returns the registry's property names in sorted order.
func KnownProperties() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
