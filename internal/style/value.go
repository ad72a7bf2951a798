package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// defaultFontPx is the computed font-size assumed above the root.
const defaultFontPx = 16

// namedColors maps the color keywords the fixtures use to their
// canonical serialization.
var namedColors = map[string]string{
	"black":       "rgb(0, 0, 0)",
	"white":       "rgb(255, 255, 255)",
	"red":         "rgb(255, 0, 0)",
	"green":       "rgb(0, 128, 0)",
	"blue":        "rgb(0, 0, 255)",
	"yellow":      "rgb(255, 255, 0)",
	"gray":        "rgb(128, 128, 128)",
	"orange":      "rgb(255, 165, 0)",
	"transparent": "rgba(0, 0, 0, 0)",
}

var quantityPattern = regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?)([a-z%]*)$`)

// parseQuantity splits a numeric value into magnitude and unit.
func parseQuantity(v string) (float64, string, bool) {
	m := quantityPattern.FindStringSubmatch(v)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return n, m[2], true
}

// formatPx serializes a pixel magnitude without trailing zeros.
func formatPx(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64) + "px"
}

// pxValue parses a computed "<n>px" value.
func pxValue(v string) (float64, bool) {
	n, unit, ok := parseQuantity(strings.ToLower(strings.TrimSpace(v)))
	if !ok || unit != "px" {
		return 0, false
	}
	return n, true
}

func isColorProperty(prop string) bool {
	return prop == "color" || strings.HasSuffix(prop, "-color")
}

// normalizeColor canonicalizes color values to rgb()/rgba() form.
// Unrecognized values pass through unchanged.
func normalizeColor(v string) string {
	lower := strings.ToLower(v)
	if named, ok := namedColors[lower]; ok {
		return named
	}
	if hex, ok := strings.CutPrefix(lower, "#"); ok {
		if rgb, ok := hexToRGB(hex); ok {
			return rgb
		}
	}
	return v
}

func hexToRGB(hex string) (string, bool) {
	var digits string
	switch len(hex) {
	case 3:
		var b strings.Builder
		for _, c := range hex {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		digits = b.String()
	case 6:
		digits = hex
	default:
		return "", false
	}
	var r, g, b int64
	var err error
	if r, err = strconv.ParseInt(digits[0:2], 16, 32); err != nil {
		return "", false
	}
	if g, err = strconv.ParseInt(digits[2:4], 16, 32); err != nil {
		return "", false
	}
	if b, err = strconv.ParseInt(digits[4:6], 16, 32); err != nil {
		return "", false
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b), true
}

// normalizeValue maps a specified value to its computed form.
// parentFontPx resolves font-relative units for font-size itself;
// ownFontPx resolves them for every other property.
func normalizeValue(prop, value string, parentFontPx, ownFontPx float64) string {
	v := strings.TrimSpace(value)
	if isColorProperty(prop) {
		return normalizeColor(v)
	}

	n, unit, ok := parseQuantity(strings.ToLower(v))
	if !ok {
		return v
	}
	if prop == "font-size" {
		switch unit {
		case "px":
			return formatPx(n)
		case "em":
			return formatPx(n * parentFontPx)
		case "%":
			return formatPx(n / 100 * parentFontPx)
		}
		return v
	}
	switch unit {
	case "px":
		return formatPx(n)
	case "em":
		return formatPx(n * ownFontPx)
	}
	// Percentages and other units stay as specified; resolving them to
	// used values would require layout.
	return v
}
