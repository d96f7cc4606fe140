package config

import (
	"fmt"
	"image/color"
)

// ParseColor parses "RRGGBB" or "RRGGBBAA" hex colors.
func ParseColor(s string) (color.NRGBA, error) {
	var r, g, b uint8
	a := uint8(255)

	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected RRGGBB or RRGGBBAA", s)
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
