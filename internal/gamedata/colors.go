package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	c, err := ParseColorful(hex)
	if err != nil {
		return tcell.ColorDefault, err
	}
	return ToTCell(c), nil
}

// ParseColorful parses a six digit hex color, with or without the leading #.
func ParseColorful(hex string) (colorful.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return colorful.Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return c, nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// ToTCell converts a colorful.Color to the nearest 24-bit tcell color.
func ToTCell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
