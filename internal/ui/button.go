package ui

import "github.com/gdamore/tcell/v2"

// Button is a clickable one-row label. Position is assigned by LayoutRow.
type Button struct {
	ID      string
	Label   string
	Hotkey  rune
	Color   tcell.Color
	Enabled func() bool // nil means always enabled

	X, Y, W int
}

// Text returns what is drawn inside the button, e.g. " 1 Quick ".
func (b *Button) Text() string {
	if b.Hotkey == 0 {
		return " " + b.Label + " "
	}
	return " " + string(b.Hotkey) + " " + b.Label + " "
}

// Disabled reports whether the button currently refuses presses.
func (b *Button) Disabled() bool {
	return b.Enabled != nil && !b.Enabled()
}

// Contains returns true if the cell (x, y) is inside the button.
func (b *Button) Contains(x, y int) bool {
	return y == b.Y && x >= b.X && x < b.X+b.W
}

// LayoutRow places buttons left to right on row y, centered within width,
// separated by gap columns.
func LayoutRow(buttons []*Button, y, width, gap int) {
	total := 0
	for i, b := range buttons {
		b.W = TextWidth(b.Text())
		total += b.W
		if i > 0 {
			total += gap
		}
	}

	x := (width - total) / 2
	if x < 0 {
		x = 0
	}
	for _, b := range buttons {
		b.X = x
		b.Y = y
		x += b.W + gap
	}
}

// ButtonAt returns the first button containing (x, y), or nil.
func ButtonAt(buttons []*Button, x, y int) *Button {
	for _, b := range buttons {
		if b.Contains(x, y) {
			return b
		}
	}
	return nil
}

// ButtonForKey returns the first button with the given hotkey, or nil.
func ButtonForKey(buttons []*Button, key rune) *Button {
	for _, b := range buttons {
		if b.Hotkey != 0 && b.Hotkey == key {
			return b
		}
	}
	return nil
}
