// Package ui provides terminal rendering and pointer input using tcell.
package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes an existing tcell screen, such as a
// simulation screen in tests.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// PostEvent queues an event for PollEvent. It is safe to call from other goroutines.
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.screen.PostEvent(ev)
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// DrawText draws text starting at x, one grapheme cluster per cell run, and
// returns the number of columns used.
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) int {
	col := x
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		runes := g.Runes()
		s.screen.SetContent(col, y, runes[0], runes[1:], style)
		col += w
	}
	return col - x
}

// DrawCentered draws text centered on the row and returns its starting column.
func (s *Screen) DrawCentered(y int, text string, style tcell.Style) int {
	w, _ := s.Size()
	x := (w - TextWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	s.DrawText(x, y, text, style)
	return x
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// TextWidth returns the number of terminal columns text occupies.
func TextWidth(text string) int {
	return uniseg.StringWidth(text)
}

// RowText returns the printable content of row y, for tests and debugging.
func (s *Screen) RowText(y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, comb, _, width := s.screen.GetContent(x, y)
		if width == 0 {
			continue
		}
		b.WriteRune(r)
		for _, c := range comb {
			b.WriteRune(c)
		}
	}
	return b.String()
}
