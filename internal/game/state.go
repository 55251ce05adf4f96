// Package game runs the duel: the frame loop, pointer and key input, and the bot.
package game

import (
	"fmt"
	"strings"

	"github.com/samdwyer/duel/internal/config"
)

// Mode selects who plays side two.
type Mode int

const (
	// ModeVersus - two humans share the mouse
	ModeVersus Mode = iota
	// ModeBot - side two is played by the bot
	ModeBot
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeVersus:
		return config.ModeVersus
	case ModeBot:
		return config.ModeBot
	default:
		return "unknown"
	}
}

// ParseMode converts a configured mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case config.ModeVersus, "":
		return ModeVersus, nil
	case config.ModeBot:
		return ModeBot, nil
	default:
		return ModeVersus, fmt.Errorf("unknown game mode %q", s)
	}
}
