package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/duel/internal/combat"
)

// Effect lifetimes in frames.
const (
	PopupFrames = 60
	ShakeFrames = 20
	GlowFrames  = 30

	// popupRiseEvery is how many frames a popup waits before climbing a row.
	popupRiseEvery = 12
)

// EffectKind identifies a presentation effect.
type EffectKind int

const (
	// EffectPopup - floating damage or heal number
	EffectPopup EffectKind = iota
	// EffectShake - portrait jitter on the side that was hit
	EffectShake
	// EffectGlow - colored portrait border on the side that acted
	EffectGlow
)

// String returns a human-readable effect name.
func (k EffectKind) String() string {
	switch k {
	case EffectPopup:
		return "popup"
	case EffectShake:
		return "shake"
	case EffectGlow:
		return "glow"
	default:
		return "unknown"
	}
}

// Effect is one short-lived animation tied to a side of the screen.
type Effect struct {
	Kind  EffectKind
	Side  combat.Side
	Text  string
	Color tcell.Color
	Bold  bool
	TTL   int // frames remaining
	Age   int // frames elapsed
}

// Rise returns how many rows a popup has floated up.
func (e Effect) Rise() int {
	return e.Age / popupRiseEvery
}

// Effects is the set of live animations. They are visual only and never
// feed back into the match.
type Effects struct {
	items []Effect
}

// NewEffects returns an empty effect set.
func NewEffects() *Effects {
	return &Effects{}
}

// AddDamagePopup floats "-N" over side. Critical hits are red and bold.
func (e *Effects) AddDamagePopup(side combat.Side, damage int, critical bool) {
	text := "-" + strconv.Itoa(damage)
	color := tcell.ColorWhite
	if critical {
		text += "!"
		color = tcell.ColorRed
	}
	e.add(Effect{Kind: EffectPopup, Side: side, Text: text, Color: color, Bold: critical, TTL: PopupFrames})
}

// AddHealPopup floats "+N" over side.
func (e *Effects) AddHealPopup(side combat.Side, amount int) {
	text := "+" + strconv.Itoa(amount)
	e.add(Effect{Kind: EffectPopup, Side: side, Text: text, Color: tcell.ColorGreen, TTL: PopupFrames})
}

// AddShake jitters side's portrait.
func (e *Effects) AddShake(side combat.Side) {
	e.add(Effect{Kind: EffectShake, Side: side, TTL: ShakeFrames})
}

// AddGlow outlines side's portrait in color.
func (e *Effects) AddGlow(side combat.Side, color tcell.Color) {
	e.add(Effect{Kind: EffectGlow, Side: side, Color: color, TTL: GlowFrames})
}

func (e *Effects) add(fx Effect) {
	e.items = append(e.items, fx)
}

// Update advances every effect by one frame and drops expired ones.
func (e *Effects) Update() {
	live := e.items[:0]
	for _, fx := range e.items {
		fx.TTL--
		fx.Age++
		if fx.TTL > 0 {
			live = append(live, fx)
		}
	}
	e.items = live
}

// Clear removes all effects.
func (e *Effects) Clear() {
	e.items = nil
}

// Len returns the number of live effects.
func (e *Effects) Len() int {
	return len(e.items)
}

// Popups returns the live popups, oldest first.
func (e *Effects) Popups() []Effect {
	var out []Effect
	for _, fx := range e.items {
		if fx.Kind == EffectPopup {
			out = append(out, fx)
		}
	}
	return out
}

// ShakeOffset returns the horizontal jitter for side's portrait this frame.
func (e *Effects) ShakeOffset(side combat.Side) int {
	for _, fx := range e.items {
		if fx.Kind != EffectShake || fx.Side != side {
			continue
		}
		if fx.Age%4 < 2 {
			return 1
		}
		return -1
	}
	return 0
}

// Glow returns the newest glow color for side, if any.
func (e *Effects) Glow(side combat.Side) (tcell.Color, bool) {
	for i := len(e.items) - 1; i >= 0; i-- {
		fx := e.items[i]
		if fx.Kind == EffectGlow && fx.Side == side {
			return fx.Color, true
		}
	}
	return tcell.ColorDefault, false
}
