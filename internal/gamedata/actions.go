package gamedata

import "github.com/gdamore/tcell/v2"

// =============================================================================
// ACTION CATALOGUE
// =============================================================================
//
// Every button a fighter can press is an action defined in actions.yaml.
// The combat package turns the catalogue into its Rules; the ui package uses
// the same entries for button labels, colors and hotkeys.
//
// Effects:
// --------
//    - attack:  damage rolled in [min, max], may crit
//    - defend:  halves the next incoming hit
//    - heal:    restores [min, max] health, refused at full health
//    - special: damage rolled in [min, max], once per match, never crits
//
// YAML Schema:
// ------------
//   - id: heavy
//     name: Heavy
//     effect: attack
//     min: 15
//     max: 25
//     color: "#FFA500"
//     hotkey: "3"

// EffectType represents what an action does.
type EffectType string

const (
	EffectAttack  EffectType = "attack"
	EffectDefend  EffectType = "defend"
	EffectHeal    EffectType = "heal"
	EffectSpecial EffectType = "special"
)

// ActionDef defines an action loaded from YAML.
type ActionDef struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Effect EffectType `yaml:"effect"`
	Min    int        `yaml:"min"`
	Max    int        `yaml:"max"`
	Color  string     `yaml:"color"`
	Hotkey string     `yaml:"hotkey"`
}

// HotkeyRune returns the hotkey as a rune, or 0 when none is set.
func (a *ActionDef) HotkeyRune() rune {
	if len(a.Hotkey) == 0 {
		return 0
	}
	return rune(a.Hotkey[0])
}

// TCellColor returns the button color as a tcell.Color.
func (a *ActionDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(a.Color)
	if err != nil {
		return tcell.ColorDarkGray // fallback
	}
	return color
}

// RulesDef holds the match-wide numbers.
type RulesDef struct {
	MaxHealth      int `yaml:"maxHealth"`
	CritPercent    int `yaml:"critPercent"`
	CritMultiplier int `yaml:"critMultiplier"`
	LogSize        int `yaml:"logSize"`
}

// ActionsFile represents the structure of actions.yaml.
type ActionsFile struct {
	Rules   RulesDef    `yaml:"rules"`
	Actions []ActionDef `yaml:"actions"`
}

// LoadActions loads the action catalogue from the embedded actions.yaml file.
func LoadActions() (ActionsFile, error) {
	return Load[ActionsFile]("actions.yaml")
}
