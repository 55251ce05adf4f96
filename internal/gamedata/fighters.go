package gamedata

import "github.com/gdamore/tcell/v2"

// FighterDef describes how one side of the duel is presented.
type FighterDef struct {
	ID       string   `yaml:"id"`
	Side     int      `yaml:"side"`     // 1 or 2
	Name     string   `yaml:"name"`     // Display name (e.g., "Player 1")
	BotName  string   `yaml:"botName"`  // Display name when the side is played by the bot
	Color    string   `yaml:"color"`    // Hex color code for the label and portrait
	Portrait []string `yaml:"portrait"` // ASCII art, one entry per row
}

// DisplayName returns the label for the fighter, preferring BotName when bot is true.
func (f *FighterDef) DisplayName(bot bool) string {
	if bot && f.BotName != "" {
		return f.BotName
	}
	return f.Name
}

// TCellColor returns the fighter color as a tcell.Color.
func (f *FighterDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(f.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// FightersFile represents the structure of fighters.yaml.
type FightersFile struct {
	Fighters []FighterDef `yaml:"fighters"`
}

// LoadFighters loads fighter definitions from the embedded fighters.yaml file.
func LoadFighters() ([]FighterDef, error) {
	file, err := Load[FightersFile]("fighters.yaml")
	if err != nil {
		return nil, err
	}
	return file.Fighters, nil
}
