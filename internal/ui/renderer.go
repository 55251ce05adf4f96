package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/duel/internal/combat"
	"github.com/samdwyer/duel/internal/gamedata"
)

// Minimum terminal size the layout fits in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// Screen rows used by the layout.
const (
	titleRow    = 0
	turnRow     = 1
	labelRow    = 3
	barRow      = 4
	portraitTop = 6
	stanceRow   = 14
	logTop      = 15
	ButtonRow   = 22
	statusRow   = 23

	barWidth = 24
)

var (
	healthLow  = colorful.Color{R: 0.86, G: 0.16, B: 0.16}
	healthMid  = colorful.Color{R: 1.0, G: 0.65, B: 0.0}
	healthHigh = colorful.Color{R: 0.2, G: 0.86, B: 0.2}

	logNew = colorful.Color{R: 1, G: 1, B: 1}
	logOld = colorful.Color{R: 0.35, G: 0.35, B: 0.35}

	gold = tcell.NewRGBColor(255, 215, 0)

	placeholderPortrait = []string{
		"▒▒▒▒▒▒▒▒▒▒",
		"▒▒▒▒▒▒▒▒▒▒",
		"▒▒▒  ?  ▒▒",
		"▒▒▒▒▒▒▒▒▒▒",
		"▒▒▒▒▒▒▒▒▒▒",
		"▒▒▒▒▒▒▒▒▒▒",
	}
)

// View is everything the renderer needs for one frame.
type View struct {
	Match    combat.State
	Fighters [2]*gamedata.FighterDef
	BotSide  combat.Side // NoSide when both sides are human
	Buttons  []*Button
	Restart  *Button
	Effects  *Effects
	Status   string
}

// Name returns the display name for side, marking the bot's side.
func (v View) Name(side combat.Side) string {
	f := v.fighter(side)
	if f == nil {
		return side.String()
	}
	return f.DisplayName(side == v.BotSide)
}

func (v View) fighter(side combat.Side) *gamedata.FighterDef {
	switch side {
	case combat.SideOne:
		return v.Fighters[0]
	case combat.SideTwo:
		return v.Fighters[1]
	default:
		return nil
	}
}

// Renderer handles drawing the duel to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one full frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w < MinWidth || h < MinHeight {
		msg := fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", MinWidth, MinHeight, w, h)
		r.screen.DrawText(0, 0, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		r.screen.Show()
		return
	}

	r.screen.DrawCentered(titleRow, "⚔  Turn-Based Battle  ⚔", tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	r.drawTurn(v)
	for _, side := range []combat.Side{combat.SideOne, combat.SideTwo} {
		r.drawFighter(v, side, w)
	}
	r.drawLog(v, w)

	if v.Match.Finished() {
		if v.Restart != nil {
			r.drawButton(v.Restart)
		}
	} else {
		for _, b := range v.Buttons {
			r.drawButton(b)
		}
	}

	r.drawPopups(v, w)
	r.drawStatus(v)
	r.screen.Show()
}

func (r *Renderer) drawTurn(v View) {
	style := tcell.StyleDefault.Foreground(gold).Bold(true)
	if v.Match.Finished() {
		r.screen.DrawCentered(turnRow, fmt.Sprintf("★ %s Wins! ★", v.Name(v.Match.Winner)), style)
		return
	}
	text := v.Name(v.Match.Turn) + "'s Turn"
	if v.Match.Turn == v.BotSide {
		text = v.Name(v.Match.Turn) + " is thinking..."
	}
	r.screen.DrawCentered(turnRow, text, style)
}

func (r *Renderer) drawFighter(v View, side combat.Side, width int) {
	x := Column(side, width)
	f := v.fighter(side)
	fighterStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	if f != nil {
		fighterStyle = fighterStyle.Foreground(f.TCellColor())
	}

	r.screen.DrawText(x, labelRow, v.Name(side), fighterStyle)
	r.drawHealthBar(x, barRow, v.Match.Health(side), v.Match.MaxHealth)

	portrait := placeholderPortrait
	if f != nil && len(f.Portrait) > 0 {
		portrait = f.Portrait
	}
	r.drawPortrait(v, side, portrait, x, fighterStyle)

	c := v.Match.Fighter(side)
	status := x
	if c.Defending {
		status += r.screen.DrawText(status, stanceRow, "DEFENDING", tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)) + 2
	}
	if c.SpecialUsed {
		r.screen.DrawText(status, stanceRow, "SPECIAL USED", tcell.StyleDefault.Foreground(tcell.ColorPurple))
	}
}

// drawHealthBar draws "[#####     ] hp/max" with a color that fades from
// green to red as health drops.
func (r *Renderer) drawHealthBar(x, y, hp, max int) {
	frac := 0.0
	if max > 0 {
		frac = float64(hp) / float64(max)
	}
	filled := int(frac*barWidth + 0.5)
	fill := tcell.StyleDefault.Foreground(HealthColor(frac))
	empty := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	frame := tcell.StyleDefault.Foreground(tcell.ColorGray)

	r.screen.SetContent(x, y, '[', frame)
	for i := 0; i < barWidth; i++ {
		if i < filled {
			r.screen.SetContent(x+1+i, y, '█', fill)
		} else {
			r.screen.SetContent(x+1+i, y, '░', empty)
		}
	}
	r.screen.SetContent(x+1+barWidth, y, ']', frame)
	r.screen.DrawText(x+barWidth+3, y, fmt.Sprintf("%d/%d", hp, max), tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (r *Renderer) drawPortrait(v View, side combat.Side, portrait []string, x int, style tcell.Style) {
	inner := 0
	for _, line := range portrait {
		if w := TextWidth(line); w > inner {
			inner = w
		}
	}

	border := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	if v.Effects != nil {
		if color, ok := v.Effects.Glow(side); ok {
			border = tcell.StyleDefault.Foreground(color).Bold(true)
		}
	}
	r.drawBox(x, portraitTop, inner+2, len(portrait)+2, border)

	shake := 0
	if v.Effects != nil {
		shake = v.Effects.ShakeOffset(side)
	}
	for i, line := range portrait {
		r.screen.DrawText(x+1+shake, portraitTop+1+i, line, style.Bold(false))
	}
}

func (r *Renderer) drawLog(v View, width int) {
	box := tcell.StyleDefault.Foreground(tcell.ColorGray)
	lines := v.Match.Log
	r.drawBox(2, logTop, width-4, statusRow-logTop-1, box)
	r.screen.DrawText(4, logTop, " Battle Log ", box.Bold(true))

	for i, line := range lines {
		style := tcell.StyleDefault.Foreground(LogLineColor(i, len(lines)))
		r.screen.DrawText(4, logTop+1+i, line, style)
	}
}

func (r *Renderer) drawButton(b *Button) {
	style := tcell.StyleDefault.Background(b.Color).Foreground(tcell.ColorWhite).Bold(true)
	if b.Disabled() {
		style = tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorGray)
	}
	r.screen.DrawText(b.X, b.Y, b.Text(), style)
}

func (r *Renderer) drawPopups(v View, width int) {
	if v.Effects == nil {
		return
	}
	for _, p := range v.Effects.Popups() {
		row := portraitTop + 5 - p.Rise()
		x := Column(p.Side, width) + 4
		style := tcell.StyleDefault.Foreground(p.Color).Bold(p.Bold)
		r.screen.DrawText(x, row, p.Text, style)
	}
}

func (r *Renderer) drawStatus(v View) {
	text := v.Status
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	if text == "" {
		style = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		if v.Match.Finished() {
			text = "Click Restart or press r to play again. q quits."
		} else {
			text = "Click an action or press 1-6. q quits."
		}
	}
	r.screen.DrawText(2, statusRow, text, style)
}

func (r *Renderer) drawBox(x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1
	r.screen.SetContent(x, y, '┌', style)
	r.screen.SetContent(right, y, '┐', style)
	r.screen.SetContent(x, bottom, '└', style)
	r.screen.SetContent(right, bottom, '┘', style)
	for i := x + 1; i < right; i++ {
		r.screen.SetContent(i, y, '─', style)
		r.screen.SetContent(i, bottom, '─', style)
	}
	for j := y + 1; j < bottom; j++ {
		r.screen.SetContent(x, j, '│', style)
		r.screen.SetContent(right, j, '│', style)
	}
}

// Column returns the left edge of side's half of the screen.
func Column(side combat.Side, width int) int {
	if side == combat.SideTwo {
		return width/2 + 4
	}
	return 4
}

// HealthColor blends red through orange to green as frac goes from 0 to 1.
func HealthColor(frac float64) tcell.Color {
	switch {
	case frac <= 0:
		return gamedata.ToTCell(healthLow)
	case frac >= 1:
		return gamedata.ToTCell(healthHigh)
	case frac < 0.5:
		return gamedata.ToTCell(healthLow.BlendHcl(healthMid, frac*2))
	default:
		return gamedata.ToTCell(healthMid.BlendHcl(healthHigh, (frac-0.5)*2))
	}
}

// LogLineColor fades older lines toward gray. Line n-1 is the newest.
func LogLineColor(i, n int) tcell.Color {
	if n <= 1 {
		return gamedata.ToTCell(logNew)
	}
	return gamedata.ToTCell(logOld.BlendRgb(logNew, float64(i)/float64(n-1)))
}
