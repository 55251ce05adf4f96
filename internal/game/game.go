package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/duel/internal/bot"
	"github.com/samdwyer/duel/internal/combat"
	"github.com/samdwyer/duel/internal/dice"
	"github.com/samdwyer/duel/internal/gamedata"
	"github.com/samdwyer/duel/internal/telemetry"
	"github.com/samdwyer/duel/internal/ui"
)

const buttonGap = 2

// quitSignal is posted as interrupt data once the run context is cancelled.
type quitSignal struct{}

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	logger   *zap.Logger
	tracer   trace.Tracer

	mode     Mode
	match    *combat.Match
	bot      *bot.Policy // nil in versus mode
	actions  *gamedata.ActionRegistry
	fighters [2]*gamedata.FighterDef

	buttons  []*ui.Button
	restart  *ui.Button
	commands map[string]combat.Command
	effects  *ui.Effects
	status   string

	frame      time.Duration
	tick       int
	botDelay   int
	botDue     int
	botPending bool
	mouseDown  bool
	running    bool
	closed     bool
}

// New creates a new game instance drawing to screen.
func New(screen *ui.Screen, opts Options) (*Game, error) {
	mode, err := ParseMode(opts.Config.Game.Mode)
	if err != nil {
		return nil, err
	}
	actions, err := gamedata.LoadActionRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading actions: %w", err)
	}
	fighters, err := gamedata.LoadFighterRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading fighters: %w", err)
	}
	rules, err := combat.RulesFromCatalog(actions)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}
	var roller Dice = opts.Dice
	if roller == nil {
		roller = dice.NewRoller(dice.NewSource(opts.Config.Game.Seed), logger)
	}

	g := &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		logger:   logger,
		tracer:   tracer,
		mode:     mode,
		match:    combat.NewMatch(rules, roller),
		actions:  actions,
		fighters: [2]*gamedata.FighterDef{fighters.BySide(1), fighters.BySide(2)},
		commands: make(map[string]combat.Command),
		effects:  ui.NewEffects(),
		frame:    opts.Config.Game.FrameInterval(),
		botDelay: opts.Config.Game.BotDelayFrames(),
		running:  true,
	}
	if mode == ModeBot {
		g.bot = bot.NewPolicy(combat.SideTwo, roller, thresholds(opts.Config.Bot))
	}
	if err := g.buildButtons(); err != nil {
		return nil, err
	}
	return g, nil
}

// buildButtons creates one button per catalog action, in catalog order.
func (g *Game) buildButtons() error {
	for _, def := range g.actions.All() {
		cmd, err := commandFor(def)
		if err != nil {
			return err
		}
		g.commands[def.ID] = cmd
		g.buttons = append(g.buttons, &ui.Button{
			ID:      def.ID,
			Label:   def.Name,
			Hotkey:  def.HotkeyRune(),
			Color:   def.TCellColor(),
			Enabled: func() bool { return g.humanTurn() && g.match.Allowed(cmd) },
		})
	}
	g.restart = &ui.Button{ID: "restart", Label: "Restart Game", Hotkey: 'r', Color: tcell.ColorDarkGreen}
	g.layout()
	return nil
}

func commandFor(def gamedata.ActionDef) (combat.Command, error) {
	switch def.Effect {
	case gamedata.EffectAttack:
		return combat.AttackCommand(combat.ParseAttackKind(def.ID)), nil
	case gamedata.EffectDefend:
		return combat.Command{Action: combat.ActionDefend}, nil
	case gamedata.EffectHeal:
		return combat.Command{Action: combat.ActionHeal}, nil
	case gamedata.EffectSpecial:
		return combat.Command{Action: combat.ActionSpecial}, nil
	default:
		return combat.Command{}, fmt.Errorf("action %q has unknown effect %q", def.ID, def.Effect)
	}
}

func (g *Game) layout() {
	w, _ := g.screen.Size()
	ui.LayoutRow(g.buttons, ui.ButtonRow, w, buttonGap)
	ui.LayoutRow([]*ui.Button{g.restart}, ui.ButtonRow, w, 0)
}

// Run executes the main game loop until the player quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	g.startMatch(ctx)
	stop := g.startTicker(ctx)
	defer stop()

	g.render()
	for g.running && ctx.Err() == nil {
		g.handleEvent(ctx, g.screen.PollEvent())
	}
	return nil
}

// startTicker posts one interrupt per frame. After ctx is cancelled every
// interrupt carries quitSignal so the blocked PollEvent wakes up.
func (g *Game) startTicker(ctx context.Context) (stop func()) {
	done := make(chan struct{})
	ticker := time.NewTicker(g.frame)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				var data any
				if ctx.Err() != nil {
					data = quitSignal{}
				}
				// A full queue just drops the frame.
				_ = g.screen.PostEvent(tcell.NewEventInterrupt(data))
			}
		}
	}()
	return func() { close(done) }
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case nil:
		g.running = false
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitSignal); ok {
			g.running = false
			return
		}
		g.onFrame(ctx)
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
		g.render()
	case *tcell.EventMouse:
		g.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
		g.layout()
		g.render()
	}
}

// onFrame advances animations and fires the bot once its delay has passed.
func (g *Game) onFrame(ctx context.Context) {
	g.tick++
	g.effects.Update()
	if g.botPending && g.tick >= g.botDue {
		g.botTurn(ctx)
	}
	g.render()
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			g.running = false
		case 'r', 'R':
			if g.match.Finished() {
				g.restartMatch(ctx)
			}
		default:
			if b := ui.ButtonForKey(g.buttons, r); b != nil {
				g.press(ctx, b)
			}
		}
	}
}

// handleMouseEvent turns a primary button press into a click. Holding or
// dragging does not repeat the click.
func (g *Game) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		g.mouseDown = false
		return
	}
	if g.mouseDown {
		return
	}
	g.mouseDown = true

	x, y := ev.Position()
	g.click(ctx, x, y)
	g.render()
}

func (g *Game) click(ctx context.Context, x, y int) {
	if g.match.Finished() {
		if g.restart.Contains(x, y) {
			g.restartMatch(ctx)
		}
		return
	}
	if b := ui.ButtonAt(g.buttons, x, y); b != nil {
		g.press(ctx, b)
	}
}

// press runs the button's command if the current player may use it.
func (g *Game) press(ctx context.Context, b *ui.Button) {
	if g.match.Finished() {
		return
	}
	if !g.humanTurn() {
		g.status = g.name(g.match.Turn()) + " is thinking..."
		return
	}
	cmd := g.commands[b.ID]
	if b.Disabled() {
		g.status = g.unavailable(cmd)
		return
	}
	g.perform(ctx, cmd)
}

func (g *Game) unavailable(cmd combat.Command) string {
	name := g.name(g.match.Turn())
	switch cmd.Action {
	case combat.ActionHeal:
		return name + " is already at full HP."
	case combat.ActionSpecial:
		return name + " already used special."
	default:
		return "That action is not available."
	}
}

// humanTurn reports whether the side to move is played from the keyboard and mouse.
func (g *Game) humanTurn() bool {
	return g.bot == nil || g.match.Turn() != g.bot.Side()
}

func (g *Game) botSide() combat.Side {
	if g.bot == nil {
		return combat.NoSide
	}
	return g.bot.Side()
}

func (g *Game) name(side combat.Side) string {
	return g.view().Name(side)
}

func (g *Game) view() ui.View {
	return ui.View{
		Match:    g.match.State(),
		Fighters: g.fighters,
		BotSide:  g.botSide(),
		Buttons:  g.buttons,
		Restart:  g.restart,
		Effects:  g.effects,
		Status:   g.status,
	}
}

func (g *Game) render() {
	g.renderer.Render(g.view())
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil && !g.closed {
		g.closed = true
		g.screen.Close()
	}
}
