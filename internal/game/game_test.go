package game

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/samdwyer/duel/internal/combat"
	"github.com/samdwyer/duel/internal/config"
	"github.com/samdwyer/duel/internal/dice"
	"github.com/samdwyer/duel/internal/ui"
)

func newTestGame(t *testing.T, mode string) (*Game, *observer.ObservedLogs) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(ui.MinWidth, ui.MinHeight)

	cfg := config.Default()
	cfg.Game.Mode = mode
	cfg.Game.Seed = 42

	core, logs := observer.New(zap.DebugLevel)
	g, err := New(screen, Options{
		Config: cfg,
		Dice:   dice.NewRoller(dice.NewSeededSource(42), nil),
		Logger: zap.New(core),
	})
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g, logs
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func clickAt(g *Game, x, y int) {
	ctx := context.Background()
	g.handleEvent(ctx, tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	g.handleEvent(ctx, tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func clickButton(g *Game, id string) {
	for _, b := range g.buttons {
		if b.ID == id {
			clickAt(g, b.X+b.W/2, b.Y)
			return
		}
	}
	panic("no button " + id)
}

func finishedMatch(g *Game) *combat.Match {
	state := combat.State{
		Fighters:  [2]combat.Combatant{{Health: 35}, {Health: -4}},
		Turn:      combat.SideOne,
		Phase:     combat.PhaseFinished,
		Winner:    combat.SideOne,
		Actions:   9,
		MaxHealth: g.match.Rules().MaxHealth,
		Log:       []string{"Player 1 wins!"},
	}
	return combat.RestoreMatch(g.match.Rules(), dice.NewRoller(dice.NewSeededSource(1), nil), state)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"versus", ModeVersus, false},
		{"", ModeVersus, false},
		{"BOT", ModeBot, false},
		{" bot ", ModeBot, false},
		{"coop", ModeVersus, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "ParseMode(%q)", tt.input)
			continue
		}
		require.NoError(t, err, "ParseMode(%q)", tt.input)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, "bot", ModeBot.String())
	assert.Equal(t, "unknown", Mode(9).String())
}

func TestNewRejectsUnknownMode(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	require.NoError(t, err)
	defer screen.Close()

	cfg := config.Default()
	cfg.Game.Mode = "coop"
	_, err = New(screen, Options{Config: cfg})
	assert.Error(t, err)
}

func TestNewBuildsButtons(t *testing.T) {
	g, _ := newTestGame(t, config.ModeVersus)

	require.Len(t, g.buttons, 6)
	ids := []string{"quick", "normal", "heavy", "defend", "heal", "special"}
	for i, b := range g.buttons {
		assert.Equal(t, ids[i], b.ID)
		assert.Equal(t, rune('1'+i), b.Hotkey)
		assert.Equal(t, ui.ButtonRow, b.Y)
		if i > 0 {
			prev := g.buttons[i-1]
			assert.Greater(t, b.X, prev.X+prev.W-1, "buttons overlap")
		}
	}
	last := g.buttons[len(g.buttons)-1]
	assert.LessOrEqual(t, last.X+last.W, ui.MinWidth)

	assert.Equal(t, combat.AttackCommand(combat.KindHeavy), g.commands["heavy"])
	assert.Equal(t, combat.Command{Action: combat.ActionSpecial}, g.commands["special"])
	assert.Nil(t, g.bot)
}

func TestClickAttackButton(t *testing.T) {
	g, logs := newTestGame(t, config.ModeVersus)

	clickButton(g, "quick")

	assert.Equal(t, combat.SideTwo, g.match.Turn())
	assert.Equal(t, 1, g.match.ActionCount())
	assert.Less(t, g.match.Health(combat.SideTwo), 100)
	require.Len(t, g.match.Log(), 1)
	assert.Contains(t, g.match.Log()[0], "Player 1")
	assert.Equal(t, 3, g.effects.Len(), "popup, shake and glow")
	assert.Equal(t, 1, logs.FilterMessage("action").Len())
}

func TestMouseHoldDoesNotRepeat(t *testing.T) {
	g, _ := newTestGame(t, config.ModeVersus)
	ctx := context.Background()

	b := g.buttons[0]
	press := tcell.NewEventMouse(b.X, b.Y, tcell.Button1, tcell.ModNone)
	g.handleEvent(ctx, press)
	g.handleEvent(ctx, press)
	assert.Equal(t, 1, g.match.ActionCount())

	g.handleEvent(ctx, tcell.NewEventMouse(b.X, b.Y, tcell.ButtonNone, tcell.ModNone))
	g.handleEvent(ctx, press)
	assert.Equal(t, 2, g.match.ActionCount())
}

func TestClickOutsideButtons(t *testing.T) {
	g, _ := newTestGame(t, config.ModeVersus)
	clickAt(g, 0, 0)
	clickAt(g, 0, ui.ButtonRow)
	assert.Equal(t, 0, g.match.ActionCount())
}

func TestHotkeyDefend(t *testing.T) {
	g, _ := newTestGame(t, config.ModeVersus)

	g.handleEvent(context.Background(), key('4'))

	assert.True(t, g.match.Fighter(combat.SideOne).Defending)
	assert.Equal(t, combat.SideTwo, g.match.Turn())
	assert.Equal(t, []string{"Player 1 is defending."}, g.match.Log())
}

func TestDisabledHealIsGated(t *testing.T) {
	g, logs := newTestGame(t, config.ModeVersus)

	heal := ui.ButtonForKey(g.buttons, '5')
	require.NotNil(t, heal)
	assert.True(t, heal.Disabled(), "heal is disabled at full health")

	g.handleEvent(context.Background(), key('5'))

	assert.Equal(t, 0, g.match.ActionCount())
	assert.Equal(t, combat.SideOne, g.match.Turn())
	assert.Empty(t, g.match.Log())
	assert.Equal(t, "Player 1 is already at full HP.", g.status)
	assert.Equal(t, 0, logs.FilterMessage("action").Len())
}

func TestStatusClearsAfterAcceptedAction(t *testing.T) {
	g, _ := newTestGame(t, config.ModeVersus)
	ctx := context.Background()

	g.handleEvent(ctx, key('5'))
	require.NotEmpty(t, g.status)
	g.handleEvent(ctx, key('1'))
	assert.Empty(t, g.status)
}

func TestSpecialOncePerSide(t *testing.T) {
	g, _ := newTestGame(t, config.ModeVersus)
	ctx := context.Background()

	g.handleEvent(ctx, key('6')) // side one special
	g.handleEvent(ctx, key('4')) // side two defends
	require.Equal(t, combat.SideOne, g.match.Turn())

	special := ui.ButtonForKey(g.buttons, '6')
	assert.True(t, special.Disabled())
	g.handleEvent(ctx, key('6'))
	assert.Equal(t, 2, g.match.ActionCount())
	assert.Equal(t, "Player 1 already used special.", g.status)
}

func TestBotRespondsAfterDelay(t *testing.T) {
	g, logs := newTestGame(t, config.ModeBot)
	ctx := context.Background()
	require.NotNil(t, g.bot)

	delay := config.Default().Game.BotDelayFrames()
	require.Greater(t, delay, 0)

	g.handleEvent(ctx, key('4'))
	require.True(t, g.botPending)
	require.Equal(t, combat.SideTwo, g.match.Turn())

	for i := 0; i < delay-1; i++ {
		g.handleEvent(ctx, tcell.NewEventInterrupt(nil))
	}
	assert.Equal(t, combat.SideTwo, g.match.Turn(), "bot waits for its delay")
	assert.Equal(t, 1, g.match.ActionCount())

	g.handleEvent(ctx, tcell.NewEventInterrupt(nil))
	assert.Equal(t, combat.SideOne, g.match.Turn())
	assert.Equal(t, 2, g.match.ActionCount())
	assert.False(t, g.botPending)
	assert.Contains(t, g.match.Log(), "Player 1 defended! Damage halved.")
	assert.Equal(t, 1, logs.FilterMessage("bot decided").Len())
}

func TestHumanInputIgnoredOnBotTurn(t *testing.T) {
	g, _ := newTestGame(t, config.ModeBot)
	ctx := context.Background()

	g.handleEvent(ctx, key('1'))
	g.handleEvent(ctx, key('1'))
	clickButton(g, "heavy")

	assert.Equal(t, 1, g.match.ActionCount())
	assert.Equal(t, "Player 2 (Bot) is thinking...", g.status)
	for _, b := range g.buttons {
		assert.True(t, b.Disabled(), "%s should be disabled on the bot's turn", b.ID)
	}
}

func TestVersusPlaysToCompletion(t *testing.T) {
	g, logs := newTestGame(t, config.ModeVersus)
	ctx := context.Background()

	for i := 0; i < 100 && !g.match.Finished(); i++ {
		g.handleEvent(ctx, key('3'))
	}
	require.True(t, g.match.Finished())

	winner, ok := g.match.Winner()
	require.True(t, ok)
	log := g.match.Log()
	assert.Equal(t, winner.String()+" wins!", log[len(log)-1])
	assert.Equal(t, 1, logs.FilterMessage("match finished").Len())

	actions := g.match.ActionCount()
	g.handleEvent(ctx, key('1'))
	clickButton(g, "quick")
	assert.Equal(t, actions, g.match.ActionCount(), "no actions after the match ends")
}

func TestRestart(t *testing.T) {
	tests := []struct {
		name    string
		restart func(g *Game)
	}{
		{"key", func(g *Game) { g.handleEvent(context.Background(), key('r')) }},
		{"click", func(g *Game) { clickAt(g, g.restart.X, g.restart.Y) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, logs := newTestGame(t, config.ModeBot)
			g.match = finishedMatch(g)
			g.effects.AddShake(combat.SideTwo)
			g.status = "old"
			g.botPending = true
			oldID := g.match.ID()

			tt.restart(g)

			assert.False(t, g.match.Finished())
			assert.NotEqual(t, oldID, g.match.ID())
			assert.Equal(t, 100, g.match.Health(combat.SideOne))
			assert.Equal(t, 100, g.match.Health(combat.SideTwo))
			assert.Equal(t, combat.SideOne, g.match.Turn())
			assert.Empty(t, g.match.Log())
			assert.Equal(t, 0, g.effects.Len())
			assert.Empty(t, g.status)
			assert.False(t, g.botPending)
			assert.Equal(t, 1, logs.FilterMessage("match restarted").Len())
		})
	}
}

func TestRestartKeyIgnoredMidMatch(t *testing.T) {
	g, _ := newTestGame(t, config.ModeVersus)
	ctx := context.Background()

	g.handleEvent(ctx, key('1'))
	id := g.match.ID()
	g.handleEvent(ctx, key('r'))
	assert.Equal(t, id, g.match.ID())
	assert.Equal(t, 1, g.match.ActionCount())
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
	}{
		{"q", key('q')},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
		{"quit signal", tcell.NewEventInterrupt(quitSignal{})},
		{"screen closed", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, config.ModeVersus)
			g.handleEvent(context.Background(), tt.ev)
			assert.False(t, g.running)
		})
	}
}

func TestFrameAdvancesEffects(t *testing.T) {
	g, _ := newTestGame(t, config.ModeVersus)
	ctx := context.Background()

	g.handleEvent(ctx, key('1'))
	require.Equal(t, 3, g.effects.Len())

	for i := 0; i < ui.PopupFrames; i++ {
		g.handleEvent(ctx, tcell.NewEventInterrupt(nil))
	}
	assert.Equal(t, ui.PopupFrames, g.tick)
	assert.Equal(t, 0, g.effects.Len())
}

func TestResizeRelaysButtons(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(ui.MinWidth, ui.MinHeight)

	g, err := New(screen, Options{Config: config.Default()})
	require.NoError(t, err)
	defer g.Close()
	before := g.buttons[0].X

	sim.SetSize(ui.MinWidth+40, ui.MinHeight+6)
	g.handleEvent(context.Background(), tcell.NewEventResize(ui.MinWidth+40, ui.MinHeight+6))

	assert.Equal(t, before+20, g.buttons[0].X)
	assert.Equal(t, ui.ButtonRow, g.buttons[0].Y)
}

func TestRenderShowsTurn(t *testing.T) {
	g, _ := newTestGame(t, config.ModeBot)
	ctx := context.Background()

	g.render()
	assert.Contains(t, g.screen.RowText(1), "Player 1's Turn")

	g.handleEvent(ctx, key('4'))
	assert.Contains(t, g.screen.RowText(1), "Player 2 (Bot) is thinking...")
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	g, logs := newTestGame(t, config.ModeVersus)
	g.frame = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 1, logs.FilterMessage("match started").Len())
}
