package game

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/samdwyer/duel/internal/combat"
)

// perform applies cmd for the side to move and updates everything that
// reacts to it: effects, status line, bot schedule and match lifecycle.
func (g *Game) perform(ctx context.Context, cmd combat.Command) combat.Outcome {
	ctx, span := g.tracer.Start(ctx, "match.action")
	defer span.End()

	out := g.match.Apply(cmd)
	span.SetAttributes(
		attribute.String("match.id", g.match.ID().String()),
		attribute.String("action.actor", out.Actor.String()),
		attribute.String("action.command", out.Command.String()),
		attribute.Bool("action.accepted", out.Accepted),
	)

	if !out.Accepted {
		span.SetAttributes(attribute.String("action.reject_reason", out.Reason.String()))
		g.status = out.Message
		g.logger.Debug("action rejected",
			zap.String("match_id", g.match.ID().String()),
			zap.String("command", out.Command.String()),
			zap.Stringer("reason", out.Reason),
		)
		return out
	}

	span.SetAttributes(
		attribute.Int("action.roll", out.Roll),
		attribute.Int("action.damage", out.Damage),
		attribute.Int("action.healing", out.Healing),
		attribute.Bool("action.critical", out.Critical),
		attribute.Bool("action.blocked", out.Blocked),
	)
	g.logger.Info("action",
		zap.String("match_id", g.match.ID().String()),
		zap.Stringer("actor", out.Actor),
		zap.String("command", out.Command.String()),
		zap.Int("roll", out.Roll),
		zap.Int("damage", out.Damage),
		zap.Int("healing", out.Healing),
		zap.Bool("critical", out.Critical),
		zap.Bool("blocked", out.Blocked),
	)

	g.status = ""
	g.addEffects(out)

	if out.Finished {
		g.endMatch(ctx)
	} else {
		g.scheduleBot()
	}
	return out
}

func (g *Game) addEffects(out combat.Outcome) {
	color := g.actionColor(out.Command)
	switch out.Command.Action {
	case combat.ActionAttack, combat.ActionSpecial:
		big := out.Critical || out.Command.Action == combat.ActionSpecial
		g.effects.AddDamagePopup(out.Target, out.Damage, big)
		g.effects.AddShake(out.Target)
		g.effects.AddGlow(out.Actor, color)
	case combat.ActionHeal:
		g.effects.AddHealPopup(out.Actor, out.Healing)
		g.effects.AddGlow(out.Actor, color)
	case combat.ActionDefend:
		g.effects.AddGlow(out.Actor, color)
	}
}

func (g *Game) actionColor(cmd combat.Command) tcell.Color {
	id := cmd.Action.String()
	if cmd.Action == combat.ActionAttack {
		id = string(cmd.Kind)
	}
	if def := g.actions.GetByID(id); def != nil {
		return def.TCellColor()
	}
	return tcell.ColorWhite
}

// scheduleBot arms the bot if it is now the bot's turn.
func (g *Game) scheduleBot() {
	if g.bot == nil || g.match.Finished() || g.match.Turn() != g.bot.Side() {
		return
	}
	g.botPending = true
	g.botDue = g.tick + g.botDelay
}

func (g *Game) botTurn(ctx context.Context) {
	g.botPending = false
	if g.match.Finished() || g.match.Turn() != g.bot.Side() {
		return
	}

	ctx, span := g.tracer.Start(ctx, "bot.decide")
	defer span.End()

	d := g.bot.Choose(g.match)
	span.SetAttributes(
		attribute.String("match.id", g.match.ID().String()),
		attribute.String("bot.command", d.Command.String()),
		attribute.String("bot.reason", string(d.Reason)),
	)
	g.logger.Debug("bot decided",
		zap.String("match_id", g.match.ID().String()),
		zap.String("command", d.Command.String()),
		zap.String("reason", string(d.Reason)),
	)

	if out := g.perform(ctx, d.Command); !out.Accepted {
		// The policy only picks allowed commands.
		g.logger.Error("bot command rejected",
			zap.String("command", d.Command.String()),
			zap.Stringer("reason", out.Reason),
		)
		span.SetStatus(codes.Error, "bot command rejected")
	}
}

func (g *Game) startMatch(ctx context.Context) {
	_, span := g.tracer.Start(ctx, "match.start")
	defer span.End()
	span.SetAttributes(
		attribute.String("match.id", g.match.ID().String()),
		attribute.String("match.mode", g.mode.String()),
		attribute.Int("match.max_health", g.match.Rules().MaxHealth),
	)
	g.logger.Info("match started",
		zap.String("match_id", g.match.ID().String()),
		zap.Stringer("mode", g.mode),
	)
}

func (g *Game) endMatch(ctx context.Context) {
	winner, _ := g.match.Winner()
	_, span := g.tracer.Start(ctx, "match.end")
	defer span.End()
	span.SetAttributes(
		attribute.String("match.id", g.match.ID().String()),
		attribute.String("match.winner", winner.String()),
		attribute.Int("match.actions", g.match.ActionCount()),
		attribute.Int("match.winner_health", g.match.Health(winner)),
	)
	g.botPending = false
	g.logger.Info("match finished",
		zap.String("match_id", g.match.ID().String()),
		zap.Stringer("winner", winner),
		zap.Int("actions", g.match.ActionCount()),
	)
}

// restartMatch starts a fresh match and drops everything tied to the old one.
func (g *Game) restartMatch(ctx context.Context) {
	g.logger.Info("match restarted", zap.String("previous_match_id", g.match.ID().String()))
	g.match.Reset()
	g.effects.Clear()
	g.status = ""
	g.botPending = false
	g.startMatch(ctx)
}
