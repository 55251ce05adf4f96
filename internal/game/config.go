package game

import (
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/duel/internal/bot"
	"github.com/samdwyer/duel/internal/combat"
	"github.com/samdwyer/duel/internal/config"
)

// Dice is the randomness shared by the match and the bot.
// *dice.Roller satisfies it.
type Dice interface {
	combat.Dice
	bot.Dice
}

// Options holds game configuration and collaborators.
type Options struct {
	Config config.Config
	// Dice drives every roll. Nil means a roller seeded from Config.Game.Seed.
	Dice Dice
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Tracer defaults to a no-op tracer.
	Tracer trace.Tracer
}

func thresholds(c config.BotConfig) bot.Thresholds {
	return bot.Thresholds{
		FinishBelow:   c.FinishBelow,
		DefendBelow:   c.DefendBelow,
		HealBelow:     c.HealBelow,
		HealPercent:   c.HealPercent,
		AttackPercent: c.AttackPercent,
	}
}
