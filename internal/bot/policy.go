// Package bot chooses actions for the computer-controlled side.
package bot

import "github.com/samdwyer/duel/internal/combat"

// Dice is the randomness the policy needs. *dice.Roller satisfies it.
type Dice interface {
	Chance(label string, percent int) bool
	Pick(label string, n int) int
}

// Thresholds tune the policy. Health values are compared with display health.
type Thresholds struct {
	FinishBelow   int // opponent health under which the bot goes for the kill
	DefendBelow   int // own health under which the bot turtles
	HealBelow     int // own health under which the bot considers healing
	HealPercent   int // chance to heal once under HealBelow
	AttackPercent int // chance to attack rather than defend otherwise
}

// DefaultThresholds returns the standard bot tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FinishBelow:   30,
		DefendBelow:   20,
		HealBelow:     50,
		HealPercent:   30,
		AttackPercent: 70,
	}
}

// Reason names the rule that produced a decision, for logs and traces.
type Reason string

const (
	ReasonStance  Reason = "stance"
	ReasonFinish  Reason = "finish"
	ReasonLowHP   Reason = "low_health"
	ReasonHeal    Reason = "heal"
	ReasonAttack  Reason = "attack"
	ReasonDefault Reason = "default"
)

// Decision is the command chosen by the policy and why.
type Decision struct {
	Command combat.Command
	Reason  Reason
}

// Policy picks a command for the side it plays.
type Policy struct {
	side       combat.Side
	dice       Dice
	thresholds Thresholds
}

// NewPolicy creates a policy playing side with the given tuning.
func NewPolicy(side combat.Side, dice Dice, thresholds Thresholds) *Policy {
	return &Policy{side: side, dice: dice, thresholds: thresholds}
}

// Side returns the side the policy plays.
func (p *Policy) Side() combat.Side {
	return p.side
}

// Choose returns the bot's next command. The result is always accepted by
// the match when it is the bot's turn.
//
// Rules, first match wins:
//  1. either side defending: normal attack
//  2. opponent below FinishBelow: special if unused, else heavy attack
//  3. own health below DefendBelow: defend
//  4. own health below HealBelow and the heal roll succeeds: heal
//  5. attack roll succeeds: attack of a random kind
//  6. defend
func (p *Policy) Choose(m *combat.Match) Decision {
	self := m.Fighter(p.side)
	opp := m.Fighter(p.side.Opponent())
	selfHP := m.Health(p.side)
	oppHP := m.Health(p.side.Opponent())
	t := p.thresholds

	switch {
	case opp.Defending || self.Defending:
		return Decision{Command: combat.AttackCommand(combat.KindNormal), Reason: ReasonStance}
	case oppHP < t.FinishBelow:
		if m.CanSpecial() {
			return Decision{Command: combat.Command{Action: combat.ActionSpecial}, Reason: ReasonFinish}
		}
		return Decision{Command: combat.AttackCommand(combat.KindHeavy), Reason: ReasonFinish}
	case selfHP < t.DefendBelow:
		return Decision{Command: combat.Command{Action: combat.ActionDefend}, Reason: ReasonLowHP}
	case selfHP < t.HealBelow && m.CanHeal() && p.dice.Chance("bot heal", t.HealPercent):
		return Decision{Command: combat.Command{Action: combat.ActionHeal}, Reason: ReasonHeal}
	case p.dice.Chance("bot attack", t.AttackPercent):
		kind := combat.AttackKinds[p.dice.Pick("bot attack kind", len(combat.AttackKinds))]
		return Decision{Command: combat.AttackCommand(kind), Reason: ReasonAttack}
	default:
		return Decision{Command: combat.Command{Action: combat.ActionDefend}, Reason: ReasonDefault}
	}
}
