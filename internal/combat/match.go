package combat

import (
	"fmt"

	"github.com/google/uuid"
)

// Dice is the randomness a match needs. *dice.Roller satisfies it.
type Dice interface {
	// Between returns a uniform integer in the inclusive range [min, max].
	Between(label string, min, max int) int
	// Chance reports whether a percent-in-100 trial succeeds.
	Chance(label string, percent int) bool
}

// Phase represents whether the match is still being played.
type Phase int

const (
	// PhaseInProgress - fighters are taking turns
	PhaseInProgress Phase = iota
	// PhaseFinished - one fighter has dropped to zero health
	PhaseFinished
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Match holds all state for one duel. It is mutated only through the action
// handlers and Reset, and is not safe for concurrent use.
type Match struct {
	id       uuid.UUID
	rules    Rules
	dice     Dice
	fighters [2]Combatant
	turn     Side
	log      []string
	phase    Phase
	winner   Side
	actions  int
}

// NewMatch creates a match at its starting state.
func NewMatch(rules Rules, dice Dice) *Match {
	m := &Match{rules: rules, dice: dice}
	m.Reset()
	return m
}

// Reset reinitializes the match to its creation defaults under a new ID.
func (m *Match) Reset() {
	m.id = uuid.New()
	for i := range m.fighters {
		m.fighters[i] = Combatant{Health: m.rules.MaxHealth}
	}
	m.turn = SideOne
	m.log = nil
	m.phase = PhaseInProgress
	m.winner = NoSide
	m.actions = 0
}

// ID returns the identifier of the current match.
func (m *Match) ID() uuid.UUID { return m.id }

// Rules returns the rules the match is played under.
func (m *Match) Rules() Rules { return m.rules }

// Turn returns the side whose turn it is.
func (m *Match) Turn() Side { return m.turn }

// Phase returns the current phase.
func (m *Match) Phase() Phase { return m.phase }

// Finished reports whether a winner has been decided.
func (m *Match) Finished() bool { return m.phase == PhaseFinished }

// Winner returns the winning side once the match is finished.
func (m *Match) Winner() (Side, bool) {
	return m.winner, m.phase == PhaseFinished
}

// ActionCount returns the number of accepted actions this match.
func (m *Match) ActionCount() int { return m.actions }

// Fighter returns a copy of the combatant on the given side.
func (m *Match) Fighter(side Side) Combatant {
	return m.fighters[side.index()]
}

// Health returns the side's health clamped to [0, MaxHealth] for display.
func (m *Match) Health(side Side) int {
	return clamp(m.fighters[side.index()].Health, 0, m.rules.MaxHealth)
}

// Log returns a copy of the most recent log lines, oldest first.
func (m *Match) Log() []string {
	out := make([]string, len(m.log))
	copy(out, m.log)
	return out
}

// CanHeal reports whether the active side may heal.
func (m *Match) CanHeal() bool {
	return m.phase == PhaseInProgress && m.active().Health < m.rules.MaxHealth
}

// CanSpecial reports whether the active side may use its special.
func (m *Match) CanSpecial() bool {
	return m.phase == PhaseInProgress && !m.active().SpecialUsed
}

// Allowed reports whether cmd would be accepted right now.
func (m *Match) Allowed(cmd Command) bool {
	switch cmd.Action {
	case ActionHeal:
		return m.CanHeal()
	case ActionSpecial:
		return m.CanSpecial()
	default:
		return m.phase == PhaseInProgress
	}
}

// Apply dispatches cmd to the matching action handler.
func (m *Match) Apply(cmd Command) Outcome {
	switch cmd.Action {
	case ActionDefend:
		return m.Defend()
	case ActionHeal:
		return m.Heal()
	case ActionSpecial:
		return m.Special()
	default:
		return m.Attack(cmd.Kind)
	}
}

// Attack hits the other side with a basic attack of the given kind.
// Unknown kinds are treated as normal.
func (m *Match) Attack(kind AttackKind) Outcome {
	kind = ParseAttackKind(string(kind))
	out := m.begin(AttackCommand(kind), m.turn.Opponent())
	if m.phase == PhaseFinished {
		return m.reject(out, RejectFinished, "The match is over.")
	}

	r := m.rules.Attacks[kind]
	damage := m.dice.Between(string(kind)+" attack", r.Min, r.Max)
	out.Roll = damage
	if m.dice.Chance("critical", m.rules.CritPercent) {
		damage *= m.rules.CritMultiplier
		out.Critical = true
	}

	m.strike(&out, damage)

	crit := ""
	if out.Critical {
		crit = "CRIT "
	}
	out.Message = fmt.Sprintf("%s %sused %s attack for %d!", out.Actor, crit, kind, out.Damage)
	m.record(out.Message)
	m.complete(&out)
	return out
}

// Defend raises the active side's guard against the next hit.
func (m *Match) Defend() Outcome {
	out := m.begin(Command{Action: ActionDefend}, m.turn)
	if m.phase == PhaseFinished {
		return m.reject(out, RejectFinished, "The match is over.")
	}

	m.fighters[m.turn.index()].Defending = true
	out.Message = fmt.Sprintf("%s is defending.", out.Actor)
	m.record(out.Message)
	m.complete(&out)
	return out
}

// Heal restores health to the active side. Refused at full health.
func (m *Match) Heal() Outcome {
	out := m.begin(Command{Action: ActionHeal}, m.turn)
	if m.phase == PhaseFinished {
		return m.reject(out, RejectFinished, "The match is over.")
	}
	self := &m.fighters[m.turn.index()]
	if self.Health >= m.rules.MaxHealth {
		return m.reject(out, RejectFullHealth, fmt.Sprintf("%s is already at full HP.", out.Actor))
	}

	amount := m.dice.Between("heal", m.rules.Heal.Min, m.rules.Heal.Max)
	out.Roll = amount
	before := self.Health
	self.Health = clamp(self.Health+amount, self.Health, m.rules.MaxHealth)
	out.Healing = self.Health - before

	out.Message = fmt.Sprintf("%s healed for %d.", out.Actor, out.Healing)
	m.record(out.Message)
	m.complete(&out)
	return out
}

// Special fires the active side's once-per-match strike. It never crits.
func (m *Match) Special() Outcome {
	out := m.begin(Command{Action: ActionSpecial}, m.turn.Opponent())
	if m.phase == PhaseFinished {
		return m.reject(out, RejectFinished, "The match is over.")
	}
	self := &m.fighters[m.turn.index()]
	if self.SpecialUsed {
		return m.reject(out, RejectSpecialUsed, fmt.Sprintf("%s already used special.", out.Actor))
	}

	damage := m.dice.Between("special", m.rules.Special.Min, m.rules.Special.Max)
	out.Roll = damage
	self.SpecialUsed = true
	m.strike(&out, damage)

	out.Message = fmt.Sprintf("%s used SPECIAL for %d!", out.Actor, out.Damage)
	m.record(out.Message)
	m.complete(&out)
	return out
}

func (m *Match) active() Combatant {
	return m.fighters[m.turn.index()]
}

func (m *Match) begin(cmd Command, target Side) Outcome {
	return Outcome{Command: cmd, Actor: m.turn, Target: target}
}

func (m *Match) reject(out Outcome, reason RejectReason, msg string) Outcome {
	out.Target = NoSide
	out.Reason = reason
	out.Message = msg
	return out
}

// strike applies damage to out.Target, consuming a defend stance.
func (m *Match) strike(out *Outcome, damage int) {
	target := &m.fighters[out.Target.index()]
	if target.Defending {
		damage /= 2
		target.Defending = false
		out.Blocked = true
		m.record(fmt.Sprintf("%s defended! Damage halved.", out.Target))
	}
	target.Health -= damage
	out.Damage = damage
}

// complete marks out accepted, then either ends the match or passes the turn.
func (m *Match) complete(out *Outcome) {
	out.Accepted = true
	m.actions++

	opponent := m.turn.Opponent()
	if !m.fighters[opponent.index()].IsAlive() {
		m.phase = PhaseFinished
		m.winner = m.turn
		out.Finished = true
		m.record(fmt.Sprintf("%s wins!", m.turn))
		return
	}
	m.turn = opponent
}

func (m *Match) record(line string) {
	m.log = append(m.log, line)
	if over := len(m.log) - m.rules.LogSize; over > 0 {
		m.log = append([]string(nil), m.log[over:]...)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
