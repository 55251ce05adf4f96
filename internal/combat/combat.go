// Package combat provides the turn-based duel state machine.
package combat

import "fmt"

// Side identifies one of the two combatants.
type Side int

const (
	// NoSide is the zero value, used for "no winner yet".
	NoSide  Side = 0
	SideOne Side = 1
	SideTwo Side = 2
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideOne {
		return SideTwo
	}
	return SideOne
}

// String returns the log name of the side ("Player 1").
func (s Side) String() string {
	switch s {
	case SideOne, SideTwo:
		return fmt.Sprintf("Player %d", int(s))
	default:
		return "nobody"
	}
}

func (s Side) index() int {
	return int(s) - 1
}

// AttackKind selects the damage range of a basic attack.
type AttackKind string

const (
	KindQuick  AttackKind = "quick"
	KindNormal AttackKind = "normal"
	KindHeavy  AttackKind = "heavy"
)

// AttackKinds lists the kinds in button order.
var AttackKinds = []AttackKind{KindQuick, KindNormal, KindHeavy}

// ParseAttackKind maps input to an AttackKind. Unknown input falls back to normal.
func ParseAttackKind(s string) AttackKind {
	switch k := AttackKind(s); k {
	case KindQuick, KindNormal, KindHeavy:
		return k
	default:
		return KindNormal
	}
}

// Combatant is one side of the match.
type Combatant struct {
	Health      int // may drop below zero on the killing blow
	Defending   bool
	SpecialUsed bool
}

// IsAlive returns true if the combatant has health remaining.
func (c Combatant) IsAlive() bool { return c.Health > 0 }

// ActionType is what the active combatant does with its turn.
type ActionType int

const (
	ActionAttack ActionType = iota
	ActionDefend
	ActionHeal
	ActionSpecial
)

// String returns a human-readable action name.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionHeal:
		return "heal"
	case ActionSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Command is a request from an input source (button, hotkey or bot).
// Kind is only read for ActionAttack.
type Command struct {
	Action ActionType
	Kind   AttackKind
}

// AttackCommand returns a Command for an attack of the given kind.
func AttackCommand(kind AttackKind) Command {
	return Command{Action: ActionAttack, Kind: kind}
}

// String returns "attack:heavy" for attacks and the action name otherwise.
func (c Command) String() string {
	if c.Action == ActionAttack {
		return c.Action.String() + ":" + string(ParseAttackKind(string(c.Kind)))
	}
	return c.Action.String()
}

// RejectReason explains why an action was refused.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectFinished
	RejectFullHealth
	RejectSpecialUsed
)

// String returns a short reason code.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectFinished:
		return "match_finished"
	case RejectFullHealth:
		return "full_health"
	case RejectSpecialUsed:
		return "special_used"
	default:
		return "unknown"
	}
}

// Outcome describes what an action did. Rejected outcomes changed nothing.
type Outcome struct {
	Command  Command
	Actor    Side
	Target   Side // the side that took damage; equals Actor for defend and heal
	Accepted bool
	Reason   RejectReason
	Roll     int  // base roll before crit and defend halving
	Damage   int  // damage applied to Target
	Healing  int  // health actually restored
	Critical bool // damage was multiplied
	Blocked  bool // a defend stance halved the damage
	Finished bool // this action ended the match
	Message  string
}
