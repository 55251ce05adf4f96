package combat

import "github.com/google/uuid"

// State is a copy of a match for readers such as the renderer.
// Changing it does not affect the match it came from.
type State struct {
	ID        uuid.UUID
	Fighters  [2]Combatant
	Turn      Side
	Log       []string
	Phase     Phase
	Winner    Side
	Actions   int
	MaxHealth int
}

// State returns a snapshot of the match.
func (m *Match) State() State {
	return State{
		ID:        m.id,
		Fighters:  m.fighters,
		Turn:      m.turn,
		Log:       m.Log(),
		Phase:     m.phase,
		Winner:    m.winner,
		Actions:   m.actions,
		MaxHealth: m.rules.MaxHealth,
	}
}

// Fighter returns the combatant on the given side.
func (s State) Fighter(side Side) Combatant {
	return s.Fighters[side.index()]
}

// Health returns the side's health clamped for display.
func (s State) Health(side Side) int {
	return clamp(s.Fighters[side.index()].Health, 0, s.MaxHealth)
}

// Finished reports whether the snapshot was taken after the match ended.
func (s State) Finished() bool {
	return s.Phase == PhaseFinished
}

// RestoreMatch rebuilds a match from a snapshot. The log is trimmed to the
// rules' log size and an unset turn defaults to side one.
func RestoreMatch(rules Rules, dice Dice, s State) *Match {
	m := &Match{
		id:       s.ID,
		rules:    rules,
		dice:     dice,
		fighters: s.Fighters,
		turn:     s.Turn,
		phase:    s.Phase,
		winner:   s.Winner,
		actions:  s.Actions,
	}
	if m.id == uuid.Nil {
		m.id = uuid.New()
	}
	if m.turn != SideOne && m.turn != SideTwo {
		m.turn = SideOne
	}
	for _, line := range s.Log {
		m.record(line)
	}
	return m
}
