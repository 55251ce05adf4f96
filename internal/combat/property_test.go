package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/samdwyer/duel/internal/dice"
)

// snapshot captures everything an action may change.
type snapshot struct {
	fighters [2]Combatant
	turn     Side
	log      []string
	phase    Phase
	winner   Side
	actions  int
}

func snapshotOf(m *Match) snapshot {
	return snapshot{
		fighters: m.fighters,
		turn:     m.turn,
		log:      m.Log(),
		phase:    m.phase,
		winner:   m.winner,
		actions:  m.actions,
	}
}

var commandGen = rapid.SampledFrom([]Command{
	AttackCommand(KindQuick),
	AttackCommand(KindNormal),
	AttackCommand(KindHeavy),
	{Action: ActionDefend},
	{Action: ActionHeal},
	{Action: ActionSpecial},
})

// TestMatchInvariants_Property drives random command sequences through a
// seeded match and checks the state machine invariants after every step.
func TestMatchInvariants_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		cmds := rapid.SliceOfN(commandGen, 1, 80).Draw(rt, "commands")

		m := NewMatch(DefaultRules(), dice.NewRoller(dice.NewSeededSource(seed), nil))
		specials := map[Side]int{}

		for _, cmd := range cmds {
			before := snapshotOf(m)
			out := m.Apply(cmd)
			after := snapshotOf(m)

			if !out.Accepted {
				assert.Equal(rt, before, after, "rejected %s changed state", cmd)
				continue
			}

			assert.Equal(rt, before.actions+1, after.actions)
			if out.Finished {
				assert.Equal(rt, before.turn, after.turn, "finishing action keeps the turn")
				assert.Equal(rt, PhaseFinished, after.phase)
				assert.Equal(rt, out.Actor, after.winner)
			} else {
				assert.Equal(rt, before.turn.Opponent(), after.turn, "turn must alternate")
			}

			if cmd.Action == ActionSpecial {
				specials[out.Actor]++
				assert.LessOrEqual(rt, specials[out.Actor], 1, "special used twice by %s", out.Actor)
			}
			if out.Blocked {
				assert.True(rt, before.fighters[out.Target.index()].Defending)
				assert.False(rt, after.fighters[out.Target.index()].Defending, "defend stance survived a hit")
			}
			if out.Damage > 0 && !out.Blocked {
				assert.False(rt, before.fighters[out.Target.index()].Defending, "unblocked hit on a defending target")
			}

			anyDown := false
			for _, side := range []Side{SideOne, SideTwo} {
				hp := m.Health(side)
				assert.GreaterOrEqual(rt, hp, 0)
				assert.LessOrEqual(rt, hp, 100)
				assert.LessOrEqual(rt, m.Fighter(side).Health, 100)
				if m.Fighter(side).Health <= 0 {
					anyDown = true
				}
			}
			assert.Equal(rt, anyDown, m.Finished(), "finished iff some health <= 0")
			assert.LessOrEqual(rt, len(m.Log()), 5)
		}
	})
}

// TestAttackDamageWithinRange_Property checks applied attack damage against
// the kind's range, the crit multiplier and defend halving.
func TestAttackDamageWithinRange_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		kind := rapid.SampledFrom(AttackKinds).Draw(rt, "kind")
		defending := rapid.Bool().Draw(rt, "defending")

		rules := DefaultRules()
		m := NewMatch(rules, dice.NewRoller(dice.NewSeededSource(seed), nil))
		m.fighters[SideTwo.index()].Defending = defending

		out := m.Attack(kind)
		r := rules.Attacks[kind]

		assert.GreaterOrEqual(rt, out.Roll, r.Min)
		assert.LessOrEqual(rt, out.Roll, r.Max)

		want := out.Roll
		if out.Critical {
			want *= rules.CritMultiplier
		}
		if defending {
			want /= 2
		}
		assert.Equal(rt, want, out.Damage)
		assert.Equal(rt, defending, out.Blocked)
	})
}
