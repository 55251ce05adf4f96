package combat

import (
	"errors"
	"fmt"

	"github.com/samdwyer/duel/internal/gamedata"
)

// Range is an inclusive integer range.
type Range struct {
	Min, Max int
}

// Rules holds every number the match uses.
type Rules struct {
	MaxHealth      int
	CritPercent    int
	CritMultiplier int
	LogSize        int
	Attacks        map[AttackKind]Range
	Heal           Range
	Special        Range
}

// DefaultRules returns the standard duel numbers.
func DefaultRules() Rules {
	return Rules{
		MaxHealth:      100,
		CritPercent:    20,
		CritMultiplier: 2,
		LogSize:        5,
		Attacks: map[AttackKind]Range{
			KindQuick:  {Min: 5, Max: 10},
			KindNormal: {Min: 10, Max: 20},
			KindHeavy:  {Min: 15, Max: 25},
		},
		Heal:    Range{Min: 10, Max: 20},
		Special: Range{Min: 25, Max: 35},
	}
}

// RulesFromCatalog builds Rules from the embedded action catalogue.
func RulesFromCatalog(reg *gamedata.ActionRegistry) (Rules, error) {
	if reg == nil {
		return Rules{}, errors.New("nil action registry")
	}
	def := reg.Rules()
	rules := Rules{
		MaxHealth:      def.MaxHealth,
		CritPercent:    def.CritPercent,
		CritMultiplier: def.CritMultiplier,
		LogSize:        def.LogSize,
		Attacks:        make(map[AttackKind]Range, len(AttackKinds)),
	}

	for _, kind := range AttackKinds {
		a := reg.GetByID(string(kind))
		if a == nil || a.Effect != gamedata.EffectAttack {
			return Rules{}, fmt.Errorf("catalogue has no %s attack", kind)
		}
		rules.Attacks[kind] = Range{Min: a.Min, Max: a.Max}
	}

	heal := reg.ByEffect(gamedata.EffectHeal)
	if len(heal) != 1 {
		return Rules{}, fmt.Errorf("catalogue must define exactly one heal action, got %d", len(heal))
	}
	rules.Heal = Range{Min: heal[0].Min, Max: heal[0].Max}

	special := reg.ByEffect(gamedata.EffectSpecial)
	if len(special) != 1 {
		return Rules{}, fmt.Errorf("catalogue must define exactly one special action, got %d", len(special))
	}
	rules.Special = Range{Min: special[0].Min, Max: special[0].Max}

	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate checks that the rules describe a playable match.
func (r Rules) Validate() error {
	var errs []error
	if r.MaxHealth < 1 {
		errs = append(errs, fmt.Errorf("max health must be >= 1, got %d", r.MaxHealth))
	}
	if r.CritPercent < 0 || r.CritPercent > 100 {
		errs = append(errs, fmt.Errorf("crit percent must be 0-100, got %d", r.CritPercent))
	}
	if r.CritMultiplier < 1 {
		errs = append(errs, fmt.Errorf("crit multiplier must be >= 1, got %d", r.CritMultiplier))
	}
	if r.LogSize < 1 {
		errs = append(errs, fmt.Errorf("log size must be >= 1, got %d", r.LogSize))
	}
	for _, kind := range AttackKinds {
		rg, ok := r.Attacks[kind]
		if !ok {
			errs = append(errs, fmt.Errorf("missing range for %s attack", kind))
			continue
		}
		if rg.Min < 0 || rg.Max < rg.Min {
			errs = append(errs, fmt.Errorf("bad range for %s attack: %d-%d", kind, rg.Min, rg.Max))
		}
	}
	if r.Heal.Min < 0 || r.Heal.Max < r.Heal.Min {
		errs = append(errs, fmt.Errorf("bad heal range: %d-%d", r.Heal.Min, r.Heal.Max))
	}
	if r.Special.Min < 0 || r.Special.Max < r.Special.Min {
		errs = append(errs, fmt.Errorf("bad special range: %d-%d", r.Special.Min, r.Special.Max))
	}
	return errors.Join(errs...)
}
