package gamedata

import (
	"errors"
	"fmt"
)

// =============================================================================
// ActionRegistry
// =============================================================================

// ActionRegistry holds loaded action definitions and provides lookup utilities.
type ActionRegistry struct {
	rules   RulesDef
	actions map[string]*ActionDef
	all     []ActionDef
}

// NewActionRegistry creates a registry from loaded action definitions.
func NewActionRegistry(rules RulesDef, actions []ActionDef) *ActionRegistry {
	registry := &ActionRegistry{
		rules:   rules,
		actions: make(map[string]*ActionDef),
		all:     actions,
	}
	for i := range actions {
		registry.actions[actions[i].ID] = &actions[i]
	}
	return registry
}

// LoadActionRegistry loads and creates a registry from the embedded actions.yaml.
func LoadActionRegistry() (*ActionRegistry, error) {
	file, err := LoadActions()
	if err != nil {
		return nil, err
	}
	if len(file.Actions) == 0 {
		return nil, errors.New("no actions loaded from actions.yaml")
	}
	for _, a := range file.Actions {
		if a.Max < a.Min {
			return nil, fmt.Errorf("action %q has max %d below min %d", a.ID, a.Max, a.Min)
		}
	}
	return NewActionRegistry(file.Rules, file.Actions), nil
}

// MustLoadActionRegistry loads a registry, panicking on error.
func MustLoadActionRegistry() *ActionRegistry {
	registry, err := LoadActionRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Rules returns the match-wide numbers.
func (r *ActionRegistry) Rules() RulesDef {
	return r.rules
}

// GetByID returns the action definition with the given ID, or nil if not found.
func (r *ActionRegistry) GetByID(id string) *ActionDef {
	return r.actions[id]
}

// ByEffect returns the actions with the given effect in file order.
func (r *ActionRegistry) ByEffect(effect EffectType) []*ActionDef {
	var result []*ActionDef
	for i := range r.all {
		if r.all[i].Effect == effect {
			result = append(result, &r.all[i])
		}
	}
	return result
}

// All returns all action definitions.
func (r *ActionRegistry) All() []ActionDef {
	return r.all
}

// Count returns the number of actions in the registry.
func (r *ActionRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// FighterRegistry
// =============================================================================

// FighterRegistry holds the two fighter definitions indexed by side.
type FighterRegistry struct {
	bySide map[int]*FighterDef
	all    []FighterDef
}

// NewFighterRegistry creates a registry from loaded fighter definitions.
func NewFighterRegistry(fighters []FighterDef) *FighterRegistry {
	registry := &FighterRegistry{
		bySide: make(map[int]*FighterDef),
		all:    fighters,
	}
	for i := range fighters {
		registry.bySide[fighters[i].Side] = &fighters[i]
	}
	return registry
}

// LoadFighterRegistry loads and creates a registry from the embedded fighters.yaml.
func LoadFighterRegistry() (*FighterRegistry, error) {
	fighters, err := LoadFighters()
	if err != nil {
		return nil, err
	}
	registry := NewFighterRegistry(fighters)
	for _, side := range []int{1, 2} {
		if registry.BySide(side) == nil {
			return nil, fmt.Errorf("fighters.yaml has no fighter for side %d", side)
		}
	}
	return registry, nil
}

// MustLoadFighterRegistry loads a registry, panicking on error.
func MustLoadFighterRegistry() *FighterRegistry {
	registry, err := LoadFighterRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// BySide returns the fighter for side 1 or 2, or nil if not found.
func (r *FighterRegistry) BySide(side int) *FighterDef {
	return r.bySide[side]
}

// All returns all fighter definitions.
func (r *FighterRegistry) All() []FighterDef {
	return r.all
}
