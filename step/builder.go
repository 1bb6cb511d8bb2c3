package step

import (
	"errors"
	"fmt"
	"math"

	"github.com/zero-day-ai/goap/fact"
	"github.com/zero-day-ai/goap/state"
)

// Builder constructs immutable steps fluently. Builders are single-use:
// Build finalizes the step and the builder should be discarded.
type Builder struct {
	name    string
	pre     []Effect // reuses Effect as an (id, value) pair; Derive unused
	effects []Effect
	cost    CostFunc
	factory ActionFactory
	err     error
}

// NewBuilder starts a step definition with the given display name.
func NewBuilder(name string) *Builder {
	b := &Builder{name: name}
	if name == "" {
		b.err = errors.New("step name is required")
	}
	return b
}

// Require adds a precondition fact the state must satisfy for the step
// to run. Integer preconditions follow threshold semantics, booleans
// and floats exact equality (state.Satisfies rules).
func (b *Builder) Require(factID int, v fact.Value) *Builder {
	b.pre = append(b.pre, Effect{Fact: factID, Value: v})
	return b
}

// Effect adds a literal-value effect.
func (b *Builder) Effect(factID int, v fact.Value) *Builder {
	b.effects = append(b.effects, Effect{Fact: factID, Value: v})
	return b
}

// EffectDerived adds an effect whose value is computed from the
// pre-apply state. The derivation must be pure.
func (b *Builder) EffectDerived(factID int, derive DeriveFunc) *Builder {
	if derive == nil {
		b.err = fmt.Errorf("step %q: nil derivation", b.name)
		return b
	}
	b.effects = append(b.effects, Effect{Fact: factID, Derive: derive})
	return b
}

// Cost sets a constant, state-independent cost.
func (b *Builder) Cost(c float64) *Builder {
	return b.CostFunc(func(*state.State) float64 { return c })
}

// CostFunc sets a state-dependent cost function.
func (b *Builder) CostFunc(fn CostFunc) *Builder {
	if fn == nil {
		b.err = fmt.Errorf("step %q: nil cost function", b.name)
		return b
	}
	b.cost = fn
	return b
}

// Action sets the factory that constructs the runtime action for this
// step. Steps used only for planning may omit it.
func (b *Builder) Action(factory ActionFactory) *Builder {
	b.factory = factory
	return b
}

// Build finalizes the step against the given registry. The registry is
// needed to size the precondition state's presence bitmap.
func (b *Builder) Build(reg *fact.Registry) (*Step, error) {
	if b.err != nil {
		return nil, b.err
	}

	pre := state.New(reg)
	for _, p := range b.pre {
		pre.Set(p.Fact, p.Value)
	}

	cost := b.cost
	if cost == nil {
		cost = func(*state.State) float64 { return 1 }
	}

	s := &Step{
		name:    b.name,
		pre:     pre,
		effects: append([]Effect(nil), b.effects...),
		cost:    guardCost(cost),
		factory: b.factory,
	}
	return s, nil
}

// guardCost clamps invalid costs: negative or NaN results become +Inf,
// which forbids selection rather than corrupting the search ordering.
func guardCost(fn CostFunc) CostFunc {
	return func(s *state.State) float64 {
		c := fn(s)
		if c < 0 || math.IsNaN(c) {
			return math.Inf(1)
		}
		return c
	}
}
