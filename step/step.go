package step

import (
	"github.com/zero-day-ai/goap/action"
	"github.com/zero-day-ai/goap/fact"
	"github.com/zero-day-ai/goap/state"
)

// CostFunc computes the cost of taking a step from a given state. It
// may read arbitrary facts (estimated distance, inventory weight) and
// may return +Inf to forbid selection for that state without removing
// the step from the candidate set. Costs must never be negative.
type CostFunc func(s *state.State) float64

// DeriveFunc computes an effect value from the pre-apply state. It must
// be pure: no reads or writes of anything outside the supplied state.
// Derivations enable effects like "decrement a count".
type DeriveFunc func(pre *state.State) fact.Value

// ActionFactory constructs the runtime action a step drives. It is
// invoked by the plan executor when the step becomes active, never by
// the planner.
type ActionFactory func() action.Action

// Effect is a single (fact, value-or-derivation) pair. Exactly one of
// Value or Derive is used; when Derive is non-nil it wins.
type Effect struct {
	Fact   int
	Value  fact.Value
	Derive DeriveFunc
}

// Step is an immutable planning edge. Construct steps with a Builder.
type Step struct {
	name    string
	pre     *state.State
	effects []Effect
	cost    CostFunc
	factory ActionFactory
}

// Name returns the step's display name.
func (s *Step) Name() string {
	return s.name
}

// Preconditions returns the precondition state. Callers must not
// mutate it.
func (s *Step) Preconditions() *state.State {
	return s.pre
}

// Effects returns the ordered effect list. Callers must not mutate it.
func (s *Step) Effects() []Effect {
	return s.effects
}

// CanRun reports whether the step's preconditions are satisfied by the
// given state.
func (s *Step) CanRun(st *state.State) bool {
	return st.Satisfies(s.pre)
}

// Cost evaluates the step's cost function against the given state.
func (s *Step) Cost(st *state.State) float64 {
	return s.cost(st)
}

// NewAction constructs the runtime action for this step. It panics if
// the step was built without an action factory; that is a programming
// error surfaced at execution time, not a recoverable condition.
func (s *Step) NewAction() action.Action {
	return s.factory()
}

// HasAction reports whether the step carries an action factory.
// Planning-only steps (tests, simulations) may omit one.
func (s *Step) HasAction() bool {
	return s.factory != nil
}

// Apply writes the step's effects into st. All derivations are resolved
// against a snapshot of the pre-apply state first, so effects within
// one step never observe each other.
func (s *Step) Apply(st *state.State) {
	resolved := make([]fact.Value, len(s.effects))
	for i, e := range s.effects {
		if e.Derive == nil {
			resolved[i] = e.Value
			continue
		}
		// All derivations see the state before any of this step's
		// writes land.
		resolved[i] = e.Derive(st)
	}
	for i, e := range s.effects {
		st.Set(e.Fact, resolved[i])
	}
}
