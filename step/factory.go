package step

import (
	"context"
	"sync"

	"github.com/zero-day-ai/goap/state"
)

// Factory emits candidate steps for one planning call.
//
// CreateSteps inspects the supplied initial state and emits only steps
// whose preconditions could plausibly ever be met given the facts
// observed in it (don't emit "chop tree" when no tree fact is present).
// This bounds the branching factor at the deliberate cost of never
// discovering steps that only become legal after facts appear
// mid-search that weren't present initially.
//
// Factories must be safe under concurrent invocation from multiple
// simultaneous planning calls. Returned steps are owned by that call
// and are never cached across calls.
type Factory interface {
	// Name identifies the factory in logs.
	Name() string

	// CreateSteps emits candidate steps for the given initial state.
	CreateSteps(ctx context.Context, initial *state.State) ([]*Step, error)
}

// FactoryFunc adapts a plain function into a Factory.
type FactoryFunc struct {
	// FactoryName identifies the factory in logs.
	FactoryName string

	// Fn emits the candidate steps.
	Fn func(ctx context.Context, initial *state.State) ([]*Step, error)
}

// Name implements Factory.
func (f FactoryFunc) Name() string {
	return f.FactoryName
}

// CreateSteps implements Factory.
func (f FactoryFunc) CreateSteps(ctx context.Context, initial *state.State) ([]*Step, error) {
	return f.Fn(ctx, initial)
}

// FactoryRegistry is an explicit collection of step factories.
// Factories are registered concretely at initialization; there is no
// reflection-based discovery. Safe for concurrent registration and
// listing, though the expected pattern is register-at-startup.
type FactoryRegistry struct {
	mu        sync.RWMutex
	factories []Factory
}

// NewFactoryRegistry creates an empty factory registry.
func NewFactoryRegistry(factories ...Factory) *FactoryRegistry {
	return &FactoryRegistry{factories: append([]Factory(nil), factories...)}
}

// Register appends a factory.
func (r *FactoryRegistry) Register(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = append(r.factories, f)
}

// All returns a snapshot of the registered factories.
func (r *FactoryRegistry) All() []Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Factory(nil), r.factories...)
}

// Len returns the number of registered factories.
func (r *FactoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}
