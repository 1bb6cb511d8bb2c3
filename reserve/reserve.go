package reserve

import (
	"context"
	"sync"
)

// Manager is the reservation interface consulted by action
// implementations. All methods are safe for concurrent use.
type Manager interface {
	// TryReserve attempts to claim a resource for an agent. It reports
	// true if the agent now holds the claim (including when it already
	// held it), false if another agent does.
	TryReserve(ctx context.Context, resource, agent string) (bool, error)

	// Release gives up a claim. Releasing a resource held by a
	// different agent, or not held at all, is a no-op.
	Release(ctx context.Context, resource, agent string) error

	// IsAvailableFor reports whether the resource is unclaimed or
	// already claimed by the given agent.
	IsAvailableFor(ctx context.Context, resource, agent string) (bool, error)
}

// MemoryManager is an in-process Manager backed by a mutex-guarded map.
type MemoryManager struct {
	mu     sync.Mutex
	claims map[string]string // resource -> holding agent
}

// NewMemoryManager creates an empty in-process reservation manager.
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{claims: make(map[string]string)}
}

// TryReserve implements Manager.
func (m *MemoryManager) TryReserve(_ context.Context, resource, agent string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	holder, claimed := m.claims[resource]
	if claimed && holder != agent {
		return false, nil
	}
	m.claims[resource] = agent
	return true, nil
}

// Release implements Manager.
func (m *MemoryManager) Release(_ context.Context, resource, agent string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.claims[resource] == agent {
		delete(m.claims, resource)
	}
	return nil
}

// IsAvailableFor implements Manager.
func (m *MemoryManager) IsAvailableFor(_ context.Context, resource, agent string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	holder, claimed := m.claims[resource]
	return !claimed || holder == agent, nil
}
