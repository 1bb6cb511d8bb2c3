package fact

import (
	"sync"
	"sync/atomic"
)

// registrySnapshot is an immutable view of the name<->id mapping.
// Lookups read the current snapshot without taking a lock; registering
// a new name swaps in a fresh snapshot under the registry mutex.
type registrySnapshot struct {
	byName map[string]int
	names  []string
}

// Registry interns fact names to stable, sequential integer ids.
//
// Ids are assigned in first-seen order starting at 0 and are never
// reused or removed. A Registry is safe for concurrent use from
// multiple simultaneous planning calls: the lookup path is lock-free,
// backed by copy-on-write snapshots, with a narrow critical section
// only for first registration of a brand-new name.
type Registry struct {
	mu   sync.Mutex
	snap atomic.Pointer[registrySnapshot]
}

// NewRegistry creates an empty fact registry. One registry is expected
// to be created at process start and shared by all planning components.
func NewRegistry() *Registry {
	r := &Registry{}
	r.snap.Store(&registrySnapshot{byName: map[string]int{}})
	return r
}

// GetID returns the id for a fact name, assigning the next sequential
// id the first time the name is seen. It is idempotent: the same name
// always maps to the same id.
func (r *Registry) GetID(name string) int {
	if id, ok := r.snap.Load().byName[name]; ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under the lock: another goroutine may have registered
	// the name between the snapshot read and lock acquisition.
	cur := r.snap.Load()
	if id, ok := cur.byName[name]; ok {
		return id
	}

	id := len(cur.names)
	next := &registrySnapshot{
		byName: make(map[string]int, len(cur.byName)+1),
		names:  make([]string, len(cur.names), len(cur.names)+1),
	}
	for k, v := range cur.byName {
		next.byName[k] = v
	}
	copy(next.names, cur.names)
	next.byName[name] = id
	next.names = append(next.names, name)
	r.snap.Store(next)
	return id
}

// GetName returns the name registered for an id. Passing an id that was
// never issued is a programming error and panics with an out-of-range
// fault rather than returning a recoverable error.
func (r *Registry) GetName(id int) string {
	return r.snap.Load().names[id]
}

// Count returns the number of registered facts. Ids issued so far are
// exactly [0, Count).
func (r *Registry) Count() int {
	return len(r.snap.Load().names)
}
