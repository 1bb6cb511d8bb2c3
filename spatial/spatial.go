package spatial

import (
	"math"
	"sync"
)

// Object is a positioned world entity that actions can query for.
type Object struct {
	// ID uniquely identifies the object within its world.
	ID string

	// Kind groups objects for queries (e.g., "tree", "ore", "storage").
	Kind string

	// X, Y are world coordinates.
	X, Y float64
}

// Index answers spatial queries for action implementations.
//
// Implementations must be safe for concurrent use: multiple agents
// tick their plans in parallel and their actions query the same world.
type Index interface {
	// Nearest returns the object of the given kind closest to (x, y),
	// or false when no such object exists.
	Nearest(kind string, x, y float64) (Object, bool)

	// WithinRadius returns all objects of the given kind within r of
	// (x, y), in no particular order.
	WithinRadius(kind string, x, y, r float64) []Object
}

// GridIndex is an in-memory Index backed by a mutex-guarded map.
// Lookups scan all objects of the requested kind, which is fine for
// the object counts examples and tests work with.
type GridIndex struct {
	mu      sync.RWMutex
	objects map[string]Object            // keyed by ID
	byKind  map[string]map[string]Object // kind -> ID -> object
}

// NewGridIndex creates an empty index.
func NewGridIndex() *GridIndex {
	return &GridIndex{
		objects: make(map[string]Object),
		byKind:  make(map[string]map[string]Object),
	}
}

// Insert adds or replaces an object. A replaced object's old kind
// bucket is cleaned up if the kind changed.
func (g *GridIndex) Insert(obj Object) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if old, ok := g.objects[obj.ID]; ok && old.Kind != obj.Kind {
		delete(g.byKind[old.Kind], old.ID)
	}
	g.objects[obj.ID] = obj
	bucket := g.byKind[obj.Kind]
	if bucket == nil {
		bucket = make(map[string]Object)
		g.byKind[obj.Kind] = bucket
	}
	bucket[obj.ID] = obj
}

// Remove deletes an object by ID. Removing an unknown ID is a no-op.
func (g *GridIndex) Remove(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	obj, ok := g.objects[id]
	if !ok {
		return
	}
	delete(g.objects, id)
	delete(g.byKind[obj.Kind], id)
}

// Move updates an object's position. Moving an unknown ID is a no-op
// and returns false.
func (g *GridIndex) Move(id string, x, y float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	obj, ok := g.objects[id]
	if !ok {
		return false
	}
	obj.X, obj.Y = x, y
	g.objects[id] = obj
	g.byKind[obj.Kind][id] = obj
	return true
}

// Nearest implements Index.
func (g *GridIndex) Nearest(kind string, x, y float64) (Object, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	best := Object{}
	bestDist := math.Inf(1)
	found := false
	for _, obj := range g.byKind[kind] {
		d := dist2(obj.X-x, obj.Y-y)
		if d < bestDist {
			best, bestDist, found = obj, d, true
		}
	}
	return best, found
}

// WithinRadius implements Index.
func (g *GridIndex) WithinRadius(kind string, x, y, r float64) []Object {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Object
	r2 := r * r
	for _, obj := range g.byKind[kind] {
		if dist2(obj.X-x, obj.Y-y) <= r2 {
			out = append(out, obj)
		}
	}
	return out
}

// Len returns the number of indexed objects.
func (g *GridIndex) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.objects)
}

func dist2(dx, dy float64) float64 {
	return dx*dx + dy*dy
}
