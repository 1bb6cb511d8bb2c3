package state

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/zero-day-ai/goap/fact"
)

const bitsPerWord = 64

// State is a sparse set of facts keyed by registry id, with a presence
// bitmap. A presence bit is set if and only if a value has been
// assigned for that id.
//
// A State is not safe for concurrent mutation; planning clones states
// per node and plan execution mutates only its own rolling copy.
type State struct {
	reg     *fact.Registry
	values  map[int]fact.Value
	present []uint64

	// hash caches the deterministic digest between mutations.
	hash      uint64
	hashValid bool
}

// New creates an empty state whose presence bitmap is sized to the
// registry's current fact count. The bitmap grows automatically if
// facts are registered later.
func New(reg *fact.Registry) *State {
	words := (reg.Count() + bitsPerWord - 1) / bitsPerWord
	return &State{
		reg:     reg,
		values:  make(map[int]fact.Value),
		present: make([]uint64, words),
	}
}

// Registry returns the fact registry this state was created against.
func (s *State) Registry() *fact.Registry {
	return s.reg
}

// Set assigns a value for a fact id, growing the backing storage if
// needed, marking presence, and invalidating the cached hash.
func (s *State) Set(id int, v fact.Value) {
	s.grow(id)
	s.values[id] = v
	s.present[id/bitsPerWord] |= 1 << (id % bitsPerWord)
	s.hashValid = false
}

// SetName assigns a value by fact name, interning the name if needed.
// It returns the fact id for convenience.
func (s *State) SetName(name string, v fact.Value) int {
	id := s.reg.GetID(name)
	s.Set(id, v)
	return id
}

// Get returns the value for a fact id and whether it is present.
func (s *State) Get(id int) (fact.Value, bool) {
	if !s.Has(id) {
		return fact.Value{}, false
	}
	return s.values[id], true
}

// GetName returns the value for a fact name and whether it is present.
func (s *State) GetName(name string) (fact.Value, bool) {
	return s.Get(s.reg.GetID(name))
}

// Has reports whether a value has been assigned for the fact id.
func (s *State) Has(id int) bool {
	word := id / bitsPerWord
	if id < 0 || word >= len(s.present) {
		return false
	}
	return s.present[word]&(1<<(id%bitsPerWord)) != 0
}

// Len returns the number of present facts.
func (s *State) Len() int {
	return len(s.values)
}

// Each calls fn for every present fact. Iteration stops early if fn
// returns false. Order is unspecified.
func (s *State) Each(fn func(id int, v fact.Value) bool) {
	for id, v := range s.values {
		if !fn(id, v) {
			return
		}
	}
}

// Clone returns a full, independent deep copy. The clone shares the
// registry pointer (the registry is append-only and concurrent-safe)
// but no mutable storage with the source.
func (s *State) Clone() *State {
	c := &State{
		reg:       s.reg,
		values:    make(map[int]fact.Value, len(s.values)),
		present:   make([]uint64, len(s.present)),
		hash:      s.hash,
		hashValid: s.hashValid,
	}
	for id, v := range s.values {
		c.values[id] = v
	}
	copy(c.present, s.present)
	return c
}

// Satisfies reports whether this state meets every fact requirement in
// goal. For each fact present in goal, the receiver must have that fact
// present and either strictly equal, or, for integer facts only, greater
// than or equal to the goal value. Integer facts act as accumulative
// resource thresholds; booleans and floats require exact equality.
func (s *State) Satisfies(goal *State) bool {
	for id, want := range goal.values {
		have, ok := s.values[id]
		if !ok || !s.Has(id) {
			return false
		}
		if have.Equal(want) {
			continue
		}
		if have.Kind() == fact.KindInt && want.Kind() == fact.KindInt && have.Int() >= want.Int() {
			continue
		}
		return false
	}
	return true
}

// Hash returns a deterministic 64-bit digest of the fact set, stable
// across insertion order. The digest is cached between mutations and
// recomputed lazily after any Set.
func (s *State) Hash() uint64 {
	if s.hashValid {
		return s.hash
	}

	ids := make([]int, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var buf [17]byte
	d := xxhash.New()
	for _, id := range ids {
		v := s.values[id]
		binary.LittleEndian.PutUint64(buf[0:8], uint64(id))
		buf[8] = byte(v.Kind())
		binary.LittleEndian.PutUint64(buf[9:17], v.Bits())
		_, _ = d.Write(buf[:])
	}

	s.hash = d.Sum64()
	s.hashValid = true
	return s.hash
}

// grow ensures the presence bitmap covers the given id.
func (s *State) grow(id int) {
	need := id/bitsPerWord + 1
	if need <= len(s.present) {
		return
	}
	next := make([]uint64, need)
	copy(next, s.present)
	s.present = next
}
