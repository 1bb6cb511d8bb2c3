// Package fact provides the fact vocabulary shared by all planning
// components: a process-wide registry that interns fact names to stable
// integer ids, and a closed tagged-union value type over booleans,
// integers, and floats.
//
// # Registry
//
// A Registry assigns each fact name a small sequential id the first time
// it is seen. Ids are never reused or removed, so they can be used as
// array indices for the lifetime of the process. The read path is
// lock-free (copy-on-write snapshots behind an atomic pointer); only the
// first registration of a brand-new name takes a lock. A single Registry
// is expected to be created at process start and threaded explicitly
// through planners and states:
//
//	reg := fact.NewRegistry()
//	hasTree := reg.GetID("WorldHasTree")
//
// # Value
//
// Value is a strict three-case union. Equality requires both the same
// case and the same payload bits: a Float 1.0 is never equal to an
// Int 1. There is no implicit numeric coercion between cases.
package fact
