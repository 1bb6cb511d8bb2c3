// Package planner implements forward state-space search over fact
// states: a serial A*-style planner and a bounded-beam concurrent
// variant, both producing executable plans.
//
// # Search
//
// A search node is (state, parent index, accumulated cost g,
// f = g + heuristic). Nodes live in an index-addressed arena; the full
// path is materialized only once, by walking parent indices from the
// goal node back to the root. Candidate steps are generated once per
// planning call from the initial state only.
//
// The search is deliberately incomplete under memory pressure: when the
// open set exceeds the configured maximum, only the best half (by f) is
// kept. This bounds memory at the cost of worst-case optimality and
// completeness. It is an intentional trade-off and must not be removed.
//
// The heuristic sums per-fact distances to the goal, optionally blends
// in a weighted implicit-goal state, and supports configured
// resource-chain bonus hints. The hints deliberately break
// admissibility: they estimate known multi-step gathering chains, and
// concrete step factories are written assuming they exist.
//
// # Concurrency
//
// The concurrent planner coordinates workers within one planning call:
// the open set and node arena sit behind a single mutex, while the
// visited set and the "plan found" flag use lock-free primitives
// because they sit on the hottest per-candidate path. Cancellation is
// cooperative: workers poll a shared flag between expansion units and
// are never forcibly interrupted.
//
// "No plan" is an expected outcome, reported as a nil plan with a nil
// error; callers must check for it.
package planner
