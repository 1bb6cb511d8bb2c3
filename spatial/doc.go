// Package spatial provides world-object lookup for agents executing
// plans.
//
// Planning itself is purely symbolic: the planner reasons over facts
// and never consults positions. Spatial queries belong to action
// implementations, which resolve symbolic intents ("chop a tree") into
// concrete world objects ("the nearest tree") at execution time. The
// Index interface is the seam where games and simulations plug in
// their own world representation; GridIndex is an in-memory
// implementation suitable for examples, tests, and small worlds.
package spatial
