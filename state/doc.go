// Package state provides the sparse, bit-indexed fact container used to
// represent world snapshots, goals, and intermediate planning states.
//
// A State pairs a sparse id->value map with a presence bitmap sized to
// at least the owning registry's fact count. The bitmap auto-grows
// (never shrinks) when a higher id is set. States are created fresh per
// planning node by cloning a parent and applying one step's effects, or
// once as the long-lived world snapshot that seeds planning.
//
// Goal satisfaction is deliberately asymmetric: integer facts are
// treated as accumulative resource thresholds (receiver >= goal), while
// boolean and float facts require exact equality. This asymmetry is
// load-bearing for step semantics (inventory counts vs. location flags)
// and must not be "fixed" without auditing every dependent step factory.
package state
