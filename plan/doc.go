// Package plan provides the tick-driven execution state machine for a
// plan produced by the planner.
//
// A Plan owns an ordered step sequence, an execution cursor, the
// currently active action (if any), and a rolling fact state that
// accumulates effects as steps succeed. Exactly one logical thread may
// tick a given Plan; there is no internal locking, and concurrent ticks
// of the same instance are undefined behavior.
//
// The machine is NotStarted -> Running -> {Succeeded, Failed}, with
// both terminal states cached: once complete, Tick returns the stored
// result immediately. A validity-guard failure or an action failure
// fails the whole plan; the engine never replans on its own — callers
// discard the plan and request a fresh one.
package plan
