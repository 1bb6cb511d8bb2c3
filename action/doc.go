// Package action defines the runtime behavior contract that plan steps
// drive during execution.
//
// Actions are supplied by domain code (movement, harvesting,
// construction) and consumed by the plan execution state machine. The
// planner never touches actions; it only records the factory that will
// construct one when its step is reached.
//
// The lifecycle is Enter, zero or more Updates, then exactly one Exit
// per Enter. An action may additionally implement ValidityGuard to let
// the executor detect mid-plan invalidation (for example, the targeted
// tree was felled by another agent) and fail the plan early so the
// caller can request a fresh one.
package action
