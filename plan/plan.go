package plan

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/zero-day-ai/goap/action"
	"github.com/zero-day-ai/goap/state"
	"github.com/zero-day-ai/goap/step"
)

// Status is the plan execution state.
type Status string

const (
	// StatusNotStarted means Tick has never been called.
	StatusNotStarted Status = "not_started"

	// StatusRunning means execution is in progress.
	StatusRunning Status = "running"

	// StatusSucceeded is terminal: all steps completed or the goal
	// predicate reported satisfied.
	StatusSucceeded Status = "succeeded"

	// StatusFailed is terminal: an action failed, a validity guard
	// tripped, or the plan was cancelled.
	StatusFailed Status = "failed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status is Succeeded or Failed.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// GoalFunc is an optional externally-supplied predicate checked during
// Tick. Returning true short-circuits the plan to Succeeded even if the
// plan's own effect model hasn't caught up with the world.
type GoalFunc func() bool

// Plan is an ordered step sequence plus execution state. Create plans
// through the planner; New is exported for tests and for callers that
// assemble step sequences by hand.
type Plan struct {
	id      string
	steps   []*step.Step
	cost    float64
	rolling *state.State
	logger  *slog.Logger

	cursor int // index of the current step; -1 = not started
	active action.Action
	status Status
}

// Option configures a Plan.
type Option func(*Plan)

// WithLogger sets a structured logger for execution events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plan) {
		p.logger = logger
	}
}

// WithCost records the total planned cost for reporting.
func WithCost(cost float64) Option {
	return func(p *Plan) {
		p.cost = cost
	}
}

// New creates a plan over the given steps. The rolling state should be
// an independent clone of the world snapshot planning started from; the
// plan mutates it as steps succeed.
func New(steps []*step.Step, rolling *state.State, opts ...Option) *Plan {
	p := &Plan{
		id:      uuid.New().String(),
		steps:   steps,
		rolling: rolling,
		cursor:  -1,
		status:  StatusNotStarted,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// ID returns the plan's unique identifier.
func (p *Plan) ID() string {
	return p.id
}

// Steps returns the planned step sequence. Callers must not mutate it.
func (p *Plan) Steps() []*step.Step {
	return p.steps
}

// Cost returns the total planned cost recorded at creation.
func (p *Plan) Cost() float64 {
	return p.cost
}

// State returns the plan's rolling fact state. It reflects the effects
// of every step that has succeeded so far.
func (p *Plan) State() *state.State {
	return p.rolling
}

// Status returns the current execution state.
func (p *Plan) Status() Status {
	return p.status
}

// IsComplete reports whether the plan reached a terminal state.
func (p *Plan) IsComplete() bool {
	return p.status.IsTerminal()
}

// Succeeded reports whether the plan completed successfully.
func (p *Plan) Succeeded() bool {
	return p.status == StatusSucceeded
}

// CurrentStepIndex returns the index of the step currently executing,
// or -1 if execution has not started.
func (p *Plan) CurrentStepIndex() int {
	return p.cursor
}

// Tick advances execution by one frame. actor is the opaque agent the
// plan belongs to, dt is the elapsed time handed to the active action,
// and goalMet is an optional external goal predicate (may be nil).
//
// At most one step is started per tick: when a step succeeds, the next
// one begins on a subsequent tick, never within the same one.
func (p *Plan) Tick(actor any, dt float64, goalMet GoalFunc) Status {
	if p.status.IsTerminal() {
		return p.status
	}
	p.status = StatusRunning

	// An externally-changing world may satisfy the goal before the
	// plan's own effect model catches up.
	if goalMet != nil && goalMet() {
		p.exitActive(actor, action.ExitCompleted)
		p.status = StatusSucceeded
		return p.status
	}

	// Runtime guard: the active action knows best whether its premise
	// still holds. A tripped guard fails the plan; the caller must
	// discard it and request a fresh one.
	if p.active != nil {
		if guard, ok := p.active.(action.ValidityGuard); ok && !guard.StillValid(actor) {
			p.logger.Debug("plan action guard tripped",
				"plan_id", p.id, "step", p.steps[p.cursor].Name())
			p.exitActive(actor, action.ExitFailed)
			p.status = StatusFailed
			return p.status
		}
	}

	if p.active == nil {
		p.cursor++
		if p.cursor >= len(p.steps) {
			p.status = StatusSucceeded
			return p.status
		}
		// Action construction or entry panics propagate to the caller;
		// they are programmer errors, not recoverable conditions.
		p.active = p.steps[p.cursor].NewAction()
		p.active.Enter(actor)
	}

	switch p.active.Update(actor, dt) {
	case action.StatusRunning:
		return StatusRunning

	case action.StatusSucceeded:
		cur := p.steps[p.cursor]
		p.exitActive(actor, action.ExitCompleted)
		cur.Apply(p.rolling)
		p.logger.Debug("plan step completed",
			"plan_id", p.id, "step", cur.Name(), "index", p.cursor)

		if goalMet != nil && goalMet() {
			p.status = StatusSucceeded
		} else if p.cursor == len(p.steps)-1 {
			p.status = StatusSucceeded
		}
		return p.status

	default: // action.StatusFailed
		p.logger.Debug("plan step failed",
			"plan_id", p.id, "step", p.steps[p.cursor].Name(), "index", p.cursor)
		p.exitActive(actor, action.ExitFailed)
		p.status = StatusFailed
		return p.status
	}
}

// Cancel forces the plan into Failed, invoking Exit(Cancelled) on the
// active action if any. Calling Cancel again, or on a terminal plan, is
// a no-op.
func (p *Plan) Cancel(actor any) {
	if p.status.IsTerminal() {
		return
	}
	p.exitActive(actor, action.ExitCancelled)
	p.status = StatusFailed
}

// exitActive invokes the active action's exit hook exactly once and
// clears it.
func (p *Plan) exitActive(actor any, reason action.ExitReason) {
	if p.active == nil {
		return
	}
	p.active.Exit(actor, reason)
	p.active = nil
}
