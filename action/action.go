package action

// Status reports the outcome of a single action update.
type Status string

const (
	// StatusRunning indicates the action needs more ticks to complete.
	StatusRunning Status = "running"

	// StatusSucceeded indicates the action completed and its step's
	// effects may be applied.
	StatusSucceeded Status = "succeeded"

	// StatusFailed indicates the action cannot complete; the whole plan
	// fails immediately.
	StatusFailed Status = "failed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the status is a recognized value.
func (s Status) IsValid() bool {
	switch s {
	case StatusRunning, StatusSucceeded, StatusFailed:
		return true
	default:
		return false
	}
}

// ExitReason explains why an action's Exit hook is being invoked.
type ExitReason string

const (
	// ExitCompleted means the action ran to successful completion, or
	// the plan's external goal predicate short-circuited it.
	ExitCompleted ExitReason = "completed"

	// ExitFailed means the action reported failure or its validity
	// guard returned false.
	ExitFailed ExitReason = "failed"

	// ExitCancelled means the plan was explicitly cancelled by its
	// owner.
	ExitCancelled ExitReason = "cancelled"
)

// String returns the string representation of the exit reason.
func (r ExitReason) String() string {
	return string(r)
}

// IsValid checks if the exit reason is a recognized value.
func (r ExitReason) IsValid() bool {
	switch r {
	case ExitCompleted, ExitFailed, ExitCancelled:
		return true
	default:
		return false
	}
}

// Action is the runtime behavior bound to a plan step. Implementations
// live in domain code; the executor drives them tick by tick.
//
// The actor parameter is the opaque agent the plan belongs to; the
// engine never inspects it.
type Action interface {
	// Enter is invoked once when the step becomes active. It must be
	// safe to call again on a new instance after a prior cancel.
	Enter(actor any)

	// Update advances the action by dt seconds and reports its status.
	// While returning StatusRunning it must have no side effects beyond
	// its own bookkeeping.
	Update(actor any, dt float64) Status

	// Exit is invoked exactly once per Enter, with the reason the
	// action is being torn down. It is responsible for releasing
	// anything externally held (reservations, locks, claims).
	Exit(actor any, reason ExitReason)
}

// ValidityGuard is an optional capability an Action may implement.
// When present, the executor consults it every tick; a false return
// fails the plan so the caller can discard it and replan.
type ValidityGuard interface {
	// StillValid reports whether the action's premise still holds.
	StillValid(actor any) bool
}
