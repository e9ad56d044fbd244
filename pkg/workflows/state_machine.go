package workflows

import "fmt"

// Import lifecycle states
const (
	StateIdle       = "IDLE"
	StateDispatched = "DISPATCHED"
	StateExtracted  = "EXTRACTED"
	StateValidated  = "VALIDATED"
	StateSucceeded  = "SUCCEEDED"
	StateFailed     = "FAILED"
)

// StateMachine enforces status transitions
type StateMachine struct {
	initial            string
	allowedTransitions map[string][]string
}

// NewStateMachine creates a new state machine with allowed transitions
func NewStateMachine(initial string, transitions map[string][]string) *StateMachine {
	return &StateMachine{
		initial:            initial,
		allowedTransitions: transitions,
	}
}

// NewImportStateMachine returns the lifecycle of a single boundary import.
// There is no retry edge: a failed import ends the run.
func NewImportStateMachine() *StateMachine {
	return NewStateMachine(StateIdle, map[string][]string{
		StateIdle:       {StateDispatched},
		StateDispatched: {StateExtracted, StateFailed},
		StateExtracted:  {StateValidated, StateFailed},
		StateValidated:  {StateSucceeded, StateFailed},
		StateSucceeded:  {},
		StateFailed:     {},
	})
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}

// IsTerminal reports whether no transition leaves the given status
func (sm *StateMachine) IsTerminal(status string) bool {
	return len(sm.GetAllowedTransitions(status)) == 0
}

// Run tracks one pass through a state machine. It is not safe for concurrent use.
type Run struct {
	sm      *StateMachine
	current string
	history []string
}

// Start begins a run in the machine's initial state
func (sm *StateMachine) Start() *Run {
	return &Run{sm: sm, current: sm.initial, history: []string{sm.initial}}
}

// Current returns the run's current status
func (r *Run) Current() string {
	return r.current
}

// History returns every status the run has visited, in order
func (r *Run) History() []string {
	out := make([]string, len(r.history))
	copy(out, r.history)
	return out
}

// Advance moves the run to the given status
func (r *Run) Advance(to string) error {
	if !r.sm.CanTransition(r.current, to) {
		return fmt.Errorf("invalid status transition from %s to %s", r.current, to)
	}
	r.current = to
	r.history = append(r.history, to)
	return nil
}
