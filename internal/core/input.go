package core

import "math"

// Action represents a semantic game action, abstracted from physical input.
type Action int

const (
	ActionNone    Action = iota
	ActionFire           // Space, left click
	ActionLeft           // Left arrow, h - nudge pointer left
	ActionRight          // Right arrow, l - nudge pointer right
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFire:
		return "Fire"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the input observed between two simulation steps.
// Pointer moves use last-value-wins semantics; actions are flags.
type InputFrame struct {
	Actions map[Action]bool

	pointerX   float64
	hasPointer bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetPointer records the latest pointer x. Non-finite values are ignored.
func (f *InputFrame) SetPointer(x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return
	}
	f.pointerX = x
	f.hasPointer = true
}

// Pointer returns the latest pointer x and whether one was observed.
func (f InputFrame) Pointer() (float64, bool) {
	return f.pointerX, f.hasPointer
}

// Clear resets the frame for the next step.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.pointerX = 0
	f.hasPointer = false
}
