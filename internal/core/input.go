package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - run left (held)
	ActionRight          // D, Right arrow - run right (held)
	ActionJump           // Space, W, Up - jump (held)
	ActionAnyKey         // Edge event: any key was pressed this frame
	ActionRestart        // R key - restart after game over or win
	ActionPause          // P - pause/unpause game
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionAnyKey:
		return "AnyKey"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for one simulation tick.
// Held actions (left, right, jump) are present for every frame the key is
// down; edge actions (any key, restart, pause) only on the frame they fired.
type InputFrame struct {
	Actions map[Action]bool
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

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Intent is the movement request a controller reads from a frame.
type Intent struct {
	Left, Right, Jump bool
}

// Intent extracts the movement intents from the frame.
func (f InputFrame) Intent() Intent {
	return Intent{
		Left:  f.Has(ActionLeft),
		Right: f.Has(ActionRight),
		Jump:  f.Has(ActionJump),
	}
}
