package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow, swipe up
	ActionDown           // S, J, Down arrow, swipe down
	ActionLeft           // A, H, Left arrow, swipe left
	ActionRight          // D, L, Right arrow, swipe right
	ActionUndo           // U - take back the last move
	ActionNewGame        // N - start over
	ActionConfirm        // Enter - submit the name prompt
	ActionBack           // Escape - leave a view
	ActionScores         // Tab - toggle the leaderboard
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUndo:
		return "Undo"
	case ActionNewGame:
		return "NewGame"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionScores:
		return "Scores"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether a is one of the four move actions.
func (a Action) IsDirection() bool {
	return a >= ActionUp && a <= ActionRight
}

// SwipeAction turns a pointer drag of (dx, dy) cells into a move action along
// the dominant axis. Drags shorter than threshold on that axis return
// ActionNone. Positive dy points down the screen.
func SwipeAction(dx, dy, threshold int) Action {
	if Abs(dx) > Abs(dy) {
		if Abs(dx) < threshold {
			return ActionNone
		}
		if dx > 0 {
			return ActionRight
		}
		return ActionLeft
	}
	if Abs(dy) < threshold || dy == 0 {
		return ActionNone
	}
	if dy > 0 {
		return ActionDown
	}
	return ActionUp
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
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
