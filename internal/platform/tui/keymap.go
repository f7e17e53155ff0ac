package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/t2048/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "k", "up":
		return core.ActionUp, false
	case "s", "j", "down":
		return core.ActionDown, false
	case "a", "h", "left":
		return core.ActionLeft, false
	case "d", "l", "right":
		return core.ActionRight, false
	case "u", "backspace":
		return core.ActionUndo, false
	case "n", "r":
		return core.ActionNewGame, false
	case "tab":
		return core.ActionScores, false
	case "enter":
		return core.ActionConfirm, false
	case "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// SwipeTracker turns a left-button press and its release into a move.
type SwipeTracker struct {
	threshold int
	active    bool
	startX    int
	startY    int
}

// NewSwipeTracker creates a tracker that ignores drags shorter than threshold
// cells.
func NewSwipeTracker(threshold int) *SwipeTracker {
	if threshold < 1 {
		threshold = 1
	}
	return &SwipeTracker{threshold: threshold}
}

// Mouse feeds a mouse event to the tracker. It returns the swipe's move
// action on release, or ActionNone.
func (st *SwipeTracker) Mouse(msg tea.MouseMsg) core.Action {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return core.ActionNone
		}
		st.active = true
		st.startX, st.startY = msg.X, msg.Y
	case tea.MouseActionRelease:
		if !st.active {
			return core.ActionNone
		}
		st.active = false
		return core.SwipeAction(msg.X-st.startX, msg.Y-st.startY, st.threshold)
	}
	return core.ActionNone
}

// Cancel drops a swipe in progress.
func (st *SwipeTracker) Cancel() {
	st.active = false
}
