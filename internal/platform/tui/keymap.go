package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chorpolice/internal/core"
)

// Terminals report key presses but never releases. A held key shows up as
// one press, a pause of roughly half a second, then a stream of repeats, so
// a hold is modelled as a window that each press opens or extends.
const (
	DefaultHoldInitial = 550 * time.Millisecond
	DefaultHoldRepeat  = 120 * time.Millisecond
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ", "w", "up":
		return core.ActionJump, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// IsHeld reports whether an action is a movement intent that lasts while the
// key is down. Jump is an edge: each press asks for exactly one jump, so a
// landing never fires another without a fresh press or an autorepeat.
func IsHeld(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// HoldTracker turns a stream of key presses into held actions.
type HoldTracker struct {
	initial time.Duration
	repeat  time.Duration
	until   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. A fresh press holds for initial; a press
// while already held extends the hold to at least repeat from now.
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	return &HoldTracker{
		initial: initial,
		repeat:  repeat,
		until:   make(map[core.Action]time.Time),
	}
}

// Press records a press of a held action at now.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	// Only one horizontal direction can be down.
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	}

	if h.Held(a, now) {
		if next := now.Add(h.repeat); next.After(h.until[a]) {
			h.until[a] = next
		}
		return
	}
	h.until[a] = now.Add(h.initial)
}

// Held reports whether a is down at now.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	until, ok := h.until[a]
	return ok && now.Before(until)
}

// Apply sets every action held at now on the frame.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a := range h.until {
		if h.Held(a, now) {
			frame.Set(a)
		}
	}
}

// Reset releases everything.
func (h *HoldTracker) Reset() {
	clear(h.until)
}
