// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, audio and score keeping.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameTime returns the seconds elapsed between two ticks. The first tick of
// a run has no predecessor and gets one nominal frame. Later deltas are passed
// through as measured, even when the clock stalled; the game clamps them.
func frameTime(last, now time.Time, tickRate int) float64 {
	if last.IsZero() {
		if tickRate <= 0 {
			tickRate = 60
		}
		return 1 / float64(tickRate)
	}
	return now.Sub(last).Seconds()
}
