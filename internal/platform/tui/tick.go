// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent to advance the simulation clock.
type FrameMsg time.Time

// maxFrameGap caps how much virtual time a single message may advance, so a
// suspended terminal does not fast-forward the game.
const maxFrameGap = 250 * time.Millisecond

// tickCmd returns a Bubble Tea command that sends a FrameMsg after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// frameDelta returns the time elapsed between two frame messages.
// The first frame, and any gap outside [0, maxFrameGap], counts as fallback.
func frameDelta(last, now time.Time, fallback time.Duration) time.Duration {
	if last.IsZero() {
		return fallback
	}
	dt := now.Sub(last)
	if dt < 0 || dt > maxFrameGap {
		return fallback
	}
	return dt
}
