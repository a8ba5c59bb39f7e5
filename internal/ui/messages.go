// Package ui provides the Bubble Tea render layer for the video feed. It
// owns the terminal, forwards user gestures and visibility changes into the
// playback coordinator, and asks the feed controller for more pages as the
// user approaches the end.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg advances playback position rendering.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// noticeExpiredMsg dismisses a transient notice. The sequence number keeps
// an old timer from clearing a newer notice.
type noticeExpiredMsg struct {
	seq int
}

func expireNotice(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
