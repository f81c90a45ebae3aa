// Package tui provides the Bubble Tea integration for the runner.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/clayrun/internal/core"
)

// FrameMsg is delivered when a requested frame is due.
type FrameMsg struct {
	ID core.FrameID
}

// TickScheduler implements core.Scheduler on top of tea.Tick. Requests are
// queued as commands; the model returns Cmd() from Update and calls Fire
// when the FrameMsg arrives. Cancelled frames still deliver their message,
// which Fire then ignores.
type TickScheduler struct {
	interval time.Duration
	next     core.FrameID
	pending  map[core.FrameID]func()
	outbox   []tea.Cmd
}

// NewTickScheduler creates a scheduler that delivers frames at tickRate per second.
func NewTickScheduler(tickRate int) *TickScheduler {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &TickScheduler{
		interval: time.Second / time.Duration(tickRate),
		pending:  make(map[core.FrameID]func()),
	}
}

// RequestFrame queues fn for the next tick.
func (s *TickScheduler) RequestFrame(fn func()) core.FrameID {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.outbox = append(s.outbox, tea.Tick(s.interval, func(time.Time) tea.Msg {
		return FrameMsg{ID: id}
	}))
	return id
}

// CancelFrame drops a pending request.
func (s *TickScheduler) CancelFrame(id core.FrameID) {
	delete(s.pending, id)
}

// Fire runs the request for id and reports whether one was pending.
func (s *TickScheduler) Fire(id core.FrameID) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// Pending returns the number of live requests.
func (s *TickScheduler) Pending() int {
	return len(s.pending)
}

// Cmd drains the queued tick commands. Returns nil when nothing is queued.
func (s *TickScheduler) Cmd() tea.Cmd {
	if len(s.outbox) == 0 {
		return nil
	}
	cmds := s.outbox
	s.outbox = nil
	return tea.Batch(cmds...)
}
