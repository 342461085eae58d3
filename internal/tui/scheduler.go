package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/overlaykit/internal/overlay"
)

// timerFiredMsg is delivered by the tick queued in Scheduler.After.
type timerFiredMsg struct{ id uint64 }

// Scheduler implements overlay.Scheduler on top of tea.Tick. Callbacks run
// inside Update when the matching timerFiredMsg arrives, so bindings never
// see a second goroutine.
type Scheduler struct {
	next    uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[uint64]func())}
}

// After registers fn and queues the tick that will fire it. The tick only
// reaches the program once Flush is returned from Update.
func (s *Scheduler) After(d time.Duration, fn func()) overlay.Timer {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return schedulerTimer{s: s, id: id}
}

// Fire runs the callback for id unless it was stopped. It reports whether a
// callback ran.
func (s *Scheduler) Fire(id uint64) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// Flush hands every tick queued since the last Flush to the program.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return batchCmd(cmds)
}

// Pending returns the number of timers that have neither fired nor stopped.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

type schedulerTimer struct {
	s  *Scheduler
	id uint64
}

func (t schedulerTimer) Stop() bool {
	if _, ok := t.s.pending[t.id]; !ok {
		return false
	}
	delete(t.s.pending, t.id)
	return true
}

func batchCmd(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}
