package eventloop

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// Manual is a virtual-time scheduler for tests. Timers fire only from Advance,
// on the calling goroutine, in deadline order (ties in creation order).
// Do runs its function immediately and reports a panic as ErrTaskPanicked.
type Manual struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

// NewManual returns a scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{owner: m, at: m.now.Add(d), seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) Do(_ context.Context, f func()) error {
	return runRecovered(f, slog.New(slog.DiscardHandler))
}

// Advance moves the clock forward by d, firing every timer that comes due.
// Timers scheduled by a firing callback also fire if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		next := m.nextDue(end)
		if next == nil {
			break
		}
		m.remove(next)
		m.now = next.at
		next.f()
	}
	m.now = end
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	return len(m.timers)
}

// NextDeadline returns the earliest pending deadline.
func (m *Manual) NextDeadline() (time.Time, bool) {
	if len(m.timers) == 0 {
		return time.Time{}, false
	}
	m.sort()
	return m.timers[0].at, true
}

func (m *Manual) nextDue(end time.Time) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	m.sort()
	if m.timers[0].at.After(end) {
		return nil
	}
	return m.timers[0]
}

func (m *Manual) sort() {
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at.Equal(m.timers[j].at) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at.Before(m.timers[j].at)
	})
}

func (m *Manual) remove(t *manualTimer) bool {
	for i, candidate := range m.timers {
		if candidate == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	owner *Manual
	at    time.Time
	seq   uint64
	f     func()
}

func (t *manualTimer) Stop() bool {
	return t.owner.remove(t)
}
