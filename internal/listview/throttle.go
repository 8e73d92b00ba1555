package listview

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFrameInterval approximates one display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// frameMsg is delivered when a throttle's frame elapses.
type frameMsg struct {
	t *Throttle
}

// Throttle coalesces events so fn runs at most once per interval, with the
// latest event seen during that interval. The frame is a tea.Tick, so fn
// always runs on the program's update loop, never concurrently.
type Throttle struct {
	fn       func(ScrollEvent) tea.Cmd
	interval time.Duration

	pending bool
	latest  ScrollEvent
}

// NewThrottle wraps fn. A non-positive interval uses DefaultFrameInterval.
func NewThrottle(fn func(ScrollEvent) tea.Cmd, interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Throttle{fn: fn, interval: interval}
}

// Trigger records ev and schedules a frame unless one is already pending.
func (t *Throttle) Trigger(ev ScrollEvent) tea.Cmd {
	t.latest = ev
	if t.pending {
		return nil
	}
	t.pending = true
	return tea.Tick(t.interval, func(time.Time) tea.Msg {
		return frameMsg{t: t}
	})
}

// Pending reports whether a frame is scheduled.
func (t *Throttle) Pending() bool { return t.pending }

// flush runs fn with the latest event.
func (t *Throttle) flush() tea.Cmd {
	t.pending = false
	return t.fn(t.latest)
}
