package listview

import (
	"slices"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ScrollMetrics describes a scroll surface along the vertical axis, in
// terminal lines.
type ScrollMetrics struct {
	VisibleLength int
	ContentLength int
	Offset        int
}

// DistanceFromEnd is how far the bottom of the visible area is from the
// end of the content.
func (m ScrollMetrics) DistanceFromEnd() int {
	return m.ContentLength - m.VisibleLength - m.Offset
}

// ScrollEvent is a raw scroll notification from a surface.
type ScrollEvent struct {
	Offset int
	Delta  int
}

// Surface is something that scrolls and notifies listeners when it does.
type Surface interface {
	AddListener(l *Listener)
	RemoveListener(l *Listener)
}

// Listener receives scroll events. Surfaces track listeners by pointer, so
// detaching requires the same *Listener that was attached.
type Listener struct {
	fn func(ScrollEvent) tea.Cmd
}

// NewListener wraps fn.
func NewListener(fn func(ScrollEvent) tea.Cmd) *Listener {
	return &Listener{fn: fn}
}

// Notify delivers ev to the listener.
func (l *Listener) Notify(ev ScrollEvent) tea.Cmd {
	if l == nil || l.fn == nil {
		return nil
	}
	return l.fn(ev)
}

// listeners is the shared registration list used by both surfaces.
type listeners []*Listener

func (ls *listeners) add(l *Listener) {
	if l == nil || slices.Contains(*ls, l) {
		return
	}
	*ls = append(*ls, l)
}

func (ls *listeners) remove(l *Listener) {
	if i := slices.Index(*ls, l); i >= 0 {
		*ls = slices.Delete(*ls, i, i+1)
	}
}

func (ls listeners) dispatch(ev ScrollEvent) tea.Cmd {
	var cmds []tea.Cmd
	for _, l := range slices.Clone(ls) {
		if cmd := l.Notify(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Window is the screen-wide scroll surface owned by the host. Lists in
// body-scroll mode read its height and offset and listen to its events.
type Window struct {
	height int
	offset int

	// ScrollingElement, when set, reports the live offset of whatever is
	// actually scrolling. The window's own offset is used otherwise.
	ScrollingElement func() int

	subs listeners
}

// NewWindow returns a window surface of the given height.
func NewWindow(height int) *Window {
	return &Window{height: height}
}

// AddListener implements Surface.
func (w *Window) AddListener(l *Listener) { w.subs.add(l) }

// RemoveListener implements Surface.
func (w *Window) RemoveListener(l *Listener) { w.subs.remove(l) }

// Listeners returns the number of attached listeners.
func (w *Window) Listeners() int { return len(w.subs) }

// Height returns the visible height.
func (w *Window) Height() int { return w.height }

// SetHeight resizes the window.
func (w *Window) SetHeight(h int) { w.height = max(h, 0) }

// Offset returns the current scroll position.
func (w *Window) Offset() int {
	if w.ScrollingElement != nil {
		return w.ScrollingElement()
	}
	return w.offset
}

// ScrollTo moves to offset, clamped to [0, maxOffset], and notifies
// listeners. Attempts to scroll past an edge still notify.
func (w *Window) ScrollTo(offset, maxOffset int) tea.Cmd {
	offset = max(min(offset, maxOffset), 0)
	delta := offset - w.offset
	w.offset = offset
	return w.subs.dispatch(ScrollEvent{Offset: offset, Delta: delta})
}

// ScrollBy moves the offset by delta lines.
func (w *Window) ScrollBy(delta, maxOffset int) tea.Cmd {
	return w.ScrollTo(w.offset+delta, maxOffset)
}

// ViewportSurface is a list's own scroll container backed by a bubbles
// viewport.
type ViewportSurface struct {
	vp   viewport.Model
	subs listeners
}

func newViewportSurface() *ViewportSurface {
	return &ViewportSurface{vp: viewport.New(0, 0)}
}

// AddListener implements Surface.
func (s *ViewportSurface) AddListener(l *Listener) { s.subs.add(l) }

// RemoveListener implements Surface.
func (s *ViewportSurface) RemoveListener(l *Listener) { s.subs.remove(l) }

// Listeners returns the number of attached listeners.
func (s *ViewportSurface) Listeners() int { return len(s.subs) }

// Metrics reads the viewport geometry.
func (s *ViewportSurface) Metrics() ScrollMetrics {
	return ScrollMetrics{
		VisibleLength: s.vp.Height,
		ContentLength: s.vp.TotalLineCount(),
		Offset:        s.vp.YOffset,
	}
}

// scroll applies fn to the viewport and notifies listeners, including
// when the viewport was already at an edge.
func (s *ViewportSurface) scroll(fn func(vp *viewport.Model)) tea.Cmd {
	before := s.vp.YOffset
	fn(&s.vp)
	return s.subs.dispatch(ScrollEvent{Offset: s.vp.YOffset, Delta: s.vp.YOffset - before})
}
