package listview

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// wheelStep is how many lines one mouse wheel notch scrolls.
const wheelStep = 3

// endMarker remembers the content length the end-reached callback last
// fired for. The zero value is unset.
type endMarker struct {
	set    bool
	length int
}

func (e endMarker) matches(contentLength int) bool {
	return e.set && e.length == contentLength
}

// binding is the scroll listener attached while the list is mounted.
type binding struct {
	surface  Surface
	listener *Listener
	throttle *Throttle
}

// Model is an incrementally rendered list. It is a Bubble Tea sub-model:
// the host forwards messages to Update and embeds View.
type Model struct {
	source        DataSource
	renderers     Renderers
	renderHeader  func() string
	renderFooter  func() string
	pullToRefresh PullToRefresh

	pageSize        int
	initialListSize int
	endThreshold    int
	aheadDistance   int
	throttle        time.Duration

	onScroll     func(ScrollEvent) tea.Cmd
	onEndReached func() tea.Cmd

	keys   KeyMap
	logger *log.Logger

	// window is set in body-scroll mode; container is always present.
	window    *Window
	container *ViewportSurface
	binding   *binding

	state    WindowState
	metrics  ScrollMetrics
	marker   endMarker
	content  string
	rendered bool
	width    int

	endReachedCount int
}

// New builds a list from options. It renders the initial window right
// away; call Init to start listening for scroll events.
func New(opts ...Option) *Model {
	m := &Model{
		pageSize:        DefaultPageSize,
		initialListSize: DefaultInitialListSize,
		endThreshold:    DefaultOnEndReachedThreshold,
		aheadDistance:   DefaultScrollRenderAheadDistance,
		throttle:        DefaultScrollEventThrottle,
		keys:            DefaultKeyMap(),
		logger:          log.New(io.Discard),
		container:       newViewportSurface(),
		source:          Flat(nil),
	}
	for _, o := range opts {
		o(m)
	}
	m.state = NewWindowState(Inputs{Source: m.source, InitialListSize: m.initialListSize})
	m.rebuild()
	return m
}

// Init mounts the scroll listener.
func (m *Model) Init() tea.Cmd {
	m.Mount()
	return nil
}

// Mount attaches one throttled scroll handler to the active surface.
// Mounting twice is a no-op.
func (m *Model) Mount() {
	if m.binding != nil {
		return
	}
	surface := m.scrollContainer()
	t := NewThrottle(m.handleScroll, m.throttle)
	l := NewListener(t.Trigger)
	surface.AddListener(l)
	m.binding = &binding{surface: surface, listener: l, throttle: t}
	m.logger.Debug("mounted", "bodyScroll", m.window != nil)
}

// Unmount detaches the handler attached by Mount. A frame already in
// flight may still arrive; it is ignored.
func (m *Model) Unmount() {
	if m.binding == nil {
		return
	}
	m.binding.surface.RemoveListener(m.binding.listener)
	m.binding = nil
	m.logger.Debug("unmounted")
}

// Close unmounts the list.
func (m *Model) Close() { m.Unmount() }

// Mounted reports whether a scroll handler is attached.
func (m *Model) Mounted() bool { return m.binding != nil }

// scrollContainer returns the surface the list scrolls with.
func (m *Model) scrollContainer() Surface {
	if m.window != nil {
		return m.window
	}
	return m.container
}

// Update handles frame ticks and, in container mode, scroll input.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if !msg.t.pending {
			return m, nil
		}
		return m, msg.t.flush()

	case tea.KeyMsg:
		if m.window != nil {
			return m, nil
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if m.window != nil {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			return m, m.container.scroll(func(vp *viewport.Model) { vp.LineDown(wheelStep) })
		case tea.MouseButtonWheelUp:
			return m, m.container.scroll(func(vp *viewport.Model) { vp.LineUp(wheelStep) })
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	var fn func(vp *viewport.Model)
	switch {
	case key.Matches(msg, m.keys.Down):
		fn = func(vp *viewport.Model) { vp.LineDown(1) }
	case key.Matches(msg, m.keys.Up):
		fn = func(vp *viewport.Model) { vp.LineUp(1) }
	case key.Matches(msg, m.keys.PageDown):
		fn = func(vp *viewport.Model) { vp.ViewDown() }
	case key.Matches(msg, m.keys.PageUp):
		fn = func(vp *viewport.Model) { vp.ViewUp() }
	case key.Matches(msg, m.keys.HalfPageDown):
		fn = func(vp *viewport.Model) { vp.HalfViewDown() }
	case key.Matches(msg, m.keys.HalfPageUp):
		fn = func(vp *viewport.Model) { vp.HalfViewUp() }
	case key.Matches(msg, m.keys.Top):
		fn = func(vp *viewport.Model) { vp.GotoTop() }
	case key.Matches(msg, m.keys.Bottom):
		fn = func(vp *viewport.Model) { vp.GotoBottom() }
	default:
		return nil
	}
	return m.container.scroll(fn)
}

// View renders the list. In body-scroll mode this is the full content and
// the host crops it to its window.
func (m *Model) View() string {
	if m.window != nil {
		return m.content
	}
	return m.container.vp.View()
}

// SetSize resizes the list's viewport and re-renders.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.container.vp.Width = width
	m.container.vp.Height = height
	m.rebuild()
}

// Width returns the width set by SetSize.
func (m *Model) Width() int { return m.width }

// SetSource replaces the data source. A new source grows the window by
// one page. It reports whether the window state changed.
func (m *Model) SetSource(src DataSource) bool {
	m.source = src
	return m.derive()
}

// SetInitialListSize changes the configured initial size, which also
// counts as an input change.
func (m *Model) SetInitialListSize(n int) bool {
	m.initialListSize = n
	return m.derive()
}

func (m *Model) derive() bool {
	next, changed := Derive(m.state, Inputs{Source: m.source, InitialListSize: m.initialListSize}, m.pageSize)
	if !changed {
		return false
	}
	m.logger.Debug("inputs changed", "cursor", m.state.Cursor, "next", next.Cursor, "total", next.Total())
	m.state = next
	m.rebuild()
	return true
}

// Nudge schedules a scroll tick with no movement so the window and
// end-reached checks run after the host changed data or layout without
// the user scrolling.
func (m *Model) Nudge() tea.Cmd {
	if m.binding == nil {
		return nil
	}
	return m.binding.throttle.Trigger(ScrollEvent{Offset: m.sampleMetrics().Offset})
}

// Refresh re-renders the current window, e.g. after renderer output
// changed without a data change.
func (m *Model) Refresh() { m.rebuild() }

// rebuild renders header, windowed body and footer into the content
// container and hands it to the active surface.
func (m *Model) rebuild() {
	parts := make([]string, 0, 3)
	if m.renderHeader != nil {
		parts = append(parts, m.renderHeader())
	}
	parts = append(parts, Assemble(m.state, m.renderers))
	if m.renderFooter != nil {
		parts = append(parts, m.renderFooter())
	}
	content := Stack(parts...)
	if m.pullToRefresh != nil {
		content = m.pullToRefresh.Wrap(m.scrollContainer, content)
	}
	m.content = content
	m.rendered = true
	m.container.vp.SetContent(content)
}

// sampleMetrics reads the geometry of the active surface. It returns the
// zero reading while nothing is mounted in container mode.
func (m *Model) sampleMetrics() ScrollMetrics {
	if m.window != nil {
		contentLength := 0
		if m.rendered {
			contentLength = lineCount(m.content)
		}
		return ScrollMetrics{
			VisibleLength: m.window.Height(),
			ContentLength: contentLength,
			Offset:        m.window.Offset(),
		}
	}
	if m.binding == nil {
		return ScrollMetrics{}
	}
	return m.container.Metrics()
}

// handleScroll runs once per throttled frame.
func (m *Model) handleScroll(ev ScrollEvent) tea.Cmd {
	if m.binding == nil {
		return nil
	}
	m.metrics = m.sampleMetrics()

	var cmds []tea.Cmd
	handled, cmd := m.callOnEndReached()
	cmds = append(cmds, cmd)
	if !handled {
		m.renderMore()
	}

	if m.onEndReached != nil && m.metrics.DistanceFromEnd() > m.endThreshold {
		m.marker = endMarker{}
	}
	if m.onScroll != nil {
		cmds = append(cmds, m.onScroll(ev))
	}
	return tea.Batch(cmds...)
}

// callOnEndReached fires the end-reached callback once per approach to the
// end of fully rendered data.
func (m *Model) callOnEndReached() (bool, tea.Cmd) {
	if !m.state.Exhausted() ||
		m.metrics.DistanceFromEnd() >= m.endThreshold ||
		m.marker.matches(m.metrics.ContentLength) {
		return false, nil
	}
	m.marker = endMarker{set: true, length: m.metrics.ContentLength}
	m.endReachedCount++
	m.logger.Info("end reached", "total", m.state.Total(), "contentLength", m.metrics.ContentLength)
	if m.onEndReached == nil {
		return true, nil
	}
	return true, m.onEndReached()
}

// renderMore grows the window by a page when the scroll position is within
// the render-ahead distance of its end.
func (m *Model) renderMore() {
	if m.state.Exhausted() {
		return
	}
	if m.metrics.DistanceFromEnd() < m.aheadDistance {
		prev := m.state.Cursor
		m.state = m.state.grow(m.pageSize)
		m.logger.Debug("window grown", "from", prev, "to", m.state.Cursor, "total", m.state.Total())
		m.rebuild()
	}
}

// Cursor returns the number of rows eligible for rendering.
func (m *Model) Cursor() int { return m.state.Cursor }

// TotalCount returns the total row count of the current source.
func (m *Model) TotalCount() int { return m.state.Total() }

// Source returns the current data source.
func (m *Model) Source() DataSource { return m.state.Source() }

// Metrics returns the metrics sampled on the last scroll tick.
func (m *Model) Metrics() ScrollMetrics { return m.metrics }

// ContentHeight returns the rendered content height in lines.
func (m *Model) ContentHeight() int { return lineCount(m.content) }

// EndReachedCount returns how many times the end-reached callback fired.
func (m *Model) EndReachedCount() int { return m.endReachedCount }

// ScrollOffset returns the viewport's offset in container mode.
func (m *Model) ScrollOffset() int { return m.container.vp.YOffset }

// ScrollPercent returns the scroll position as 0..1 in container mode.
func (m *Model) ScrollPercent() float64 { return m.container.vp.ScrollPercent() }

// ShortHelp lists the scroll bindings.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Down, m.keys.Up, m.keys.PageDown, m.keys.PageUp, m.keys.Top, m.keys.Bottom}
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

