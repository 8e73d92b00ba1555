package listview

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Defaults for the window and scroll tuning knobs.
const (
	DefaultPageSize                  = 10
	DefaultInitialListSize           = 10
	DefaultOnEndReachedThreshold     = 10
	DefaultScrollRenderAheadDistance = 1000
	DefaultScrollEventThrottle       = 50 * time.Millisecond
)

// PullToRefresh wraps the list content. It receives an accessor for the
// surface currently scrolling the list so it can watch its position.
type PullToRefresh interface {
	Wrap(scrollContainer func() Surface, content string) string
}

// Option configures a Model.
type Option func(*Model)

// WithSource sets the initial data source.
func WithSource(src DataSource) Option {
	return func(m *Model) { m.source = src }
}

// WithRenderers sets all render callbacks at once.
func WithRenderers(r Renderers) Option {
	return func(m *Model) { m.renderers = r }
}

// WithRenderItem sets the item renderer.
func WithRenderItem(fn func(item Item, index int) string) Option {
	return func(m *Model) { m.renderers.RenderItem = fn }
}

// WithRenderSection sets the section header renderer.
func WithRenderSection(fn func(category string) string) Option {
	return func(m *Model) { m.renderers.RenderSection = fn }
}

// WithRenderSectionWrapper sets the per-section container.
func WithRenderSectionWrapper(fn func(category string, index int) Container) Option {
	return func(m *Model) { m.renderers.RenderSectionWrapper = fn }
}

// WithRenderBodyComponent sets the container that holds the windowed rows.
func WithRenderBodyComponent(fn func() Container) Option {
	return func(m *Model) { m.renderers.RenderBodyComponent = fn }
}

// WithHeader renders fn once above the windowed rows.
func WithHeader(fn func() string) Option {
	return func(m *Model) { m.renderHeader = fn }
}

// WithFooter renders fn once below the windowed rows.
func WithFooter(fn func() string) Option {
	return func(m *Model) { m.renderFooter = fn }
}

// WithPageSize sets how many rows the window grows by.
func WithPageSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.pageSize = n
		}
	}
}

// WithInitialListSize sets the first window size.
func WithInitialListSize(n int) Option {
	return func(m *Model) {
		if n >= 0 {
			m.initialListSize = n
		}
	}
}

// WithOnEndReachedThreshold sets the distance from the end, in lines,
// below which OnEndReached may fire.
func WithOnEndReachedThreshold(n int) Option {
	return func(m *Model) { m.endThreshold = n }
}

// WithScrollRenderAheadDistance sets the distance from the end, in lines,
// below which the window grows.
func WithScrollRenderAheadDistance(n int) Option {
	return func(m *Model) { m.aheadDistance = n }
}

// WithScrollEventThrottle sets the minimum interval between scroll ticks.
func WithScrollEventThrottle(d time.Duration) Option {
	return func(m *Model) { m.throttle = d }
}

// WithBodyScroll makes the list follow the host's window surface instead
// of its own viewport.
func WithBodyScroll(w *Window) Option {
	return func(m *Model) { m.window = w }
}

// WithOnScroll forwards every handled scroll tick to fn.
func WithOnScroll(fn func(ScrollEvent) tea.Cmd) Option {
	return func(m *Model) { m.onScroll = fn }
}

// WithOnEndReached calls fn when the user nears the end of all data.
func WithOnEndReached(fn func() tea.Cmd) Option {
	return func(m *Model) { m.onEndReached = fn }
}

// WithPullToRefresh wraps the content with p.
func WithPullToRefresh(p PullToRefresh) Option {
	return func(m *Model) { m.pullToRefresh = p }
}

// WithKeyMap replaces the scroll key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}
