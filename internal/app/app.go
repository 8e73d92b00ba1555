package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Akashdeep-Patra/lazylist/internal/common"
	"github.com/Akashdeep-Patra/lazylist/internal/config"
	"github.com/Akashdeep-Patra/lazylist/internal/feed"
	"github.com/Akashdeep-Patra/lazylist/internal/listview"
	"github.com/Akashdeep-Patra/lazylist/internal/ui"
	"github.com/Akashdeep-Patra/lazylist/internal/ui/components"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Dialog tags.
const (
	tagFilter = "filter"
	tagOpen   = "open"
	tagReload = "reload"
)

// wheelStep is how many lines one wheel notch scrolls in body-scroll mode.
const wheelStep = 3

// Model is the top-level Bubbletea model: a feed-backed lazy list with a
// mode bar, a help line and a status bar.
type Model struct {
	svc    feed.Service
	open   func(source string) (feed.Service, error)
	cfg    *config.Config
	styles ui.Styles
	keys   KeyMap
	scroll listview.KeyMap
	logger *log.Logger

	loader  *feed.Loader
	list    *listview.Model
	window  *listview.Window // body-scroll mode only
	pull    *components.PullToRefresh
	rows    *rowRenderer
	spinner spinner.Model
	help    help.Model

	mode       common.Mode
	filter     string
	matches    int
	refreshing bool

	width     int
	height    int
	showHelp  bool
	statusMsg string
	statusErr bool
	statusExp time.Time
	dialog    *components.Dialog
}

// pageMsg carries the result of a feed fetch.
type pageMsg struct {
	svc  feed.Service
	req  feed.Request
	page feed.Page
	err  error
}

// Option configures the application model.
type Option func(*Model)

// WithOpener lets the user switch sources: fn turns the text typed into
// the open dialog into a service.
func WithOpener(fn func(source string) (feed.Service, error)) Option {
	return func(m *Model) { m.open = fn }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMode sets the initial layout.
func WithMode(mode common.Mode) Option {
	return func(m *Model) { m.mode = mode }
}

// New creates a new application model.
func New(svc feed.Service, cfg *config.Config, opts ...Option) *Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))
	kb := config.DefaultKeyBindings()
	m := &Model{
		svc:    svc,
		cfg:    cfg,
		styles: styles,
		keys:   NewKeyMap(kb),
		scroll: listKeyMap(kb),
		logger: log.New(io.Discard),
		loader: feed.NewLoader(cfg.FetchSize),
		pull:   components.NewPullToRefresh(styles),
		help:   help.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.Spinner),
		),
	}
	for _, o := range opts {
		o(m)
	}
	m.rows = &rowRenderer{styles: styles, width: m.listWidth}

	listOpts := []listview.Option{
		listview.WithRenderers(m.rows.renderers()),
		listview.WithHeader(m.renderHeader),
		listview.WithFooter(m.renderFooter),
		listview.WithPageSize(cfg.PageSize),
		listview.WithInitialListSize(cfg.InitialListSize),
		listview.WithOnEndReachedThreshold(cfg.OnEndReachedThreshold),
		listview.WithScrollRenderAheadDistance(cfg.ScrollRenderAheadDistance),
		listview.WithScrollEventThrottle(cfg.ScrollEventThrottle),
		listview.WithOnEndReached(m.loadMore),
		listview.WithPullToRefresh(m.pull),
		listview.WithKeyMap(m.scroll),
		listview.WithLogger(m.logger.WithPrefix("list")),
	}
	if cfg.UseBodyScroll {
		m.window = listview.NewWindow(0)
		listOpts = append(listOpts, listview.WithBodyScroll(m.window))
	}
	m.list = listview.New(listOpts...)
	return m
}

// Init mounts the list and requests the first page.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.list.Init(), m.loadMore())
}

// Update processes messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, m.list.Nudge()

	case tea.KeyMsg:
		// Dialog has exclusive keyboard input when visible.
		if m.dialog != nil && m.dialog.Visible() {
			d, cmd := m.dialog.Update(msg)
			m.dialog = &d
			return m, cmd
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case pageMsg:
		return m, m.applyPage(msg)

	case spinner.TickMsg:
		// Let the tick loop die once nothing is loading.
		if !m.loader.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.list.Refresh()
		return m, cmd

	case common.RefreshMsg:
		return m, m.refresh()

	case common.ErrMsg:
		m.setStatus(msg.Err.Error(), true, 5*time.Second)
		return m, nil

	case common.InfoMsg:
		m.setStatus(msg.Text, false, 3*time.Second)
		return m, nil

	case common.SwitchModeMsg:
		return m, m.setMode(msg.Mode)

	case common.ToggleHelpMsg:
		m.showHelp = !m.showHelp
		return m, nil

	case components.DialogResult:
		m.dialog = nil
		return m, m.handleDialog(msg)
	}

	// Scroll frames and anything else belong to the list.
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.list.Close()
		m.pull.Detach()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil
	case key.Matches(msg, m.keys.Back):
		if m.showHelp {
			m.showHelp = false
			return nil
		}
		if m.filter != "" {
			m.filter = ""
			m.syncSource()
			return m.list.Nudge()
		}
		return nil
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	case key.Matches(msg, m.keys.Reload):
		d := components.NewConfirmDialog(m.styles, "Reload",
			fmt.Sprintf("Drop %d loaded records and load %s from the start?", len(m.loader.Records()), m.svc.Name()),
			tagReload)
		m.dialog = &d
		return nil
	case key.Matches(msg, m.keys.LoadMore):
		return m.loadMore()
	case key.Matches(msg, m.keys.Filter):
		d := components.NewInputDialog(m.styles, "Filter loaded records", "fuzzy query, empty to clear", tagFilter)
		m.dialog = &d
		return nil
	case key.Matches(msg, m.keys.Open):
		if m.open == nil {
			return common.CmdInfo("opening sources is not available")
		}
		d := components.NewInputDialog(m.styles, "Open source", "path/to/file or !command", tagOpen)
		d.Message = "Prefix with ! to read a command's output."
		d.Validate = func(v string) error {
			if v == "" || v == "!" {
				return errors.New("enter a file path or !command")
			}
			return nil
		}
		m.dialog = &d
		return nil
	case key.Matches(msg, m.keys.ModeFlat):
		return m.setMode(common.ModeFlat)
	case key.Matches(msg, m.keys.ModeSections):
		return m.setMode(common.ModeSections)
	case key.Matches(msg, m.keys.NextMode):
		return m.setMode((m.mode + 1) % common.Mode(len(common.AllModes)))
	}

	if m.showHelp {
		return nil
	}
	if m.window != nil {
		return m.scrollWindow(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

// scrollWindow moves the body-scroll window for list navigation keys.
func (m *Model) scrollWindow(msg tea.KeyMsg) tea.Cmd {
	h := m.window.Height()
	maxOffset := max(m.list.ContentHeight()-h, 0)
	switch {
	case key.Matches(msg, m.scroll.Down):
		return m.window.ScrollBy(1, maxOffset)
	case key.Matches(msg, m.scroll.Up):
		return m.window.ScrollBy(-1, maxOffset)
	case key.Matches(msg, m.scroll.PageDown):
		return m.window.ScrollBy(h, maxOffset)
	case key.Matches(msg, m.scroll.PageUp):
		return m.window.ScrollBy(-h, maxOffset)
	case key.Matches(msg, m.scroll.HalfPageDown):
		return m.window.ScrollBy(max(h/2, 1), maxOffset)
	case key.Matches(msg, m.scroll.HalfPageUp):
		return m.window.ScrollBy(-max(h/2, 1), maxOffset)
	case key.Matches(msg, m.scroll.Top):
		return m.window.ScrollTo(0, maxOffset)
	case key.Matches(msg, m.scroll.Bottom):
		return m.window.ScrollTo(maxOffset, maxOffset)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp || (m.dialog != nil && m.dialog.Visible()) {
		return nil
	}
	if m.window == nil {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return cmd
	}
	maxOffset := max(m.list.ContentHeight()-m.window.Height(), 0)
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return m.window.ScrollBy(wheelStep, maxOffset)
	case tea.MouseButtonWheelUp:
		return m.window.ScrollBy(-wheelStep, maxOffset)
	}
	return nil
}

func (m *Model) handleDialog(res components.DialogResult) tea.Cmd {
	if !res.Confirmed {
		return nil
	}
	switch res.Tag {
	case tagFilter:
		m.filter = res.Value
		m.syncSource()
		cmds := []tea.Cmd{m.list.Nudge()}
		if m.filter != "" {
			cmds = append(cmds, common.CmdInfo(fmt.Sprintf("%d matches for %q", m.matches, m.filter)))
		}
		return tea.Batch(cmds...)
	case tagOpen:
		svc, err := m.open(res.Value)
		if err != nil {
			return common.CmdErr(err)
		}
		m.logger.Info("source switched", "from", m.svc.Name(), "to", svc.Name())
		m.svc = svc
		m.filter = ""
		m.loader.Reset()
		m.syncSource()
		return tea.Batch(m.loadMore(), common.CmdInfo("opened "+svc.Name()))
	case tagReload:
		if r, ok := m.svc.(feed.Resetter); ok {
			r.Reset()
		}
		m.loader.Reset()
		m.syncSource()
		return m.loadMore()
	}
	return nil
}

// loadMore requests the next feed page. It is the list's end-reached
// callback.
func (m *Model) loadMore() tea.Cmd {
	req, err := m.loader.Begin()
	if err != nil {
		m.logger.Debug("load more skipped", "reason", err)
		return nil
	}
	m.list.Refresh()
	return tea.Batch(m.fetch(req), m.spinner.Tick)
}

// refresh reloads everything loaded so far.
func (m *Model) refresh() tea.Cmd {
	if r, ok := m.svc.(feed.Resetter); ok {
		r.Reset()
	}
	req := m.loader.Restart()
	m.refreshing = true
	m.pull.SetRefreshing(true)
	m.list.Refresh()
	m.logger.Info("refresh", "source", m.svc.Name(), "limit", req.Limit)
	return tea.Batch(m.fetch(req), m.spinner.Tick)
}

// fetch runs the request off the UI loop.
func (m *Model) fetch(req feed.Request) tea.Cmd {
	svc := m.svc
	logger := m.logger
	return func() tea.Msg {
		start := time.Now()
		page, err := svc.Fetch(req.Offset, req.Limit)
		logger.Debug("fetched",
			"source", svc.Name(), "offset", req.Offset, "limit", req.Limit,
			"records", len(page.Records), "done", page.Done, "took", time.Since(start), "err", err)
		return pageMsg{svc: svc, req: req, page: page, err: err}
	}
}

func (m *Model) applyPage(msg pageMsg) tea.Cmd {
	// Pages from a source the user has since replaced are dropped.
	if msg.svc != m.svc {
		return nil
	}
	changed, err := m.loader.Apply(msg.req, msg.page, msg.err)
	if m.refreshing && !m.loader.Loading() {
		m.refreshing = false
		m.pull.SetRefreshing(false)
	}
	if err != nil {
		m.logger.Error("fetch failed", "source", m.svc.Name(), "err", err)
		m.list.Refresh()
		return common.CmdErr(err)
	}
	if changed {
		m.syncSource()
	} else {
		m.list.Refresh()
	}
	return m.list.Nudge()
}

// syncSource hands the loaded, filtered records to the list.
func (m *Model) syncSource() {
	records := filterRecords(m.loader.Records(), m.filter)
	m.matches = len(records)
	src := buildSource(records, m.mode)
	m.rows.setCategories(src.Categories())
	if !m.list.SetSource(src) {
		m.list.Refresh()
	}
}

func (m *Model) setMode(mode common.Mode) tea.Cmd {
	if mode == m.mode {
		return nil
	}
	m.mode = mode
	m.syncSource()
	return m.list.Nudge()
}

func (m *Model) setStatus(text string, isErr bool, ttl time.Duration) {
	m.statusMsg = text
	m.statusErr = isErr
	m.statusExp = time.Now().Add(ttl)
}

func (m *Model) listHeight() int {
	// height - tab bar - help line(1) - status bar(1)
	return max(m.height-components.TabBarRows-2, 1)
}

func (m *Model) listWidth() int {
	// One column is kept for the scrollbar.
	return max(m.width-1, 1)
}

func (m *Model) resize() {
	m.help.Width = max(m.width-m.styles.HelpBar.GetHorizontalFrameSize(), 0)
	m.list.SetSize(m.listWidth(), m.listHeight())
	if m.window != nil {
		m.window.SetHeight(m.listHeight())
	}
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(m.svc.Name())
	if m.filter == "" {
		return title
	}
	return title + m.styles.Muted.Render(fmt.Sprintf("  /%s  %d of %d", m.filter, m.matches, len(m.loader.Records())))
}

func (m *Model) renderFooter() string {
	switch {
	case m.loader.Loading():
		return m.spinner.View() + m.styles.Muted.Render(" loading more…")
	case m.loader.Done():
		return m.styles.Muted.Render("· end of feed ·")
	default:
		return m.styles.Muted.Render("↓ more on scroll")
	}
}

// View renders the entire UI. This is a pure function with no I/O.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showHelp {
		full := m.keys.FullHelp()
		sections := map[string][]components.HelpEntry{
			"Navigation": components.EntriesFromBindings(m.list.ShortHelp()...),
			"Feed":       components.EntriesFromBindings(append(full[0], full[1]...)...),
			"General":    components.EntriesFromBindings(full[2]...),
		}
		return components.RenderHelp(m.styles, "Keyboard Shortcuts", sections, m.width, m.height)
	}

	tabBar := components.RenderTabs(m.styles, m.tabInfos(), m.svc.Name(), m.width)

	h := m.listHeight()
	body, metrics := m.listView(h)
	content := lipgloss.NewStyle().Width(m.listWidth()).MaxWidth(m.listWidth()).Height(h).MaxHeight(h).Render(body)
	if bar := components.RenderScrollbar(m.styles, h, metrics); bar != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, bar)
	}

	helpLine := m.styles.HelpBar.Render(m.help.View(m.keys))
	statusBar := components.RenderStatusBar(m.styles, m.statusData(), m.width)

	screen := lipgloss.JoinVertical(lipgloss.Left, tabBar, content, helpLine, statusBar)

	if m.dialog != nil && m.dialog.Visible() {
		screen = ui.PlaceCentre(m.width, m.height, m.dialog.View())
	}
	return screen
}

// listView returns the visible part of the list and its scroll metrics.
// In body-scroll mode the app crops the list's full content itself.
func (m *Model) listView(h int) (string, listview.ScrollMetrics) {
	metrics := listview.ScrollMetrics{VisibleLength: h, ContentLength: m.list.ContentHeight()}
	if m.window != nil {
		metrics.Offset = m.window.Offset()
		return ui.Crop(m.list.View(), metrics.Offset, h), metrics
	}
	metrics.Offset = m.list.ScrollOffset()
	return m.list.View(), metrics
}

func (m *Model) tabInfos() []components.TabInfo {
	tabs := make([]components.TabInfo, len(common.AllModes))
	for i, meta := range common.AllModes {
		tabs[i] = components.TabInfo{
			Name:     meta.Name,
			Icon:     meta.Icon,
			Shortcut: meta.Shortcut,
			Active:   meta.ID == m.mode,
		}
	}
	return tabs
}

func (m *Model) statusData() components.StatusBarData {
	data := components.StatusBarData{
		Source:     m.svc.Name(),
		Cursor:     m.list.Cursor(),
		Total:      m.list.TotalCount(),
		Loaded:     len(m.loader.Records()),
		Done:       m.loader.Done(),
		Loading:    m.loader.Loading(),
		Spinner:    m.spinner.View(),
		EndReached: m.list.EndReachedCount(),
		Sectioned:  m.mode == common.ModeSections,
	}
	if m.statusMsg != "" && time.Now().Before(m.statusExp) {
		data.Message = m.statusMsg
		data.IsError = m.statusErr
	}
	return data
}
