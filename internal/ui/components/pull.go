package components

import (
	"github.com/Akashdeep-Patra/lazylist/internal/common"
	"github.com/Akashdeep-Patra/lazylist/internal/listview"
	"github.com/Akashdeep-Patra/lazylist/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// PullToRefresh puts an indicator row above a list and requests a refresh
// when the user keeps scrolling up after reaching the top.
//
// It listens to whichever surface the list is scrolling, so it works in
// both container and body-scroll modes.
type PullToRefresh struct {
	styles     ui.Styles
	listener   *listview.Listener
	surface    listview.Surface
	armed      bool
	refreshing bool
}

// Compile-time check.
var _ listview.PullToRefresh = (*PullToRefresh)(nil)

// NewPullToRefresh creates an indicator using styles.
func NewPullToRefresh(styles ui.Styles) *PullToRefresh {
	p := &PullToRefresh{styles: styles}
	p.listener = listview.NewListener(p.onScroll)
	return p
}

// Wrap prepends the indicator to content and makes sure the indicator is
// listening to the current scroll surface.
func (p *PullToRefresh) Wrap(scrollContainer func() listview.Surface, content string) string {
	if s := scrollContainer(); s != p.surface {
		p.Detach()
		if s != nil {
			s.AddListener(p.listener)
		}
		p.surface = s
	}
	return p.indicator() + "\n" + content
}

// Detach stops listening to the current surface.
func (p *PullToRefresh) Detach() {
	if p.surface != nil {
		p.surface.RemoveListener(p.listener)
		p.surface = nil
	}
	p.armed = false
}

// SetRefreshing switches the indicator to its busy state.
func (p *PullToRefresh) SetRefreshing(b bool) { p.refreshing = b }

// Refreshing reports whether a refresh is in progress.
func (p *PullToRefresh) Refreshing() bool { return p.refreshing }

// onScroll arms when the surface settles at the top and fires when a
// further scroll leaves it there.
func (p *PullToRefresh) onScroll(ev listview.ScrollEvent) tea.Cmd {
	if ev.Offset != 0 || ev.Delta > 0 {
		p.armed = false
		return nil
	}
	if !p.armed || ev.Delta < 0 || p.refreshing {
		p.armed = true
		return nil
	}
	p.armed = false
	p.refreshing = true
	return common.CmdRefresh
}

func (p *PullToRefresh) indicator() string {
	if p.refreshing {
		return p.styles.PullArmed.Render("↻ refreshing…")
	}
	return p.styles.PullIdle.Render("↑ scroll up to refresh")
}
