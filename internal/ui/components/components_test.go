package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/Akashdeep-Patra/lazylist/internal/common"
	"github.com/Akashdeep-Patra/lazylist/internal/listview"
	"github.com/Akashdeep-Patra/lazylist/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderScrollbar(t *testing.T) {
	s := ui.DefaultStyles()
	assert.Empty(t, RenderScrollbar(s, 10, listview.ScrollMetrics{VisibleLength: 10, ContentLength: 5}))

	bar := RenderScrollbar(s, 10, listview.ScrollMetrics{VisibleLength: 10, ContentLength: 40, Offset: 30})
	rows := strings.Split(bar, "\n")
	require.Len(t, rows, 10)
	assert.Contains(t, rows[9], "█", "thumb sits at the bottom when scrolled to the end")
	assert.Contains(t, rows[0], "░")
}

func TestRenderStatusBar(t *testing.T) {
	s := ui.DefaultStyles()
	bar := RenderStatusBar(s, StatusBarData{Source: "feed.txt", Cursor: 20, Total: 50, Loaded: 50, EndReached: 2}, 80)
	assert.Contains(t, bar, "feed.txt")
	assert.Contains(t, bar, "20/50")
	assert.Contains(t, bar, "50 loaded")
	assert.Contains(t, bar, "⚑ 2")
	assert.Contains(t, bar, "flat")
	assert.Equal(t, 80, lipgloss.Width(bar))

	bar = RenderStatusBar(s, StatusBarData{Cursor: 5, Total: 5, Done: true, Message: "boom", IsError: true}, 80)
	assert.Contains(t, bar, "boom")
	assert.NotContains(t, bar, "flat")
}

func TestEntriesFromBindings(t *testing.T) {
	on := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "do x"))
	off := key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "do y"), key.WithDisabled())
	assert.Equal(t, []HelpEntry{{Key: "x", Desc: "do x"}}, EntriesFromBindings(on, off))
}

func TestRenderHelp(t *testing.T) {
	out := RenderHelp(ui.DefaultStyles(), "Keys", map[string][]HelpEntry{
		"General": {{Key: "q", Desc: "Quit"}},
		"Unknown": {{Key: "z", Desc: "never shown"}},
	}, 80, 24)
	assert.Contains(t, out, "Quit")
	assert.NotContains(t, out, "never shown")
}

func TestRenderTabs(t *testing.T) {
	tabs := []TabInfo{{Name: "List", Icon: "≡", Shortcut: "1", Active: true}, {Name: "Sections", Icon: "§", Shortcut: "2"}}
	out := RenderTabs(ui.DefaultStyles(), tabs, "feed.txt", 60)
	rows := strings.Split(out, "\n")
	require.Len(t, rows, TabBarRows)
	assert.Contains(t, rows[0], "Sections")
	assert.Contains(t, rows[0], "feed.txt")
	assert.Contains(t, rows[1], "━")
}

func TestDialog_InputValidates(t *testing.T) {
	d := NewInputDialog(ui.DefaultStyles(), "Open", "path", "open")
	d.Validate = func(v string) error {
		if v == "" {
			return errors.New("required")
		}
		return nil
	}

	d, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, d.Visible())
	assert.Contains(t, d.View(), "required")

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.txt")})
	d, cmd = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, d.Visible())
	assert.Equal(t, DialogResult{Confirmed: true, Value: "a.txt", Tag: "open"}, cmd())
}

func TestDialog_Confirm(t *testing.T) {
	d := NewConfirmDialog(ui.DefaultStyles(), "Reload", "sure?", "reload")
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, DialogResult{Confirmed: false, Tag: "reload"}, cmd())

	d = NewConfirmDialog(ui.DefaultStyles(), "Reload", "sure?", "reload")
	_, cmd = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Equal(t, DialogResult{Confirmed: true, Tag: "reload"}, cmd())
}

func TestPullToRefresh(t *testing.T) {
	p := NewPullToRefresh(ui.DefaultStyles())
	w := listview.NewWindow(5)

	out := p.Wrap(func() listview.Surface { return w }, "body")
	assert.True(t, strings.HasSuffix(out, "\nbody"))
	assert.Equal(t, 1, w.Listeners())

	p.Wrap(func() listview.Surface { return w }, "body")
	assert.Equal(t, 1, w.Listeners(), "same surface is not attached twice")

	assert.Nil(t, w.ScrollTo(3, 10))
	assert.Nil(t, w.ScrollTo(0, 10), "arriving at the top only arms")
	cmd := w.ScrollBy(-1, 10)
	require.NotNil(t, cmd)
	assert.Equal(t, common.RefreshMsg{}, cmd())
	assert.True(t, p.Refreshing())
	assert.Contains(t, p.Wrap(func() listview.Surface { return w }, ""), "refreshing")

	assert.Nil(t, w.ScrollBy(-1, 10), "no second refresh while one is running")
	p.SetRefreshing(false)

	other := listview.NewWindow(5)
	p.Wrap(func() listview.Surface { return other }, "body")
	assert.Equal(t, 0, w.Listeners())
	assert.Equal(t, 1, other.Listeners())

	p.Detach()
	assert.Equal(t, 0, other.Listeners())
}
