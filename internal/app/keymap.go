package app

import (
	"github.com/Akashdeep-Patra/lazylist/internal/config"
	"github.com/Akashdeep-Patra/lazylist/internal/listview"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings. Scrolling keys live in the list's
// own key map; the app only handles them itself in body-scroll mode.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Refresh  key.Binding
	Reload   key.Binding
	LoadMore key.Binding
	Filter   key.Binding
	Open     key.Binding
	Back     key.Binding

	// Layout modes, matching the shortcuts shown in the mode bar.
	ModeFlat     key.Binding
	ModeSections key.Binding
	NextMode     key.Binding
}

// NewKeyMap builds the key map from configured bindings.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys(kb.Quit, "ctrl+c"), key.WithHelp(kb.Quit, "quit")),
		Help:     key.NewBinding(key.WithKeys(kb.Help), key.WithHelp(kb.Help, "help")),
		Refresh:  key.NewBinding(key.WithKeys(kb.Refresh, "ctrl+r"), key.WithHelp(kb.Refresh, "refresh")),
		Reload:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload from start")),
		LoadMore: key.NewBinding(key.WithKeys(kb.LoadMore), key.WithHelp(kb.LoadMore, "load next page")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open source")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter / back")),

		ModeFlat:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "flat list")),
		ModeSections: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sections")),
		NextMode:     key.NewBinding(key.WithKeys(kb.Sections, "tab"), key.WithHelp(kb.Sections, "toggle sections")),
	}
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeyBindings())
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.NextMode, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LoadMore, k.Refresh, k.Reload, k.Filter, k.Open},
		{k.ModeFlat, k.ModeSections, k.NextMode},
		{k.Help, k.Back, k.Quit},
	}
}

// listKeyMap builds the list's scroll bindings from configured keys.
func listKeyMap(kb config.KeyBindings) listview.KeyMap {
	k := listview.DefaultKeyMap()
	k.Down = key.NewBinding(key.WithKeys("down", kb.Down), key.WithHelp(kb.Down+"/↓", "down"))
	k.Up = key.NewBinding(key.WithKeys("up", kb.Up), key.WithHelp(kb.Up+"/↑", "up"))
	k.PageDown = key.NewBinding(key.WithKeys("pgdown", " ", kb.PageDown), key.WithHelp("pgdn/"+kb.PageDown, "page down"))
	k.PageUp = key.NewBinding(key.WithKeys("pgup", kb.PageUp), key.WithHelp("pgup/"+kb.PageUp, "page up"))
	k.Top = key.NewBinding(key.WithKeys("home", kb.Top), key.WithHelp(kb.Top, "top"))
	k.Bottom = key.NewBinding(key.WithKeys("end", kb.Bottom), key.WithHelp(kb.Bottom, "bottom"))
	return k
}
