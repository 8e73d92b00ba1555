package common

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ── Layout modes ────────────────────────────────────────────────────────────

// Mode selects how feed records are laid out.
type Mode int

const (
	ModeFlat Mode = iota
	ModeSections
)

// ModeMeta describes a mode for display purposes.
type ModeMeta struct {
	ID       Mode
	Name     string // Display name shown in the mode bar.
	Icon     string // Unicode icon (nerdfont-free, works in all terminals).
	Shortcut string // Mnemonic shortcut hint displayed next to the name.
}

// AllModes is the ordered list of layout modes.
var AllModes = []ModeMeta{
	{ModeFlat, "List", "≡", "1"},
	{ModeSections, "Sections", "§", "2"},
}

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg asks the app to reload everything loaded so far.
type RefreshMsg struct{}

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// InfoMsg carries an informational message.
type InfoMsg struct{ Text string }

// SwitchModeMsg requests a layout change.
type SwitchModeMsg struct{ Mode Mode }

// ToggleHelpMsg toggles the help overlay.
type ToggleHelpMsg struct{}

// CmdRefresh returns a RefreshMsg (use as return from tea.Cmd).
func CmdRefresh() tea.Msg { return RefreshMsg{} }

// CmdErr creates a tea.Cmd that sends an ErrMsg.
func CmdErr(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// CmdInfo creates a tea.Cmd that sends an InfoMsg.
func CmdInfo(text string) tea.Cmd {
	return func() tea.Msg { return InfoMsg{Text: text} }
}
