package components

import (
	"fmt"

	"github.com/Akashdeep-Patra/lazylist/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Source     string // feed name
	Cursor     int    // rows the list has revealed
	Total      int    // rows available in the current data
	Loaded     int    // records fetched so far
	Done       bool   // feed exhausted
	Loading    bool   // fetch in flight
	Spinner    string // spinner frame shown while Loading
	EndReached int    // end-reached notifications so far
	Sectioned  bool
	Message    string // transient info/error message
	IsError    bool
}

// RenderStatusBar renders the bottom status bar with sections separated
// by dim vertical bars.
//
// Wide (>= 60):    feed.txt │ 40/120 │ 120 loaded ⋯ │ ⚑ 2        sections
// Medium (40-59):  feed.txt │ 40/120 │ 120 loaded ⋯
// Narrow (< 40):   40/120 │ ✓ all
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sep := lipgloss.NewStyle().Foreground(t.Border).Faint(true).Render(" │ ")

	var parts []string
	if width >= 40 && data.Source != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(data.Source))
	}

	windowStyle := lipgloss.NewStyle().Foreground(t.Text)
	if data.Cursor >= data.Total {
		windowStyle = windowStyle.Foreground(t.Success)
	}
	parts = append(parts, windowStyle.Render(fmt.Sprintf("%d/%d", data.Cursor, data.Total)))

	var feedState string
	switch {
	case data.Loading:
		feedState = lipgloss.NewStyle().Foreground(t.Warning).Render(
			fmt.Sprintf("%s %d loaded", data.Spinner, data.Loaded))
	case data.Done:
		feedState = lipgloss.NewStyle().Foreground(t.Success).Render("✓ all")
		if width >= 40 {
			feedState = lipgloss.NewStyle().Foreground(t.Success).Render(fmt.Sprintf("✓ %d loaded", data.Loaded))
		}
	default:
		feedState = lipgloss.NewStyle().Foreground(t.TextMuted).Render(fmt.Sprintf("%d loaded ⋯", data.Loaded))
	}
	parts = append(parts, feedState)

	if width >= 60 && data.EndReached > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Accent).Render(fmt.Sprintf("⚑ %d", data.EndReached)))
	}

	left := " "
	for i, p := range parts {
		if i > 0 {
			left += sep
		}
		left += p
	}

	var right string
	switch {
	case data.Message != "":
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	case width >= 60:
		mode := "flat"
		if data.Sectioned {
			mode = "sections"
		}
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(mode) + " "
	}

	inner := width - styles.StatusBar.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 1
		right = "" // drop right side if no room
	}

	return styles.StatusBar.Width(width).Render(ui.PadRight(left, lipgloss.Width(left)+gap) + right)
}
