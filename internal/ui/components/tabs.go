package components

import (
	"strings"

	"github.com/Akashdeep-Patra/lazylist/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// TabInfo describes a single mode tab for rendering.
type TabInfo struct {
	Name     string
	Icon     string
	Shortcut string
	Active   bool
}

// TabBarRows is the number of screen rows the tab bar occupies
// (labels + underline).
const TabBarRows = 2

// tabLabel renders the visible label for a tab, shortening it when the
// bar is narrow.
func tabLabel(tab TabInfo, compact bool) string {
	if compact {
		return tab.Icon
	}
	return tab.Icon + " " + tab.Name + " " + tab.Shortcut
}

// RenderTabs renders the mode bar: one row of tabs with the title on the
// right, and an underline that accents the active tab.
func RenderTabs(styles ui.Styles, tabs []TabInfo, title string, width int) string {
	t := styles.Theme

	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	compact := width < 30
	var row strings.Builder
	row.WriteByte(' ') // left padding
	col := 1
	activeStart, activeEnd := -1, -1

	for _, tab := range tabs {
		style := inactiveStyle
		if tab.Active {
			style = activeStyle
		}
		styled := " " + style.Render(tabLabel(tab, compact)) + " "
		w := lipgloss.Width(styled)
		if tab.Active {
			activeStart, activeEnd = col, col+w
		}
		row.WriteString(styled)
		col += w
	}

	if title != "" && !compact {
		titleStr := lipgloss.NewStyle().Foreground(t.TextSubtle).Render(ui.Truncate(title, max(width-col-3, 1)))
		if gap := width - col - lipgloss.Width(titleStr) - 1; gap > 0 {
			row.WriteString(strings.Repeat(" ", gap))
			row.WriteString(titleStr)
		}
	}

	labels := lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Background(t.Bg).
		Render(row.String())

	borderStyle := lipgloss.NewStyle().Foreground(t.Border)
	accentStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	underline := buildUnderline(width, activeStart, activeEnd, borderStyle, accentStyle, "─", "━")

	return lipgloss.JoinVertical(lipgloss.Left, labels, underline)
}

// buildUnderline builds a width-wide underline string with a bold accent
// segment between activeStart..activeEnd and thin segments elsewhere.
func buildUnderline(width, activeStart, activeEnd int, borderSt, accentSt lipgloss.Style, thin, bold string) string {
	if width <= 0 {
		return ""
	}
	if activeStart < 0 || activeEnd < 0 {
		return borderSt.Render(strings.Repeat(thin, width))
	}
	activeEnd = min(activeEnd, width)
	activeStart = min(activeStart, width)

	var b strings.Builder
	b.Grow(width * 4)
	if activeStart > 0 {
		b.WriteString(borderSt.Render(strings.Repeat(thin, activeStart)))
	}
	if seg := activeEnd - activeStart; seg > 0 {
		b.WriteString(accentSt.Render(strings.Repeat(bold, seg)))
	}
	if rem := width - activeEnd; rem > 0 {
		b.WriteString(borderSt.Render(strings.Repeat(thin, rem)))
	}
	return b.String()
}
