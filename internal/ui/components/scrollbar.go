package components

import (
	"strings"

	"github.com/Akashdeep-Patra/lazylist/internal/listview"
	"github.com/Akashdeep-Patra/lazylist/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar returns a vertical scrollbar track of the given height
// for a surface with metrics m. The thumb is proportional to the visible
// share of the rendered content, so it shrinks as the window grows.
//
// Returns an empty string if all content fits (no scrolling needed).
func RenderScrollbar(styles ui.Styles, height int, m listview.ScrollMetrics) string {
	if m.ContentLength <= m.VisibleLength || height < 1 || m.VisibleLength < 1 {
		return ""
	}

	t := styles.Theme

	thumbSize := height * m.VisibleLength / m.ContentLength
	thumbSize = max(1, min(thumbSize, height))

	maxOffset := height - thumbSize
	scrollable := m.ContentLength - m.VisibleLength
	thumbStart := m.Offset * maxOffset / scrollable
	thumbStart = max(0, min(thumbStart, maxOffset))

	thumb := lipgloss.NewStyle().Foreground(t.Primary).Render("█")
	track := lipgloss.NewStyle().Foreground(t.Border).Render("░")

	rows := make([]string, height)
	for i := range rows {
		if i >= thumbStart && i < thumbStart+thumbSize {
			rows[i] = thumb
		} else {
			rows[i] = track
		}
	}
	return strings.Join(rows, "\n")
}
