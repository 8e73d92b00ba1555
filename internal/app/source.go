package app

import (
	"fmt"
	"strconv"

	"github.com/Akashdeep-Patra/lazylist/internal/common"
	"github.com/Akashdeep-Patra/lazylist/internal/feed"
	"github.com/Akashdeep-Patra/lazylist/internal/listview"
	"github.com/Akashdeep-Patra/lazylist/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// buildSource lays records out for mode. Every call returns fresh slices,
// so the list sees a new source.
func buildSource(records []feed.Record, mode common.Mode) listview.DataSource {
	if mode == common.ModeFlat {
		items := make([]listview.Item, len(records))
		for i, r := range records {
			items[i] = r
		}
		return listview.Flat(items)
	}

	groups := feed.GroupByCategory(records)
	categories := make([]string, len(groups))
	sections := make([]listview.Section, len(groups))
	for i, g := range groups {
		categories[i] = g.Category
		data := make([]listview.Item, len(g.Records))
		for j, r := range g.Records {
			data[j] = r
		}
		sections[i] = listview.Section{Category: g.Category, Data: data}
	}
	return listview.Sectioned(categories, sections)
}

// rowRenderer renders feed records as list rows.
type rowRenderer struct {
	styles ui.Styles
	width  func() int
	// colours maps a category to its position in the current source.
	colours map[string]int
}

func (r *rowRenderer) setCategories(categories []string) {
	r.colours = make(map[string]int, len(categories))
	for i, c := range categories {
		r.colours[c] = i
	}
}

func (r *rowRenderer) item(item listview.Item, _ int) string {
	rec, ok := item.(feed.Record)
	if !ok {
		return r.styles.ListDimmed.Render(fmt.Sprint(item))
	}
	index := r.styles.ListIndex.Render(strconv.Itoa(rec.Index + 1))
	avail := r.width() - lipgloss.Width(index) - r.styles.ListItem.GetHorizontalFrameSize() - 3
	text := rec.Text
	if avail > 0 {
		text = ui.Truncate(text, avail)
	}
	return index + r.styles.ListItem.Render(text)
}

func (r *rowRenderer) section(category string) string {
	fg := r.styles.SectionColor(r.colours[category])
	return r.styles.SectionHeader.Foreground(fg).Render(category)
}

// sectionWrapper draws a section's rows inside a left-bordered box in the
// section's colour.
func (r *rowRenderer) sectionWrapper(category string, _ int) listview.Container {
	fg := r.styles.SectionColor(r.colours[category])
	box := r.styles.SectionBox.BorderForeground(fg)
	return func(children ...string) string {
		return box.Render(listview.Stack(children...))
	}
}

// renderers returns the list renderers. The section callbacks only run
// for sectioned sources.
func (r *rowRenderer) renderers() listview.Renderers {
	return listview.Renderers{
		RenderItem:           r.item,
		RenderSection:        r.section,
		RenderSectionWrapper: r.sectionWrapper,
	}
}
