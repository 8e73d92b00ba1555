package listview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Container wraps rendered child nodes into one node.
type Container func(children ...string) string

// Stack is the default container: children stacked top to bottom.
func Stack(children ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, children...)
}

// Compose places children inside container. A nil container stacks them.
func Compose(container Container, children ...string) string {
	if container == nil {
		return Stack(children...)
	}
	return container(children...)
}

// Renderers are the caller callbacks used to build the body.
type Renderers struct {
	// RenderItem renders one item; index is its flattened row position.
	RenderItem func(item Item, index int) string
	// RenderSection renders a section header. Required for sectioned data.
	RenderSection func(category string) string
	// RenderSectionWrapper optionally wraps a section's header and items.
	RenderSectionWrapper func(category string, index int) Container
	// RenderBodyComponent returns the container holding the windowed rows.
	RenderBodyComponent func() Container
}

// Assemble renders at most state.Cursor flattened rows into the body
// container.
//
// In sectioned mode a section rendered through RenderSectionWrapper is
// always completed, even when it crosses the budget; without a wrapper
// rendering stops exactly at the budget.
func Assemble(state WindowState, r Renderers) string {
	if r.RenderItem == nil {
		panic("listview: RenderItem is required")
	}
	src := state.source
	budget := min(TotalCount(src), state.Cursor)

	var body Container
	if r.RenderBodyComponent != nil {
		body = r.RenderBodyComponent()
	}

	if src.Kind() == KindFlat {
		nodes := make([]string, 0, budget)
		for i := 0; i < budget; i++ {
			nodes = append(nodes, r.RenderItem(src.items[i], i))
		}
		return Compose(body, nodes...)
	}

	if r.RenderSection == nil {
		panic("listview: RenderSection is required for sectioned data")
	}

	var nodes []string
	rendered := 0
	for i, category := range src.categories {
		if rendered >= budget {
			break
		}
		data, ok := src.Lookup(category)
		if !ok {
			panic(fmt.Sprintf("listview: no section data for category %q", category))
		}

		if r.RenderSectionWrapper != nil {
			wrapper := r.RenderSectionWrapper(category, i)
			children := make([]string, 0, len(data)+1)
			children = append(children, r.RenderSection(category))
			rendered++
			for _, item := range data {
				children = append(children, r.RenderItem(item, rendered))
				rendered++
			}
			nodes = append(nodes, Compose(wrapper, children...))
			continue
		}

		nodes = append(nodes, r.RenderSection(category))
		rendered++
		for _, item := range data {
			if rendered >= budget {
				break
			}
			nodes = append(nodes, r.RenderItem(item, rendered))
			rendered++
		}
	}
	return Compose(body, nodes...)
}
