package listview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lines(children ...string) string { return strings.Join(children, "\n") }

func testRenderers() Renderers {
	return Renderers{
		RenderItem:          func(item Item, index int) string { return fmt.Sprintf("%v@%d", item, index) },
		RenderSection:       func(category string) string { return "[" + category + "]" },
		RenderBodyComponent: func() Container { return lines },
	}
}

func stateAt(src DataSource, cursor int) WindowState {
	s := NewWindowState(Inputs{Source: src, InitialListSize: 0})
	s.Cursor = cursor
	return s
}

func sampleSections() DataSource {
	return Sectioned([]string{"A", "B"}, []Section{
		{Category: "B", Data: items("b1")},
		{Category: "A", Data: items("a1", "a2")},
	})
}

func TestAssemble_Flat(t *testing.T) {
	src := Flat(numbered(10))
	assert.Equal(t, "x0@0\nx1@1\nx2@2", Assemble(stateAt(src, 3), testRenderers()))
	assert.Equal(t, "", Assemble(stateAt(src, 0), testRenderers()))
	assert.Len(t, strings.Split(Assemble(stateAt(src, 10), testRenderers()), "\n"), 10)
}

func TestAssemble_SectionedWithoutWrapper(t *testing.T) {
	tests := []struct {
		name     string
		budget   int
		expected []string
	}{
		{name: "stops before next section", budget: 3, expected: []string{"[A]", "a1@1", "a2@2"}},
		{name: "cuts inside a section", budget: 2, expected: []string{"[A]", "a1@1"}},
		{name: "header only", budget: 4, expected: []string{"[A]", "a1@1", "a2@2", "[B]"}},
		{name: "everything", budget: 5, expected: []string{"[A]", "a1@1", "a2@2", "[B]", "b1@4"}},
		{name: "budget above total", budget: 50, expected: []string{"[A]", "a1@1", "a2@2", "[B]", "b1@4"}},
		{name: "nothing", budget: 0, expected: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Assemble(stateAt(sampleSections(), tc.budget), testRenderers())
			assert.Equal(t, lines(tc.expected...), got)
		})
	}
}

func TestAssemble_SectionWrapperCompletesSection(t *testing.T) {
	r := testRenderers()
	r.RenderSectionWrapper = func(category string, index int) Container {
		return func(children ...string) string {
			return fmt.Sprintf("<%s#%d %s>", category, index, strings.Join(children, " "))
		}
	}

	got := Assemble(stateAt(sampleSections(), 2), r)
	assert.Equal(t, "<A#0 [A] a1@1 a2@2>", got)

	got = Assemble(stateAt(sampleSections(), 4), r)
	assert.Equal(t, "<A#0 [A] a1@1 a2@2>\n<B#1 [B] b1@4>", got)
}

func TestAssemble_DefaultBodyStacks(t *testing.T) {
	r := testRenderers()
	r.RenderBodyComponent = nil
	got := Assemble(stateAt(Flat(numbered(2)), 2), r)
	assert.Equal(t, 2, lineCount(got))
	assert.Contains(t, got, "x1@1")
}

func TestAssemble_Preconditions(t *testing.T) {
	assert.Panics(t, func() {
		Assemble(stateAt(Flat(numbered(1)), 1), Renderers{})
	}, "item renderer is required")

	r := testRenderers()
	r.RenderSection = nil
	assert.Panics(t, func() {
		Assemble(stateAt(sampleSections(), 3), r)
	}, "section renderer is required")

	missing := Sectioned([]string{"A", "Z"}, []Section{{Category: "A", Data: items("a1")}})
	assert.Panics(t, func() {
		Assemble(stateAt(missing, 5), testRenderers())
	}, "unknown category")
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "a|b", Compose(func(c ...string) string { return strings.Join(c, "|") }, "a", "b"))
	assert.Equal(t, "a\nb", Compose(nil, "a", "b"))
}
