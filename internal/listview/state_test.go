package listview

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbered(n int) []Item {
	out := make([]Item, n)
	for i := range out {
		out[i] = fmt.Sprintf("x%d", i)
	}
	return out
}

func TestNewWindowState_ClampsToTotal(t *testing.T) {
	s := NewWindowState(Inputs{Source: Flat(numbered(4)), InitialListSize: 10})
	assert.Equal(t, 4, s.Cursor)
	assert.True(t, s.Exhausted())

	s = NewWindowState(Inputs{Source: Flat(numbered(40)), InitialListSize: 10})
	assert.Equal(t, 10, s.Cursor)
	assert.False(t, s.Exhausted())
}

func TestDerive(t *testing.T) {
	data := numbered(40)
	initial := NewWindowState(Inputs{Source: Flat(data), InitialListSize: 10})

	t.Run("unchanged inputs keep state", func(t *testing.T) {
		next, changed := Derive(initial, Inputs{Source: Flat(data), InitialListSize: 10}, 10)
		assert.False(t, changed)
		assert.Equal(t, initial, next)
	})

	t.Run("new source grows by one page", func(t *testing.T) {
		next, changed := Derive(initial, Inputs{Source: Flat(slices.Clone(data)), InitialListSize: 10}, 10)
		assert.True(t, changed)
		assert.Equal(t, 20, next.Cursor)
	})

	t.Run("growth is capped by the new total", func(t *testing.T) {
		grown := initial.grow(10)
		next, changed := Derive(grown, Inputs{Source: Flat(numbered(25)), InitialListSize: 10}, 10)
		assert.True(t, changed)
		assert.Equal(t, 25, next.Cursor)
	})

	t.Run("never resets to the initial size", func(t *testing.T) {
		s := initial.grow(10).grow(10)
		next, _ := Derive(s, Inputs{Source: Flat(numbered(100)), InitialListSize: 10}, 10)
		assert.Equal(t, 40, next.Cursor)
	})

	t.Run("initial size change counts as input change", func(t *testing.T) {
		next, changed := Derive(initial, Inputs{Source: Flat(data), InitialListSize: 5}, 10)
		assert.True(t, changed)
		assert.Equal(t, 20, next.Cursor)
	})

	t.Run("new category slice counts as input change", func(t *testing.T) {
		sections := []Section{{Category: "A", Data: numbered(30)}}
		s := NewWindowState(Inputs{Source: Sectioned([]string{"A"}, sections), InitialListSize: 10})
		next, changed := Derive(s, Inputs{Source: Sectioned([]string{"A"}, sections), InitialListSize: 10}, 10)
		assert.True(t, changed)
		assert.Equal(t, 20, next.Cursor)
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		in := Inputs{Source: Flat(numbered(50)), InitialListSize: 10}
		once, _ := Derive(initial, in, 10)
		twice, changed := Derive(once, in, 10)
		assert.False(t, changed)
		assert.Equal(t, once, twice)
	})
}

func TestDerive_AdvancesByAtMostOnePage(t *testing.T) {
	for _, newTotal := range []int{10, 12, 15, 20, 35, 100} {
		t.Run(fmt.Sprint(newTotal), func(t *testing.T) {
			old := NewWindowState(Inputs{Source: Flat(numbered(40)), InitialListSize: 10})
			next, _ := Derive(old, Inputs{Source: Flat(numbered(newTotal)), InitialListSize: 10}, 10)
			assert.Equal(t, old.Cursor+min(10, newTotal-old.Cursor), next.Cursor)
			assert.LessOrEqual(t, next.Cursor, next.Total())
		})
	}
}
