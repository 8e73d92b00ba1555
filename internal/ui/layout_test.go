package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab…", Truncate("abcd", 3))
	assert.Equal(t, "…", Truncate("abcd", 1))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", PadRight("ab", 4))
	assert.Equal(t, "abcd", PadRight("abcd", 2))
}

func TestCrop(t *testing.T) {
	s := "0\n1\n2\n3\n4"
	assert.Equal(t, "1\n2", Crop(s, 1, 2))
	assert.Equal(t, "4\n\n", Crop(s, 4, 3))
	assert.Equal(t, "0", Crop(s, -3, 1))
	assert.Equal(t, "", Crop(s, 0, 0))
}

func TestJoinHorizontal(t *testing.T) {
	assert.Equal(t, "a | c", JoinHorizontal(" | ", "a", "", "c"))
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, LightTheme().Bg, ThemeByName("light").Bg)
	assert.Equal(t, DarkTheme().Bg, ThemeByName("anything").Bg)
	s := DefaultStyles()
	assert.Equal(t, s.Theme.SectionColors[1], s.SectionColor(len(s.Theme.SectionColors)+1))
}

func TestTruncate_Wide(t *testing.T) {
	assert.Equal(t, "日…", Truncate("日本語", 3))
}
