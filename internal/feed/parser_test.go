package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		delim    string
		expected Record
	}{
		{name: "no delimiter configured", line: "a: b", delim: "", expected: Record{Index: 3, Text: "a: b"}},
		{name: "category prefix", line: "fruit: apple", delim: ":", expected: Record{Index: 3, Category: "fruit", Text: "apple"}},
		{name: "only first delimiter splits", line: "k: v: w", delim: ":", expected: Record{Index: 3, Category: "k", Text: "v: w"}},
		{name: "delimiter absent", line: "plain", delim: ":", expected: Record{Index: 3, Text: "plain"}},
		{name: "carriage return stripped", line: "dos\r", delim: "", expected: Record{Index: 3, Text: "dos"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseLine(tc.line, 3, tc.delim))
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb"))
}

func TestGroupByCategory(t *testing.T) {
	recs := []Record{
		{Index: 0, Category: "b", Text: "1"},
		{Index: 1, Category: "a", Text: "2"},
		{Index: 2, Text: "3"},
		{Index: 3, Category: "b", Text: "4"},
	}
	groups := GroupByCategory(recs)
	assert.Len(t, groups, 3)
	assert.Equal(t, "b", groups[0].Category)
	assert.Equal(t, []Record{recs[0], recs[3]}, groups[0].Records)
	assert.Equal(t, "a", groups[1].Category)
	assert.Equal(t, Uncategorized, groups[2].Category)
	assert.Nil(t, GroupByCategory(nil))
}
