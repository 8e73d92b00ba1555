package app

import (
	"github.com/Akashdeep-Patra/lazylist/internal/feed"
	"github.com/sahilm/fuzzy"
)

// recordSource adapts records to fuzzy.Source.
type recordSource []feed.Record

func (s recordSource) String(i int) string { return s[i].Category + " " + s[i].Text }
func (s recordSource) Len() int            { return len(s) }

// filterRecords returns the records matching query, best match first.
// An empty query returns records unchanged.
func filterRecords(records []feed.Record, query string) []feed.Record {
	if query == "" {
		return records
	}
	matches := fuzzy.FindFrom(query, recordSource(records))
	out := make([]feed.Record, len(matches))
	for i, match := range matches {
		out[i] = records[match.Index]
	}
	return out
}
