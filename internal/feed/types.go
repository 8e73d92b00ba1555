package feed

import "errors"

var (
	// ErrEmptyCommand is returned when a command source has nothing to run.
	ErrEmptyCommand = errors.New("empty command")
	// ErrNoSource is returned by Open for a blank source.
	ErrNoSource = errors.New("no source given")
)

// Uncategorized is the category given to records without one when the
// feed is grouped into sections.
const Uncategorized = "other"

// Record is one row of feed data.
type Record struct {
	Index    int    // Position in the full feed, 0-based.
	Category string // Empty when the line had no category prefix.
	Text     string
}

// Page is a contiguous slice of records starting at Offset.
type Page struct {
	Offset  int
	Records []Record
	// Done is true when no records exist past this page.
	Done bool
}

// Next returns the offset of the record after this page.
func (p Page) Next() int { return p.Offset + len(p.Records) }

// Group is a run of records sharing a category, in first-seen order.
type Group struct {
	Category string
	Records  []Record
}
