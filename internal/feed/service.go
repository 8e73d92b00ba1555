package feed

import (
	"path/filepath"
	"strings"
)

// Service provides feed records a page at a time.
// The TUI depends on this interface, never on a concrete source, so tests
// can substitute an in-memory implementation.
type Service interface {
	// Name is a short label for the status bar.
	Name() string
	// Path is the backing file to watch for changes, or "" if none.
	Path() string
	// Fetch returns up to limit records starting at offset.
	Fetch(offset, limit int) (Page, error)
}

// Resetter is implemented by services that memoise their data and can be
// told to reload it.
type Resetter interface {
	Reset()
}

// Open resolves a source typed by the user. "!cmd" runs cmd through the
// shell in dir; anything else is a file path, relative to dir unless
// absolute.
func Open(source, dir, delim string) (Service, error) {
	source = strings.TrimSpace(source)
	if command, ok := strings.CutPrefix(source, "!"); ok {
		svc, err := NewCommandService(strings.TrimSpace(command), dir, delim)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}
	if source == "" {
		return nil, ErrNoSource
	}
	if !filepath.IsAbs(source) && dir != "" {
		source = filepath.Join(dir, source)
	}
	svc, err := NewFileService(source, delim)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// sliceLines builds a page from pre-split lines.
func sliceLines(lines []string, offset, limit int, delim string) Page {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(lines) {
		return Page{Offset: offset, Done: true}
	}
	end := min(offset+limit, len(lines))
	recs := make([]Record, 0, end-offset)
	for i := offset; i < end; i++ {
		recs = append(recs, ParseLine(lines[i], i, delim))
	}
	return Page{Offset: offset, Records: recs, Done: end >= len(lines)}
}
