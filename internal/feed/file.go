package feed

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// maxLineSize bounds a single line read from a file.
const maxLineSize = 1 << 20

// FileService serves the lines of a text file. Every fetch re-reads the
// file up to the requested page, so edits show up on the next load.
type FileService struct {
	path  string
	delim string
}

// Compile-time check that FileService implements Service.
var _ Service = (*FileService)(nil)

// NewFileService opens path for paging.
func NewFileService(path, delim string) (*FileService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening feed file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening feed file: %s is a directory", abs)
	}
	return &FileService{path: abs, delim: delim}, nil
}

// Name returns the file's base name.
func (s *FileService) Name() string { return filepath.Base(s.path) }

// Path returns the absolute file path.
func (s *FileService) Path() string { return s.path }

// Fetch returns up to limit lines starting at line offset.
func (s *FileService) Fetch(offset, limit int) (Page, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return Page{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	page := Page{Offset: max(offset, 0)}
	i := 0
	for sc.Scan() {
		if i >= page.Offset+limit {
			return page, nil
		}
		if i >= page.Offset {
			page.Records = append(page.Records, ParseLine(sc.Text(), i, s.delim))
		}
		i++
	}
	if err := sc.Err(); err != nil {
		return Page{}, fmt.Errorf("reading %s: %w", s.path, err)
	}
	page.Done = true
	return page, nil
}
