package feed

import "fmt"

// GeneratedService serves a fixed number of synthetic records, spread
// across a handful of categories. Useful for demos and benchmarks.
type GeneratedService struct {
	total      int
	categories []string
}

// Compile-time check that GeneratedService implements Service.
var _ Service = (*GeneratedService)(nil)

var defaultCategories = []string{"alpha", "beta", "gamma", "delta"}

// NewGeneratedService returns a feed of total records.
func NewGeneratedService(total int) *GeneratedService {
	return &GeneratedService{total: max(total, 0), categories: defaultCategories}
}

// Name describes the feed.
func (s *GeneratedService) Name() string { return fmt.Sprintf("generated(%d)", s.total) }

// Path returns "": generated data has no backing file.
func (s *GeneratedService) Path() string { return "" }

// Fetch returns records [offset, offset+limit).
func (s *GeneratedService) Fetch(offset, limit int) (Page, error) {
	offset = max(offset, 0)
	end := min(offset+limit, s.total)
	page := Page{Offset: offset, Done: end >= s.total}
	for i := offset; i < end; i++ {
		// Categories come in runs so grouping produces real sections.
		cat := s.categories[(i/7)%len(s.categories)]
		page.Records = append(page.Records, Record{
			Index:    i,
			Category: cat,
			Text:     fmt.Sprintf("record %d", i),
		})
	}
	return page, nil
}
