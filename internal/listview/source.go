// Package listview renders a growing prefix of a flat or sectioned data
// source and expands it as the user scrolls toward the end.
//
// Rows are never recycled: the window only grows, one page at a time,
// either when the inputs change or when the scroll position gets within
// the render-ahead distance of the window's end. When the window already
// covers all data and the user nears the bottom, OnEndReached fires once
// per approach.
package listview

// Item is an opaque row value handed back to the item renderer.
type Item = any

// Section groups items under a category name.
type Section struct {
	Category string
	Data     []Item
}

// Kind tells the two data source shapes apart.
type Kind int

const (
	KindFlat Kind = iota
	KindSectioned
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindSectioned {
		return "sectioned"
	}
	return "flat"
}

// DataSource is either a flat item slice or a list of sections ordered by
// a separate category list. Build one with Flat or Sectioned.
type DataSource struct {
	kind       Kind
	items      []Item
	categories []string
	sections   []Section
}

// Flat returns a data source over items.
func Flat(items []Item) DataSource {
	return DataSource{kind: KindFlat, items: items}
}

// Sectioned returns a data source whose rendered order follows categories.
// Each category is matched to the first entry in sections with that name.
func Sectioned(categories []string, sections []Section) DataSource {
	return DataSource{kind: KindSectioned, categories: categories, sections: sections}
}

// Kind reports the data source shape.
func (d DataSource) Kind() Kind { return d.kind }

// Items returns the flat items (nil for sectioned sources).
func (d DataSource) Items() []Item { return d.items }

// Categories returns the ordered category names (nil for flat sources).
func (d DataSource) Categories() []string { return d.categories }

// Sections returns the section entries (nil for flat sources).
func (d DataSource) Sections() []Section { return d.sections }

// Lookup returns the data of the first section whose category matches.
func (d DataSource) Lookup(category string) ([]Item, bool) {
	for _, s := range d.sections {
		if s.Category == category {
			return s.Data, true
		}
	}
	return nil, false
}

// TotalCount returns the number of renderable rows: items for a flat
// source, headers plus items for a sectioned one.
func TotalCount(d DataSource) int {
	switch d.kind {
	case KindSectioned:
		total := len(d.categories)
		for _, s := range d.sections {
			total += len(s.Data)
		}
		return total
	default:
		return len(d.items)
	}
}

// identity captures which backing arrays a data source points at.
type identity struct {
	kind  Kind
	data  sliceID
	names sliceID
}

// sliceID identifies a slice by its backing array and length.
type sliceID struct {
	first any
	n     int
	isNil bool
}

func idOfItems(s []Item) sliceID {
	if len(s) == 0 {
		return sliceID{isNil: s == nil}
	}
	return sliceID{first: &s[0], n: len(s)}
}

func idOfSections(s []Section) sliceID {
	if len(s) == 0 {
		return sliceID{isNil: s == nil}
	}
	return sliceID{first: &s[0], n: len(s)}
}

func idOfStrings(s []string) sliceID {
	if len(s) == 0 {
		return sliceID{isNil: s == nil}
	}
	return sliceID{first: &s[0], n: len(s)}
}

func (d DataSource) identity() identity {
	id := identity{kind: d.kind}
	switch d.kind {
	case KindSectioned:
		id.data = idOfSections(d.sections)
		id.names = idOfStrings(d.categories)
	default:
		id.data = idOfItems(d.items)
	}
	return id
}
