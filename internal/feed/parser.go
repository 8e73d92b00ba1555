package feed

import "strings"

// ParseLine turns one input line into a record. When delim is non-empty
// and present, the text before the first delim is the category.
func ParseLine(line string, index int, delim string) Record {
	line = strings.TrimRight(line, "\r")
	if delim != "" {
		if cat, text, ok := strings.Cut(line, delim); ok {
			return Record{Index: index, Category: strings.TrimSpace(cat), Text: strings.TrimSpace(text)}
		}
	}
	return Record{Index: index, Text: line}
}

// SplitLines splits command or file output into lines, dropping the
// trailing empty line left by a final newline.
func SplitLines(out string) []string {
	if out == "" {
		return nil
	}
	out = strings.TrimSuffix(out, "\n")
	return strings.Split(out, "\n")
}

// GroupByCategory buckets records by category. Groups keep the order in
// which their category first appears; records keep their feed order.
func GroupByCategory(records []Record) []Group {
	index := make(map[string]int, 8)
	var groups []Group
	for _, r := range records {
		cat := r.Category
		if cat == "" {
			cat = Uncategorized
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, Group{Category: cat})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}
