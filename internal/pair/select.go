// Copyright ktanaka, 2026. All rights reserved.

package pair

import "strings"

// Selection is a successful section lookup: the name that matched and its
// raw (un-normalized) text.
type Selection struct {
	Section string
	Text    string
}

// Select tries section names in priority order and returns the first whose
// trimmed text is non-empty. The boolean distinguishes "not found" from a
// section that exists with empty text; callers must never treat a zero
// Selection as a match. Ties are broken purely by list order.
func Select(sections map[string]string, priority []string) (Selection, bool) {
	for _, name := range priority {
		text, ok := sections[name]
		if !ok {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		return Selection{Section: name, Text: text}, true
	}
	return Selection{}, false
}
