package history

import "strings"

// Filter returns the entries matching query, optionally restricted to
// pinned entries. It is a pure function: source order is preserved, the
// input slice is never modified, and it runs on every (debounced)
// keystroke, so it stays a single linear scan.
//
// Matching is a case-insensitive substring test against the entry label
// after trimming surrounding whitespace from the query. Image entries match
// on their label text only, never on image bytes. An empty query matches
// everything.
func Filter(items []*Entry, query string, pinnedOnly bool) []*Entry {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]*Entry, 0, len(items))
	for _, e := range items {
		if query != "" && !strings.Contains(strings.ToLower(e.Label()), query) {
			continue
		}
		if pinnedOnly && !e.Pinned {
			continue
		}
		out = append(out, e)
	}
	return out
}
