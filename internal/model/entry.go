package model

// Entry is one row of an inventory summary: a distinct item name and how
// many times it occurs. Entries are derived, never stored.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Total sums the counts of entries.
func Total(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Count
	}
	return n
}
