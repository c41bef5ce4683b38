// Package inventory holds the ordered list of item names owned by a session
// and the three operations that mutate it.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/stock/internal/model"
)

var (
	// ErrEmptyName is returned by Add when the name is empty after trimming.
	ErrEmptyName = errors.New("empty name")
	// ErrNotFound is returned by RemoveOne when no item matches.
	ErrNotFound = errors.New("not found")
	// ErrIndexOutOfRange is returned by RemoveAt for an invalid position.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Inventory is an ordered multiset of item names. Insertion order is kept
// and duplicates are allowed. It is not safe for concurrent use.
type Inventory struct {
	items []string
}

// New returns an inventory holding the seed names in order. Seed names are
// trimmed and blank ones are skipped.
func New(seed ...string) *Inventory {
	inv := &Inventory{items: make([]string, 0, len(seed))}
	for _, s := range seed {
		if s = strings.TrimSpace(s); s != "" {
			inv.items = append(inv.items, s)
		}
	}
	return inv
}

// Add appends name and returns the stored, trimmed form.
func (inv *Inventory) Add(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	inv.items = append(inv.items, name)
	return name, nil
}

// RemoveOne removes the first item equal to name. Later duplicates stay.
func (inv *Inventory) RemoveOne(name string) (string, error) {
	name = strings.TrimSpace(name)
	for i, it := range inv.items {
		if it == name {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return it, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, name)
}

// RemoveAt removes the item at the 0-based index and returns it.
func (inv *Inventory) RemoveAt(index int) (string, error) {
	if index < 0 || index >= len(inv.items) {
		return "", fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(inv.items), index)
	}
	it := inv.items[index]
	inv.items = append(inv.items[:index], inv.items[index+1:]...)
	return it, nil
}

// Summarize counts occurrences of every distinct name. The map is built
// fresh on each call.
func (inv *Inventory) Summarize() map[string]int {
	out := make(map[string]int, len(inv.items))
	for _, it := range inv.items {
		out[it]++
	}
	return out
}

// Entries is Summarize as a slice, ordered by first occurrence.
func (inv *Inventory) Entries() []model.Entry {
	pos := make(map[string]int, len(inv.items))
	var out []model.Entry
	for _, it := range inv.items {
		if i, ok := pos[it]; ok {
			out[i].Count++
			continue
		}
		pos[it] = len(out)
		out = append(out, model.Entry{Name: it, Count: 1})
	}
	return out
}

// Count reports how many times name occurs.
func (inv *Inventory) Count(name string) int {
	name = strings.TrimSpace(name)
	n := 0
	for _, it := range inv.items {
		if it == name {
			n++
		}
	}
	return n
}

func (inv *Inventory) Len() int { return len(inv.items) }

// At returns the item at index i and whether i was valid.
func (inv *Inventory) At(i int) (string, bool) {
	if i < 0 || i >= len(inv.items) {
		return "", false
	}
	return inv.items[i], true
}

// Items returns a copy of the current sequence.
func (inv *Inventory) Items() []string {
	out := make([]string, len(inv.items))
	copy(out, inv.items)
	return out
}

// Clear drops every item.
func (inv *Inventory) Clear() { inv.items = nil }
