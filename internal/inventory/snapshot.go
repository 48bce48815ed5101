package inventory

import (
	"fmt"
	"sort"

	"github.com/tatianab/satchel/internal/item"
)

// Snapshot is a read-only copy of the ledger at one point in time.
type Snapshot struct {
	items map[*item.Definition]int
}

// Entry is one item stack in a snapshot.
type Entry struct {
	Item     *item.Definition
	Quantity int
}

// Quantity returns the count held for def, zero when absent.
func (s Snapshot) Quantity(def *item.Definition) int { return s.items[def] }

// Has reports whether def is present at all.
func (s Snapshot) Has(def *item.Definition) bool {
	_, ok := s.items[def]
	return ok
}

// Len returns the number of distinct item types.
func (s Snapshot) Len() int { return len(s.items) }

// Entries returns the stacks sorted by display name, then key.
func (s Snapshot) Entries() []Entry {
	out := make([]Entry, 0, len(s.items))
	for def, n := range s.items {
		out = append(out, Entry{Item: def, Quantity: n})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Item, out[j].Item
		if a.Name() != b.Name() {
			return a.Name() < b.Name()
		}
		return a.Key() < b.Key()
	})
	return out
}

// Map returns a fresh copy of the contents.
func (s Snapshot) Map() map[*item.Definition]int {
	m := make(map[*item.Definition]int, len(s.items))
	for def, n := range s.items {
		m[def] = n
	}
	return m
}

// Summary renders one "Name: quantity" line per stack.
func (s Snapshot) Summary() []string {
	entries := s.Entries()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s: %d", e.Item.Name(), e.Quantity))
	}
	return out
}
