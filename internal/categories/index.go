package categories

import (
	"fmt"
	"slices"
	"sort"

	"snipman/internal/domain"
)

// Index maps category names to the snippet positions they own.
// The NoCategory entry always exists and is always first. Lookups are a
// linear scan over names; the number of categories stays small.
type Index struct {
	entries []domain.Category
}

// New creates an index holding only the empty NoCategory entry
func New() *Index {
	return &Index{
		entries: []domain.Category{{Name: domain.NoCategory, Positions: []int{}}},
	}
}

// Find returns the entry index of the named category, or -1
func (ix *Index) Find(name string) int {
	for i, c := range ix.entries {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Append records a new snippet position for the named category, creating the
// entry at the end of the list when it does not exist yet.
func (ix *Index) Append(name string, pos int) {
	if i := ix.Find(name); i >= 0 {
		ix.entries[i].Positions = append(ix.entries[i].Positions, pos)
		return
	}
	ix.entries = append(ix.entries, domain.Category{
		Name:      name,
		Positions: []int{pos},
	})
}

// Owner returns the entry index that holds pos, or -1
func (ix *Index) Owner(pos int) int {
	for i, c := range ix.entries {
		if slices.Contains(c.Positions, pos) {
			return i
		}
	}
	return -1
}

// Release drops pos from its owning entry and decrements every stored position
// greater than pos, so positions keep tracking the shifted snippet list.
// Entries are never deleted, even when they become empty.
func (ix *Index) Release(pos int) error {
	owner := ix.Owner(pos)
	if owner < 0 {
		return fmt.Errorf("position %d is not indexed", pos)
	}

	for i := range ix.entries {
		positions := ix.entries[i].Positions[:0]
		for _, p := range ix.entries[i].Positions {
			switch {
			case p == pos:
				continue
			case p > pos:
				positions = append(positions, p-1)
			default:
				positions = append(positions, p)
			}
		}
		ix.entries[i].Positions = positions
	}
	return nil
}

// Move reassigns pos to the named category, keeping positions ascending
func (ix *Index) Move(pos int, name string) error {
	owner := ix.Owner(pos)
	if owner < 0 {
		return fmt.Errorf("position %d is not indexed", pos)
	}
	if ix.entries[owner].Name == name {
		return nil
	}

	from := ix.entries[owner].Positions
	ix.entries[owner].Positions = slices.DeleteFunc(from, func(p int) bool { return p == pos })

	target := ix.Find(name)
	if target < 0 {
		ix.entries = append(ix.entries, domain.Category{Name: name, Positions: []int{pos}})
		return nil
	}
	positions := ix.entries[target].Positions
	at := sort.SearchInts(positions, pos)
	ix.entries[target].Positions = slices.Insert(positions, at, pos)
	return nil
}

// Len returns the number of category entries
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns a deep copy of the category entries
func (ix *Index) Entries() []domain.Category {
	result := make([]domain.Category, len(ix.entries))
	for i, c := range ix.entries {
		positions := make([]int, len(c.Positions))
		copy(positions, c.Positions)
		result[i] = domain.Category{Name: c.Name, Positions: positions}
	}
	return result
}

// Names returns the category names in index order
func (ix *Index) Names() []string {
	names := make([]string, len(ix.entries))
	for i, c := range ix.entries {
		names[i] = c.Name
	}
	return names
}

// Validate checks that the position lists partition 0..n-1 and that the
// NoCategory entry leads the index.
func (ix *Index) Validate(n int) error {
	if len(ix.entries) == 0 || ix.entries[0].Name != domain.NoCategory {
		return fmt.Errorf("first category must be %q", domain.NoCategory)
	}

	seen := make([]bool, n)
	count := 0
	for _, c := range ix.entries {
		for _, p := range c.Positions {
			if p < 0 || p >= n {
				return fmt.Errorf("category %q holds position %d outside 0..%d", c.Name, p, n-1)
			}
			if seen[p] {
				return fmt.Errorf("position %d is indexed twice", p)
			}
			seen[p] = true
			count++
		}
	}
	if count != n {
		return fmt.Errorf("index covers %d of %d snippets", count, n)
	}
	return nil
}
