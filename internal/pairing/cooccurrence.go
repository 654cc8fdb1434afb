package pairing

import (
	"errors"
	"fmt"

	"voirank/internal/catalog"
)

// ErrUnknownEntity reports an extracted name that the catalog cannot index.
// It means the extractor and catalog disagree and the run must stop.
var ErrUnknownEntity = errors.New("entity not in catalog")

// Matrix is a symmetric count of how often two catalog entities share a
// record. Rows and columns follow catalog order.
type Matrix struct {
	names  []string
	counts [][]int
}

// Cooccurrence counts every unordered pair within each entity set.
func Cooccurrence(c *catalog.Catalog, sets [][]string) (*Matrix, error) {
	names := c.Names()
	counts := make([][]int, len(names))
	for i := range counts {
		counts[i] = make([]int, len(names))
	}
	for _, set := range sets {
		idx := make([]int, 0, len(set))
		for _, name := range set {
			i, ok := c.Index(name)
			if !ok {
				return nil, fmt.Errorf("co-occurrence: %w: %q", ErrUnknownEntity, name)
			}
			idx = append(idx, i)
		}
		for a := 0; a < len(idx); a++ {
			for b := a + 1; b < len(idx); b++ {
				if idx[a] == idx[b] {
					continue
				}
				counts[idx[a]][idx[b]]++
				counts[idx[b]][idx[a]]++
			}
		}
	}
	return &Matrix{names: names, counts: counts}, nil
}

// Names returns the row/column labels.
func (m *Matrix) Names() []string { return append([]string(nil), m.names...) }

// Count returns the co-occurrence count of two names, or 0 if either is
// unknown.
func (m *Matrix) Count(a, b string) int {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return 0
	}
	return m.counts[i][j]
}

// At returns the count at catalog positions i and j.
func (m *Matrix) At(i, j int) int { return m.counts[i][j] }

// Active returns a matrix restricted to entities with at least one
// co-occurrence.
func (m *Matrix) Active() *Matrix {
	var keep []int
	for i, row := range m.counts {
		for _, v := range row {
			if v > 0 {
				keep = append(keep, i)
				break
			}
		}
	}
	out := &Matrix{names: make([]string, len(keep)), counts: make([][]int, len(keep))}
	for a, i := range keep {
		out.names[a] = m.names[i]
		out.counts[a] = make([]int, len(keep))
		for b, j := range keep {
			out.counts[a][b] = m.counts[i][j]
		}
	}
	return out
}

// Empty reports whether the matrix has no labels.
func (m *Matrix) Empty() bool { return len(m.names) == 0 }

func (m *Matrix) index(name string) int {
	for i, n := range m.names {
		if n == name {
			return i
		}
	}
	return -1
}
