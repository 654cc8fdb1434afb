package rankmatrix

import (
	"slices"
	"sort"
)

// Triple is one aggregation input row: a value credited to key in period.
type Triple struct {
	Period int
	Key    string
	Value  int64
}

// Bounds is an inclusive period range.
type Bounds struct {
	Min int
	Max int
}

// Contains reports whether period lies within b. A nil receiver is unbounded.
func (b *Bounds) Contains(period int) bool {
	if b == nil {
		return true
	}
	return period >= b.Min && period <= b.Max
}

// ValueMatrix holds summed values per (period, key). Combinations never
// observed are no-data and are distinct from an observed zero.
type ValueMatrix struct {
	periods []int
	keys    []string
	cells   map[int]map[string]int64
}

// Aggregate groups rows by (period, key) and sums their values. Rows outside
// bounds are dropped before anything else.
func Aggregate(rows []Triple, bounds *Bounds) *ValueMatrix {
	cells := make(map[int]map[string]int64)
	keySet := make(map[string]struct{})
	for _, row := range rows {
		if !bounds.Contains(row.Period) {
			continue
		}
		col, ok := cells[row.Period]
		if !ok {
			col = make(map[string]int64)
			cells[row.Period] = col
		}
		col[row.Key] += row.Value
		keySet[row.Key] = struct{}{}
	}
	m := &ValueMatrix{cells: cells}
	for period := range cells {
		m.periods = append(m.periods, period)
	}
	slices.Sort(m.periods)
	for key := range keySet {
		m.keys = append(m.keys, key)
	}
	slices.Sort(m.keys)
	return m
}

// Periods returns the observed periods in ascending order.
func (m *ValueMatrix) Periods() []int { return slices.Clone(m.periods) }

// Keys returns every key observed in any period, sorted.
func (m *ValueMatrix) Keys() []string { return slices.Clone(m.keys) }

// Empty reports whether no rows survived aggregation.
func (m *ValueMatrix) Empty() bool { return len(m.periods) == 0 }

// Value returns the summed value for (period, key); ok is false for no-data.
func (m *ValueMatrix) Value(period int, key string) (int64, bool) {
	v, ok := m.cells[period][key]
	return v, ok
}

// Period returns a copy of the values present in one period.
func (m *ValueMatrix) Period(period int) map[string]int64 {
	out := make(map[string]int64, len(m.cells[period]))
	for k, v := range m.cells[period] {
		out[k] = v
	}
	return out
}

// Series returns the periods in which key has data and their values.
func (m *ValueMatrix) Series(key string) map[int]int64 {
	out := make(map[int]int64)
	for _, period := range m.periods {
		if v, ok := m.cells[period][key]; ok {
			out[period] = v
		}
	}
	return out
}

// Totals sums each key across all periods.
func (m *ValueMatrix) Totals() map[string]int64 {
	out := make(map[string]int64, len(m.keys))
	for _, col := range m.cells {
		for k, v := range col {
			out[k] += v
		}
	}
	return out
}

// RankMatrix has the same periods and keys as the ValueMatrix it was built
// from; each present cell holds the competition rank within its period.
type RankMatrix struct {
	periods []int
	keys    []string
	cells   map[int]map[string]int
}

// Rank computes per-period competition ranks. No-data cells stay no-data.
func Rank(v *ValueMatrix) *RankMatrix {
	r := &RankMatrix{
		periods: slices.Clone(v.periods),
		keys:    slices.Clone(v.keys),
		cells:   make(map[int]map[string]int, len(v.cells)),
	}
	for period, col := range v.cells {
		r.cells[period] = CompetitionRank(col)
	}
	return r
}

// Build aggregates rows within bounds and ranks the result.
func Build(rows []Triple, bounds *Bounds) (*ValueMatrix, *RankMatrix) {
	values := Aggregate(rows, bounds)
	return values, Rank(values)
}

// CompetitionRank ranks values descending. Equal values share a rank and the
// next distinct value's rank skips by the tie-group size: {100,100,50} ranks
// 1,1,3.
func CompetitionRank(values map[string]int64) map[string]int {
	ranks := make(map[string]int, len(values))
	for _, entry := range Ranked(values) {
		ranks[entry.Key] = entry.Rank
	}
	return ranks
}

// Entry is one ranked key.
type Entry struct {
	Key   string
	Value int64
	Rank  int
}

// Ranked returns values ordered by value descending then key, annotated with
// competition ranks.
func Ranked(values map[string]int64) []Entry {
	entries := make([]Entry, 0, len(values))
	for k, v := range values {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Key < entries[j].Key
	})
	for i := range entries {
		if i > 0 && entries[i].Value == entries[i-1].Value {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	return entries
}

// Top returns at most n entries of Ranked(values).
func Top(values map[string]int64, n int) []Entry {
	entries := Ranked(values)
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Periods returns the ranked periods in ascending order.
func (r *RankMatrix) Periods() []int { return slices.Clone(r.periods) }

// Keys returns every ranked key, sorted.
func (r *RankMatrix) Keys() []string { return slices.Clone(r.keys) }

// Rank returns the rank of key in period; ok is false for no-data.
func (r *RankMatrix) Rank(period int, key string) (int, bool) {
	v, ok := r.cells[period][key]
	return v, ok
}

// LatestPeriod returns the last ranked period.
func (r *RankMatrix) LatestPeriod() (int, bool) {
	if len(r.periods) == 0 {
		return 0, false
	}
	return r.periods[len(r.periods)-1], true
}

// Leaders returns every key that held rank 1 in at least one period,
// including keys tied for first.
func (r *RankMatrix) Leaders() []string {
	set := make(map[string]struct{})
	for _, col := range r.cells {
		for k, rank := range col {
			if rank == 1 {
				set[k] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// Select returns the visible key set: the topN keys of the latest period
// (ties at the boundary broken by key) together with every key that ever
// held rank 1. The result is sorted.
func (r *RankMatrix) Select(topN int) []string {
	set := make(map[string]struct{})
	if latest, ok := r.LatestPeriod(); ok && topN > 0 {
		col := r.cells[latest]
		keys := make([]string, 0, len(col))
		for k := range col {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if col[keys[i]] != col[keys[j]] {
				return col[keys[i]] < col[keys[j]]
			}
			return keys[i] < keys[j]
		})
		if len(keys) > topN {
			keys = keys[:topN]
		}
		for _, k := range keys {
			set[k] = struct{}{}
		}
	}
	for _, k := range r.Leaders() {
		set[k] = struct{}{}
	}
	return sortedKeys(set)
}

// Saturate maps ranks worse than cutoff to the below-the-fold sentinel
// cutoff+1. It is a display transform only.
func Saturate(rank, cutoff int) int {
	if rank > cutoff {
		return cutoff + 1
	}
	return rank
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
