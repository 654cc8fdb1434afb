package pairing

import (
	"slices"

	"voirank/internal/rankmatrix"
)

// Separator joins the two names of a pair key.
const Separator = " & "

// EntityRow is one record reduced to its period, extracted entities, and
// credited value.
type EntityRow struct {
	Period   int
	Entities []string
	Value    int64
}

// PairKey returns the canonical key for an unordered pair.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + Separator + b
}

// ExpandToSingles emits one triple per distinct entity of each row.
func ExpandToSingles(rows []EntityRow) []rankmatrix.Triple {
	var out []rankmatrix.Triple
	for _, row := range rows {
		for _, name := range distinct(row.Entities) {
			out = append(out, rankmatrix.Triple{Period: row.Period, Key: name, Value: row.Value})
		}
	}
	return out
}

// ExpandToPairs emits one triple per unordered two-entity combination of
// each row, each carrying the row's full value. Rows with fewer than two
// distinct entities contribute nothing.
func ExpandToPairs(rows []EntityRow) []rankmatrix.Triple {
	var out []rankmatrix.Triple
	for _, row := range rows {
		names := distinct(row.Entities)
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				out = append(out, rankmatrix.Triple{
					Period: row.Period,
					Key:    names[i] + Separator + names[j],
					Value:  row.Value,
				})
			}
		}
	}
	return out
}

// DuoTriples keeps only rows with exactly two distinct entities and emits
// their pair key.
func DuoTriples(rows []EntityRow) []rankmatrix.Triple {
	var out []rankmatrix.Triple
	for _, row := range rows {
		names := distinct(row.Entities)
		if len(names) != 2 {
			continue
		}
		out = append(out, rankmatrix.Triple{Period: row.Period, Key: names[0] + Separator + names[1], Value: row.Value})
	}
	return out
}

// DuoTotals sums values per pair over rows with exactly two entities.
func DuoTotals(rows []EntityRow) map[string]int64 {
	totals := make(map[string]int64)
	for _, t := range DuoTriples(rows) {
		totals[t.Key] += t.Value
	}
	return totals
}

// distinct returns the sorted unique non-empty names.
func distinct(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
