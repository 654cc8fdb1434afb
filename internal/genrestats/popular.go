package genrestats

import (
	"voirank/internal/dataset"
)

// MostPopular returns the most viewed record of each year between the first
// and last post. Years without posts are skipped; ties keep the earlier
// record in input order.
func MostPopular(records []dataset.Record) []dataset.Record {
	best := make(map[int]int)
	minYear, maxYear := 0, 0
	for i, r := range records {
		y := r.Year()
		if y == 0 {
			continue
		}
		if minYear == 0 || y < minYear {
			minYear = y
		}
		maxYear = max(maxYear, y)
		if j, ok := best[y]; !ok || r.ViewCounter > records[j].ViewCounter {
			best[y] = i
		}
	}
	var out []dataset.Record
	for y := minYear; y <= maxYear && minYear != 0; y++ {
		if i, ok := best[y]; ok {
			out = append(out, records[i])
		}
	}
	return out
}
