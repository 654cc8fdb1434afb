package genrestats

import (
	"slices"

	"voirank/internal/dataset"
	"voirank/internal/rankmatrix"
)

// YearStat aggregates the posts of one year.
type YearStat struct {
	Year        int
	Posts       int
	TotalViews  int64
	MedianViews float64
	Padded      bool
}

// byYear groups view counts by record year. Records without a timestamp are
// dropped.
func byYear(records []dataset.Record) map[int][]int64 {
	out := make(map[int][]int64)
	for _, r := range records {
		if y := r.Year(); y != 0 {
			out[y] = append(out[y], r.ViewCounter)
		}
	}
	return out
}

func stat(year int, views []int64) YearStat {
	s := YearStat{Year: year, Posts: len(views), MedianViews: Median(views)}
	for _, v := range views {
		s.TotalViews += v
	}
	return s
}

// Yearly returns statistics for each year with posts inside bounds.
func Yearly(records []dataset.Record, bounds *rankmatrix.Bounds) []YearStat {
	groups := byYear(records)
	years := make([]int, 0, len(groups))
	for y := range groups {
		if bounds.Contains(y) {
			years = append(years, y)
		}
	}
	slices.Sort(years)
	out := make([]YearStat, 0, len(years))
	for _, y := range years {
		out = append(out, stat(y, groups[y]))
	}
	return out
}

// AnnualSeries returns statistics for every year from the first post through
// maxYear. Years without posts are zero-filled and marked Padded.
func AnnualSeries(records []dataset.Record, maxYear int) []YearStat {
	groups := byYear(records)
	if len(groups) == 0 {
		return nil
	}
	first := maxYear
	for y := range groups {
		first = min(first, y)
	}
	out := make([]YearStat, 0, maxYear-first+1)
	for y := first; y <= maxYear; y++ {
		views, ok := groups[y]
		if !ok {
			out = append(out, YearStat{Year: y, Padded: true})
			continue
		}
		out = append(out, stat(y, views))
	}
	return out
}

// Median returns the median of values, averaging the middle pair for even
// counts. An empty slice yields 0.
func Median(values []int64) float64 {
	return Quantile(values, 0.5)
}

// Quantile returns the q-quantile using linear interpolation between closest
// ranks. An empty slice yields 0.
func Quantile(values []int64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return float64(sorted[len(sorted)-1])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}

// Spread summarizes the view distribution of one year.
type Spread struct {
	Year   int
	Posts  int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Distribution returns view-count quartiles per year from fromYear on.
func Distribution(records []dataset.Record, fromYear int) []Spread {
	groups := byYear(records)
	var years []int
	for y := range groups {
		if y >= fromYear {
			years = append(years, y)
		}
	}
	slices.Sort(years)
	out := make([]Spread, 0, len(years))
	for _, y := range years {
		v := groups[y]
		out = append(out, Spread{
			Year:   y,
			Posts:  len(v),
			Min:    Quantile(v, 0),
			Q1:     Quantile(v, 0.25),
			Median: Quantile(v, 0.5),
			Q3:     Quantile(v, 0.75),
			Max:    Quantile(v, 1),
		})
	}
	return out
}
