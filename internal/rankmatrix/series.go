package rankmatrix

// SeriesPoint is one display point. Padded points fill periods with no
// observation and carry Value 0; they never take part in ranking.
type SeriesPoint struct {
	Period int   `json:"period"`
	Value  int64 `json:"value"`
	Padded bool  `json:"padded,omitempty"`
}

// PadSeries expands points across every period in bounds, zero-filling the
// gaps for presentation.
func PadSeries(points map[int]int64, bounds Bounds) []SeriesPoint {
	if bounds.Max < bounds.Min {
		return nil
	}
	out := make([]SeriesPoint, 0, bounds.Max-bounds.Min+1)
	for period := bounds.Min; period <= bounds.Max; period++ {
		if v, ok := points[period]; ok {
			out = append(out, SeriesPoint{Period: period, Value: v})
			continue
		}
		out = append(out, SeriesPoint{Period: period, Padded: true})
	}
	return out
}

// Cumulative returns running totals of a padded series.
func Cumulative(points []SeriesPoint) []int64 {
	out := make([]int64, len(points))
	var total int64
	for i, p := range points {
		total += p.Value
		out[i] = total
	}
	return out
}
