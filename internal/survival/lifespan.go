package survival

import "time"

// Bucket counts retired uploaders whose activity lasted Years whole years.
type Bucket struct {
	Years         int
	Count         int
	CumulativePct float64
	SurvivalPct   float64
}

// Lifespan is the distribution of activity periods among retired uploaders.
type Lifespan struct {
	Reference Reference
	Total     int
	Retired   int
	Buckets   []Bucket
}

// CurvePoint is one point of a survival curve.
type CurvePoint struct {
	Years int
	Rate  float64
}

const daysPerYear = 365

// lifespanYears floors the span between first and last post to whole
// 365-day years.
func lifespanYears(u Uploader) int {
	days := int(u.Last.Sub(u.First) / (24 * time.Hour))
	return days / daysPerYear
}

// MeasureLifespan buckets retired uploaders by lifespan. Buckets cover every
// year between the shortest and longest observed lifespan.
func MeasureLifespan(uploaders []Uploader, windowYears int) Lifespan {
	ref, ok := NewReference(uploaders, windowYears)
	if !ok {
		return Lifespan{}
	}
	out := Lifespan{Reference: ref, Total: len(uploaders)}
	counts := make(map[int]int)
	lo, hi := -1, -1
	for _, u := range uploaders {
		if !ref.Retired(u) {
			continue
		}
		out.Retired++
		years := lifespanYears(u)
		counts[years]++
		if lo < 0 || years < lo {
			lo = years
		}
		hi = max(hi, years)
	}
	if out.Retired == 0 {
		return out
	}
	cumulative := 0
	for y := lo; y <= hi; y++ {
		cumulative += counts[y]
		pct := Rate(cumulative, out.Retired)
		out.Buckets = append(out.Buckets, Bucket{Years: y, Count: counts[y], CumulativePct: pct, SurvivalPct: 100 - pct})
	}
	return out
}

// Curve returns the survival curve: 100% at zero years, then the share of
// retired uploaders still posting after each bucket.
func (l Lifespan) Curve() []CurvePoint {
	if len(l.Buckets) == 0 {
		return nil
	}
	out := []CurvePoint{{Years: 0, Rate: 100}}
	for _, b := range l.Buckets {
		out = append(out, CurvePoint{Years: b.Years + 1, Rate: b.SurvivalPct})
	}
	return out
}
