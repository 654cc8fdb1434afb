package survival

// Cohort is the continuation result for uploaders who debuted in Year.
type Cohort struct {
	Year   int
	Debuts int
	Active int
	Rate   float64
}

// Continuation reports, per debut year, how many uploaders are still active.
// lookbackYears limits the result to the latest debut year and the
// lookbackYears before it; zero or less keeps every year. Years without
// debuts are omitted.
func Continuation(uploaders []Uploader, windowYears, lookbackYears int) []Cohort {
	ref, ok := NewReference(uploaders, windowYears)
	if !ok {
		return nil
	}
	debuts := make(map[int]int)
	active := make(map[int]int)
	minYear, maxYear := 0, 0
	for i, u := range uploaders {
		y := u.DebutYear()
		if i == 0 {
			minYear, maxYear = y, y
		}
		minYear = min(minYear, y)
		maxYear = max(maxYear, y)
		debuts[y]++
		if ref.Active(u) {
			active[y]++
		}
	}
	if lookbackYears > 0 {
		minYear = max(minYear, maxYear-lookbackYears)
	}
	var out []Cohort
	for y := minYear; y <= maxYear; y++ {
		if debuts[y] == 0 {
			continue
		}
		out = append(out, Cohort{Year: y, Debuts: debuts[y], Active: active[y], Rate: Rate(active[y], debuts[y])})
	}
	return out
}
