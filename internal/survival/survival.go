package survival

import (
	"slices"
	"time"

	"voirank/internal/dataset"
)

// Uploader summarizes one uploader's posting history.
type Uploader struct {
	UserID uint64
	First  time.Time
	Last   time.Time
	Posts  int
	Views  int64
}

// DebutYear is the calendar year of the first post.
func (u Uploader) DebutYear() int { return u.First.Year() }

// Uploaders groups records by uploader, ordered by user ID.
func Uploaders(records []dataset.Record) []Uploader {
	byID := make(map[uint64]*Uploader)
	for _, r := range records {
		if r.UserID == 0 || r.StartTime.IsZero() {
			continue
		}
		u, ok := byID[r.UserID]
		if !ok {
			u = &Uploader{UserID: r.UserID, First: r.StartTime, Last: r.StartTime}
			byID[r.UserID] = u
		}
		if r.StartTime.Before(u.First) {
			u.First = r.StartTime
		}
		if r.StartTime.After(u.Last) {
			u.Last = r.StartTime
		}
		u.Posts++
		u.Views += r.ViewCounter
	}
	out := make([]Uploader, 0, len(byID))
	for _, u := range byID {
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b Uploader) int {
		switch {
		case a.UserID < b.UserID:
			return -1
		case a.UserID > b.UserID:
			return 1
		}
		return 0
	})
	return out
}

// Reference fixes the instant activity is measured against.
type Reference struct {
	Now    time.Time
	Cutoff time.Time
}

// NewReference uses the latest post among known uploaders as now and sets
// the cutoff windowYears earlier. ok is false when there are no such posts.
func NewReference(uploaders []Uploader, windowYears int) (Reference, bool) {
	var now time.Time
	for _, u := range uploaders {
		if u.Last.After(now) {
			now = u.Last
		}
	}
	if now.IsZero() {
		return Reference{}, false
	}
	return Reference{Now: now, Cutoff: now.AddDate(-windowYears, 0, 0)}, true
}

// Active reports whether u posted after the cutoff.
func (r Reference) Active(u Uploader) bool { return u.Last.After(r.Cutoff) }

// Retired reports whether u's last post predates the cutoff.
func (r Reference) Retired(u Uploader) bool { return u.Last.Before(r.Cutoff) }

// Rate returns part/total as a percentage, or 0 for an empty total.
func Rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// YearCount is a count for one calendar year.
type YearCount struct {
	Year  int
	Count int
}

// Newcomers counts uploaders by debut year over the full range between the
// first and last debut, zero-filling years without debuts.
func Newcomers(uploaders []Uploader) []YearCount {
	if len(uploaders) == 0 {
		return nil
	}
	counts := make(map[int]int)
	minYear, maxYear := uploaders[0].DebutYear(), uploaders[0].DebutYear()
	for _, u := range uploaders {
		y := u.DebutYear()
		counts[y]++
		minYear = min(minYear, y)
		maxYear = max(maxYear, y)
	}
	out := make([]YearCount, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		out = append(out, YearCount{Year: y, Count: counts[y]})
	}
	return out
}
