package survival

import "slices"

// LongestActive returns currently active uploaders ordered by earliest debut,
// at most limit of them. Ties keep user ID order.
func LongestActive(uploaders []Uploader, windowYears, limit int) []Uploader {
	ref, ok := NewReference(uploaders, windowYears)
	if !ok {
		return nil
	}
	var active []Uploader
	for _, u := range uploaders {
		if ref.Active(u) {
			active = append(active, u)
		}
	}
	slices.SortStableFunc(active, func(a, b Uploader) int {
		return a.First.Compare(b.First)
	})
	if limit > 0 && len(active) > limit {
		active = active[:limit]
	}
	return active
}
