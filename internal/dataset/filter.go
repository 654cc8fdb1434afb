package dataset

import (
	"fmt"
	"regexp"
)

// TagFilter drops records whose joined tag string matches a case-insensitive
// pattern. A nil filter keeps everything.
type TagFilter struct {
	re *regexp.Regexp
}

// NewTagFilter compiles pattern. An empty pattern returns a nil filter.
func NewTagFilter(pattern string) (*TagFilter, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compile tag filter: %w", err)
	}
	return &TagFilter{re: re}, nil
}

// Matches reports whether the record would be excluded.
func (f *TagFilter) Matches(r Record) bool {
	if f == nil || len(r.Tags) == 0 {
		return false
	}
	return f.re.MatchString(r.JoinedTags())
}

// Exclude returns the records that do not match.
func (f *TagFilter) Exclude(records []Record) []Record {
	if f == nil {
		return records
	}
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if !f.Matches(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// InYears keeps records whose year lies within [minYear, maxYear].
func InYears(records []Record, minYear, maxYear int) []Record {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if y := r.Year(); y >= minYear && y <= maxYear {
			kept = append(kept, r)
		}
	}
	return kept
}

// KnownUploaders drops records without an uploader ID.
func KnownUploaders(records []Record) []Record {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.UserID != 0 {
			kept = append(kept, r)
		}
	}
	return kept
}
