package dataset

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Record is one video's metadata as stored in a snapshot blob.
type Record struct {
	ContentID   string
	Title       string
	UserID      uint64 // 0 when the uploader is unknown
	ViewCounter int64
	StartTime   time.Time
	Tags        []string
}

// Year returns the calendar year of StartTime in the record's own offset, or
// 0 when the timestamp was absent or unparseable.
func (r Record) Year() int {
	if r.StartTime.IsZero() {
		return 0
	}
	return r.StartTime.Year()
}

// JoinedTags returns the tags joined by single spaces.
func (r Record) JoinedTags() string {
	return JoinTags(r.Tags)
}

// JoinTags joins tags with single spaces, the form the search API emits.
func JoinTags(tags []string) string {
	return strings.Join(tags, " ")
}

type wireRecord struct {
	ContentID   string          `json:"contentId"`
	Title       string          `json:"title"`
	UserID      json.RawMessage `json:"userId"`
	ViewCounter json.RawMessage `json:"viewCounter"`
	StartTime   json.RawMessage `json:"startTime"`
	Tags        json.RawMessage `json:"tags"`
}

// UnmarshalJSON decodes a record with best-effort coercion: numeric fields
// accept numbers, numeric strings, or null; tags accept a space-separated
// string, an array of strings, or null. Nothing here fails on bad values.
func (r *Record) UnmarshalJSON(data []byte) error {
	var wire wireRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.ContentID = wire.ContentID
	r.Title = wire.Title
	r.UserID = uint64(max(coerceInt(wire.UserID), 0))
	r.ViewCounter = max(coerceInt(wire.ViewCounter), 0)
	r.StartTime = coerceTime(wire.StartTime)
	r.Tags = coerceTags(wire.Tags)
	return nil
}

// MarshalJSON writes the record in the search API's shape with tags as a
// single space-separated string.
func (r Record) MarshalJSON() ([]byte, error) {
	type out struct {
		ContentID   string  `json:"contentId"`
		Title       string  `json:"title"`
		UserID      *uint64 `json:"userId"`
		ViewCounter int64   `json:"viewCounter"`
		StartTime   string  `json:"startTime,omitempty"`
		Tags        *string `json:"tags"`
	}
	o := out{ContentID: r.ContentID, Title: r.Title, ViewCounter: r.ViewCounter}
	if r.UserID != 0 {
		id := r.UserID
		o.UserID = &id
	}
	if !r.StartTime.IsZero() {
		o.StartTime = r.StartTime.Format(time.RFC3339)
	}
	if r.Tags != nil {
		joined := JoinTags(r.Tags)
		o.Tags = &joined
	}
	return json.Marshal(o)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func coerceInt(raw json.RawMessage) int64 {
	if isNull(raw) {
		return 0
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		if v, err := num.Int64(); err == nil {
			return v
		}
		if f, err := num.Float64(); err == nil {
			return int64(f)
		}
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f)
		}
	}
	return 0
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
}

func coerceTime(raw json.RawMessage) time.Time {
	if isNull(raw) {
		return time.Time{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func coerceTags(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return strings.Fields(joined)
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		tags := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				tags = append(tags, strings.Fields(s)...)
			}
		}
		return tags
	}
	return nil
}
