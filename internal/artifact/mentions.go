package artifact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"voirank/internal/fileutil"
	"voirank/internal/rankmatrix"
)

// MentionHeader is the column layout of the mention cache.
var MentionHeader = []string{"year", "character", "viewCounter", "contentId", "startTime"}

// Mention is one (record, entity) row of the exploded extraction result.
type Mention struct {
	Year        int
	Character   string
	ViewCounter int64
	ContentID   string
	StartTime   time.Time
}

// Triples converts mentions into aggregation rows keyed by character.
func Triples(mentions []Mention) []rankmatrix.Triple {
	out := make([]rankmatrix.Triple, 0, len(mentions))
	for _, m := range mentions {
		out = append(out, rankmatrix.Triple{Period: m.Year, Key: m.Character, Value: m.ViewCounter})
	}
	return out
}

// MentionCachePath returns <dir>/<category>_processed.csv.
func MentionCachePath(dir, category string) string {
	return filepath.Join(dir, category+"_processed.csv")
}

// WriteMentions writes mentions to path atomically.
func WriteMentions(path string, mentions []Mention) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return EncodeMentions(w, mentions)
	})
}

// EncodeMentions writes the mention cache layout to w.
func EncodeMentions(w io.Writer, mentions []Mention) error {
	if _, err := io.WriteString(w, fileutil.UTF8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(MentionHeader); err != nil {
		return err
	}
	for _, m := range mentions {
		start := ""
		if !m.StartTime.IsZero() {
			start = m.StartTime.Format(time.RFC3339)
		}
		row := []string{
			strconv.Itoa(m.Year),
			m.Character,
			strconv.FormatInt(m.ViewCounter, 10),
			m.ContentID,
			start,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMentions loads a mention cache. A missing file returns an error
// satisfying errors.Is(err, os.ErrNotExist).
func ReadMentions(path string) ([]Mention, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mentions, err := DecodeMentions(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return mentions, nil
}

// DecodeMentions parses the mention cache layout. Columns are located by
// header name so files with extra columns still load.
func DecodeMentions(r io.Reader) ([]Mention, error) {
	cr := csv.NewReader(fileutil.SkipBOM(r))
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"year", "character", "viewCounter"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("header: missing column %q", required)
		}
	}
	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var out []Mention
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		year, err := strconv.Atoi(field(record, "year"))
		if err != nil {
			return nil, fmt.Errorf("line %d: year: %w", line, err)
		}
		views, err := parseCount(field(record, "viewCounter"))
		if err != nil {
			return nil, fmt.Errorf("line %d: viewCounter: %w", line, err)
		}
		m := Mention{
			Year:        year,
			Character:   field(record, "character"),
			ViewCounter: views,
			ContentID:   field(record, "contentId"),
		}
		if raw := field(record, "startTime"); raw != "" {
			m.StartTime = parseTime(raw)
		}
		out = append(out, m)
	}
	return out, nil
}

func parseCount(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// parseTime accepts RFC 3339 and the space-separated form older caches used.
func parseTime(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
