package share

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"voirank/internal/artifact"
	"voirank/internal/fileutil"
	"voirank/internal/genrestats"
)

// Header is the column layout of the share table.
var Header = []string{
	"year", "nico_total_videos", "nico_total_views",
	"voiro_videos", "voiro_views", "video_ratio_percent", "view_ratio_percent",
}

// PlatformYear holds the platform-wide videos and views added in one year.
type PlatformYear struct {
	Year   int
	Videos int64
	Views  int64
}

// Row is one year of the comparison.
type Row struct {
	Year           int
	PlatformVideos int64
	PlatformViews  int64
	LocalVideos    int64
	LocalViews     int64
	VideoPct       float64
	ViewPct        float64
}

// Percent returns part/total*100, or 0 when total is zero.
func Percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Merge joins platform totals with local yearly statistics. Every platform
// year yields a row; years without local data carry zeros.
func Merge(platform []PlatformYear, local []genrestats.YearStat) []Row {
	byYear := make(map[int]genrestats.YearStat, len(local))
	for _, s := range local {
		byYear[s.Year] = s
	}
	rows := make([]Row, 0, len(platform))
	for _, p := range platform {
		s := byYear[p.Year]
		row := Row{
			Year:           p.Year,
			PlatformVideos: p.Videos,
			PlatformViews:  p.Views,
			LocalVideos:    int64(s.Posts),
			LocalViews:     s.TotalViews,
		}
		row.VideoPct = Percent(row.LocalVideos, row.PlatformVideos)
		row.ViewPct = Percent(row.LocalViews, row.PlatformViews)
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b Row) int { return a.Year - b.Year })
	return rows
}

// Table formats rows for CSV output.
func Table(rows []Row) *artifact.Table {
	t := &artifact.Table{Header: Header}
	for _, r := range rows {
		t.Append(
			strconv.Itoa(r.Year),
			strconv.FormatInt(r.PlatformVideos, 10),
			strconv.FormatInt(r.PlatformViews, 10),
			strconv.FormatInt(r.LocalVideos, 10),
			strconv.FormatInt(r.LocalViews, 10),
			strconv.FormatFloat(r.VideoPct, 'f', -1, 64),
			strconv.FormatFloat(r.ViewPct, 'f', -1, 64),
		)
	}
	return t
}

// ReadPlatform extracts the platform columns from a previously written share
// table so the external totals need not be fetched again.
func ReadPlatform(r io.Reader) ([]PlatformYear, error) {
	cr := csv.NewReader(fileutil.SkipBOM(r))
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range Header[:3] {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("header: missing column %q", name)
		}
	}
	var out []PlatformYear
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		year, err := strconv.Atoi(strings.TrimSpace(record[col["year"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: year: %w", line, err)
		}
		videos, err := parseWhole(record[col["nico_total_videos"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: videos: %w", line, err)
		}
		views, err := parseWhole(record[col["nico_total_views"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: views: %w", line, err)
		}
		out = append(out, PlatformYear{Year: year, Videos: videos, Views: views})
	}
	return out, nil
}

func parseWhole(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
