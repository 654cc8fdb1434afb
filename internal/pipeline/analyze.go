package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"voirank/internal/artifact"
	"voirank/internal/dataset"
	"voirank/internal/genrestats"
	"voirank/internal/logging"
	"voirank/internal/survival"
)

// distributionFrom is the first year of the view-count distribution table.
const distributionFrom = 2018

// PopularVideo is the most viewed video of one year.
type PopularVideo struct {
	Year        int       `json:"year"`
	StartTime   time.Time `json:"startTime"`
	Nickname    string    `json:"nickname"`
	Title       string    `json:"title"`
	ViewCounter int64     `json:"viewCounter"`
	ContentID   string    `json:"contentId"`
}

// AnalyzeResult summarizes one category's uploader analysis.
type AnalyzeResult struct {
	Category     string                `json:"category"`
	Files        []string              `json:"files"`
	Uploaders    int                   `json:"uploaders"`
	Newcomers    []survival.YearCount  `json:"newcomers"`
	Annual       []genrestats.YearStat `json:"annual"`
	Continuation []survival.Cohort     `json:"continuation"`
	Lifespan     survival.Lifespan     `json:"lifespan"`
	Popular      []PopularVideo        `json:"popular"`
}

// Analyze writes the uploader and activity reports of category: newcomers
// per debut year, yearly posts and views, the yearly view distribution,
// continuation by debut cohort, the lifespan distribution with its survival
// curve, and the most popular video of each year with its uploader's
// nickname.
func (r *Runner) Analyze(ctx context.Context, category string) (AnalyzeResult, bool, error) {
	result := AnalyzeResult{Category: category}
	records, err := r.Records(ctx, category)
	if err != nil {
		return result, false, fmt.Errorf("analyze %s: %w", category, err)
	}
	if len(records) == 0 {
		return result, false, nil
	}
	logger := r.log(ctx, category)
	window := r.cfg.Analysis.ActiveWindowYears

	uploaders := survival.Uploaders(records)
	result.Uploaders = len(uploaders)
	result.Newcomers = survival.Newcomers(uploaders)
	result.Annual = genrestats.AnnualSeries(records, r.cfg.Analysis.MaxYear)
	result.Continuation = survival.Continuation(uploaders, window, 0)
	result.Lifespan = survival.MeasureLifespan(uploaders, window)
	if ref := result.Lifespan.Reference; !ref.Now.IsZero() {
		logger.Info("activity reference",
			logging.String("latest_post", ref.Now.Format("2006-01-02")),
			logging.String("active_after", ref.Cutoff.Format("2006-01-02")),
			logging.Int("uploaders", result.Uploaders),
			logging.Int("retired", result.Lifespan.Retired),
		)
	}

	dir := filepath.Join(r.cfg.Paths.OutputDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, false, fmt.Errorf("create output dir: %w", err)
	}
	tables := []struct {
		name  string
		table *artifact.Table
	}{
		{"newcomers", newcomerTable(result.Newcomers)},
		{"annual", annualTable(result.Annual)},
		{"distribution", distributionTable(genrestats.Distribution(records, distributionFrom))},
		{"continuation", continuationTable(result.Continuation)},
		{"lifespan", lifespanTable(result.Lifespan)},
		{"survival_curve", curveTable(result.Lifespan.Curve())},
	}
	for _, item := range tables {
		path := filepath.Join(dir, category+"_"+item.name+".csv")
		if err := artifact.WriteTable(path, item.table); err != nil {
			return result, false, fmt.Errorf("write %s: %w", item.name, err)
		}
		result.Files = append(result.Files, path)
	}

	result.Popular = r.popular(ctx, genrestats.MostPopular(dataset.KnownUploaders(records)))
	path := filepath.Join(dir, category+"_most_popular.csv")
	if err := artifact.WriteTable(path, popularTable(result.Popular)); err != nil {
		return result, false, fmt.Errorf("write most_popular: %w", err)
	}
	result.Files = append(result.Files, path)

	logger.Info("uploader analysis written", logging.Int("files", len(result.Files)))
	return result, true, nil
}

// popular resolves nicknames sequentially. Without a nickname source the
// uploader ID is shown instead.
func (r *Runner) popular(ctx context.Context, records []dataset.Record) []PopularVideo {
	out := make([]PopularVideo, 0, len(records))
	for _, rec := range records {
		name := strconv.FormatUint(rec.UserID, 10)
		if r.nicknames != nil {
			name, _ = r.nicknames.Lookup(ctx, rec.UserID)
		}
		out = append(out, PopularVideo{
			Year:        rec.Year(),
			StartTime:   rec.StartTime,
			Nickname:    name,
			Title:       rec.Title,
			ViewCounter: rec.ViewCounter,
			ContentID:   rec.ContentID,
		})
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func newcomerTable(counts []survival.YearCount) *artifact.Table {
	t := &artifact.Table{Header: []string{"year", "newcomers"}}
	for _, c := range counts {
		t.Append(strconv.Itoa(c.Year), strconv.Itoa(c.Count))
	}
	return t
}

func annualTable(stats []genrestats.YearStat) *artifact.Table {
	t := &artifact.Table{Header: []string{"year", "post_count", "total_views", "median_views"}}
	for _, s := range stats {
		t.Append(strconv.Itoa(s.Year), strconv.Itoa(s.Posts), strconv.FormatInt(s.TotalViews, 10), formatFloat(s.MedianViews))
	}
	return t
}

func distributionTable(spreads []genrestats.Spread) *artifact.Table {
	t := &artifact.Table{Header: []string{"year", "post_count", "min", "q1", "median", "q3", "max"}}
	for _, s := range spreads {
		t.Append(strconv.Itoa(s.Year), strconv.Itoa(s.Posts),
			formatFloat(s.Min), formatFloat(s.Q1), formatFloat(s.Median), formatFloat(s.Q3), formatFloat(s.Max))
	}
	return t
}

func continuationTable(cohorts []survival.Cohort) *artifact.Table {
	t := &artifact.Table{Header: []string{"debut_year", "debuts", "active", "rate_percent"}}
	for _, c := range cohorts {
		t.Append(strconv.Itoa(c.Year), strconv.Itoa(c.Debuts), strconv.Itoa(c.Active), formatRate(c.Rate))
	}
	return t
}

func lifespanTable(l survival.Lifespan) *artifact.Table {
	t := &artifact.Table{Header: []string{"years", "count", "cumulative_percent", "survival_percent"}}
	for _, b := range l.Buckets {
		t.Append(strconv.Itoa(b.Years), strconv.Itoa(b.Count), formatRate(b.CumulativePct), formatRate(b.SurvivalPct))
	}
	return t
}

func curveTable(points []survival.CurvePoint) *artifact.Table {
	t := &artifact.Table{Header: []string{"years", "survival_percent"}}
	for _, p := range points {
		t.Append(strconv.Itoa(p.Years), formatRate(p.Rate))
	}
	return t
}

func popularTable(videos []PopularVideo) *artifact.Table {
	t := &artifact.Table{Header: []string{"startTime", "nickname", "title", "viewCounter", "contentId"}}
	for _, v := range videos {
		t.Append(v.StartTime.Format(time.RFC3339), v.Nickname, v.Title, strconv.FormatInt(v.ViewCounter, 10), v.ContentID)
	}
	return t
}
