package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"voirank/internal/artifact"
	"voirank/internal/genrestats"
	"voirank/internal/logging"
	"voirank/internal/services"
	"voirank/internal/share"
	"voirank/internal/survival"
)

// ComparisonDir returns the directory for cross-category reports.
func (r *Runner) ComparisonDir() string {
	return filepath.Join(r.cfg.Paths.OutputDir, "comparison")
}

// CategorySurvival is the survival summary of one category.
type CategorySurvival struct {
	Category     string                `json:"category"`
	Label        string                `json:"label"`
	Continuation []survival.Cohort     `json:"continuation"`
	Curve        []survival.CurvePoint `json:"curve"`
}

// SurvivalResult is the outcome of CompareSurvival.
type SurvivalResult struct {
	Categories []CategorySurvival `json:"categories"`
	Files      []string           `json:"files"`
}

// CompareSurvival computes continuation over the configured lookback and
// the lifespan survival curve for each category, and writes both as long
// tables keyed by category.
func (r *Runner) CompareSurvival(ctx context.Context, categories []string) (SurvivalResult, error) {
	var result SurvivalResult
	window := r.cfg.Analysis.ActiveWindowYears
	lookback := r.cfg.Analysis.ContinuationLookbackYears
	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		records, err := r.Records(ctx, category)
		if err != nil {
			return result, fmt.Errorf("survival %s: %w", category, err)
		}
		if len(records) == 0 {
			continue
		}
		uploaders := survival.Uploaders(records)
		result.Categories = append(result.Categories, CategorySurvival{
			Category:     category,
			Label:        r.cfg.CategoryLabel(category),
			Continuation: survival.Continuation(uploaders, window, lookback),
			Curve:        survival.MeasureLifespan(uploaders, window).Curve(),
		})
	}

	continuation := &artifact.Table{Header: []string{"category", "label", "debut_year", "debuts", "active", "rate_percent"}}
	curve := &artifact.Table{Header: []string{"category", "label", "years", "survival_percent"}}
	for _, c := range result.Categories {
		for _, cohort := range c.Continuation {
			continuation.Append(c.Category, c.Label, strconv.Itoa(cohort.Year), strconv.Itoa(cohort.Debuts), strconv.Itoa(cohort.Active), formatRate(cohort.Rate))
		}
		for _, p := range c.Curve {
			curve.Append(c.Category, c.Label, strconv.Itoa(p.Years), formatRate(p.Rate))
		}
	}
	for _, item := range []struct {
		name  string
		table *artifact.Table
	}{
		{"comparison_continuation.csv", continuation},
		{"comparison_survival_curve.csv", curve},
	} {
		path := filepath.Join(r.ComparisonDir(), item.name)
		if err := artifact.WriteTable(path, item.table); err != nil {
			return result, fmt.Errorf("write %s: %w", item.name, err)
		}
		result.Files = append(result.Files, path)
	}
	return result, nil
}

// GenreYear is one category's statistics for one year.
type GenreYear struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	genrestats.YearStat
}

// GenresResult is the outcome of CompareGenres.
type GenresResult struct {
	Rows []GenreYear `json:"rows"`
	File string      `json:"file"`
}

// CompareGenres writes yearly post counts, total views, and median views of
// each category within the period bounds.
func (r *Runner) CompareGenres(ctx context.Context, categories []string) (GenresResult, error) {
	var result GenresResult
	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		records, err := r.Records(ctx, category)
		if err != nil {
			return result, fmt.Errorf("genres %s: %w", category, err)
		}
		label := r.cfg.CategoryLabel(category)
		for _, s := range genrestats.Yearly(records, r.bounds()) {
			result.Rows = append(result.Rows, GenreYear{Category: category, Label: label, YearStat: s})
		}
	}
	t := &artifact.Table{Header: []string{"year", "post_count", "total_views", "median_views", "category", "category_label"}}
	for _, row := range result.Rows {
		t.Append(strconv.Itoa(row.Year), strconv.Itoa(row.Posts), strconv.FormatInt(row.TotalViews, 10), formatFloat(row.MedianViews), row.Category, row.Label)
	}
	result.File = filepath.Join(r.ComparisonDir(), "genre_comparison_yearly.csv")
	if err := artifact.WriteTable(result.File, t); err != nil {
		return result, fmt.Errorf("write genre comparison: %w", err)
	}
	return result, nil
}

// ShareResult is the outcome of Share.
type ShareResult struct {
	Rows    []share.Row `json:"rows"`
	File    string      `json:"file"`
	Fetched bool        `json:"fetched"`
}

// ShareFile returns the platform share table location.
func (r *Runner) ShareFile() string {
	return filepath.Join(r.ComparisonDir(), "nico_vs_voiro.csv")
}

// Share compares the overall category's yearly posts and views with
// platform-wide totals. Platform columns of an existing share table are
// reused unless refresh is set.
func (r *Runner) Share(ctx context.Context, refresh bool) (ShareResult, error) {
	result := ShareResult{File: r.ShareFile()}
	a := r.cfg.Analysis
	logger := r.log(ctx, a.OverallCategory)

	var platform []share.PlatformYear
	if !refresh {
		cached, err := readPlatform(result.File)
		switch {
		case err == nil:
			platform = cached
			logger.Info("platform totals reused", logging.String("path", result.File), logging.Int("years", len(cached)))
		case errors.Is(err, fs.ErrNotExist):
		default:
			logging.WarnWithContext(logger, "share table unreadable; fetching platform totals", "share_cache_invalid",
				logging.String("path", result.File),
				logging.Error(err),
			)
		}
	}
	if platform == nil {
		if r.platform == nil {
			return result, services.Wrap(services.ErrConfiguration, "pipeline", "share", "no platform totals source", nil)
		}
		fetched, err := r.platform.Years(ctx, a.MinYear, a.MaxYear)
		if err != nil {
			return result, fmt.Errorf("platform totals: %w", err)
		}
		platform = fetched
		result.Fetched = true
	}

	records, err := r.Records(ctx, a.OverallCategory)
	if err != nil {
		return result, fmt.Errorf("share %s: %w", a.OverallCategory, err)
	}
	result.Rows = share.Merge(platform, genrestats.Yearly(records, r.bounds()))
	if err := artifact.WriteTable(result.File, share.Table(result.Rows)); err != nil {
		return result, fmt.Errorf("write share table: %w", err)
	}
	return result, nil
}

func readPlatform(path string) ([]share.PlatformYear, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return share.ReadPlatform(f)
}
