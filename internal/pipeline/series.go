package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"voirank/internal/artifact"
	"voirank/internal/chart"
	"voirank/internal/rankmatrix"
	"voirank/internal/services"
	"voirank/internal/textutil"
)

const defaultSeriesColor = "#39ff14"

// SeriesRequest selects one character's cumulative view series.
type SeriesRequest struct {
	Entity   string
	Category string
	FromYear int
}

// SeriesResult is the outcome of Series.
type SeriesResult struct {
	Entity string                   `json:"entity"`
	Points []rankmatrix.SeriesPoint `json:"points"`
	Totals []int64                  `json:"totals"`
	Table  string                   `json:"table"`
	Chart  string                   `json:"chart"`
}

// Series writes the yearly and cumulative views of one character from
// FromYear through the configured last year, zero-filling years without
// videos, and the frames of its growing bar chart.
func (r *Runner) Series(ctx context.Context, req SeriesRequest) (SeriesResult, error) {
	entity := strings.TrimSpace(req.Entity)
	result := SeriesResult{Entity: entity}
	if entity == "" {
		return result, services.Wrap(services.ErrValidation, "pipeline", "series", "entity is required", nil)
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = r.cfg.Analysis.OverallCategory
	}
	maxYear := r.cfg.Analysis.MaxYear
	from := req.FromYear
	if from == 0 {
		from = r.cfg.Analysis.MinYear
	}
	if from > maxYear {
		return result, services.Wrap(services.ErrValidation, "pipeline", "series", fmt.Sprintf("from year %d is after %d", from, maxYear), nil)
	}

	mentions, err := r.Mentions(ctx, category)
	if err != nil {
		return result, fmt.Errorf("series %s: %w", category, err)
	}
	var rows []rankmatrix.Triple
	for _, t := range artifact.Triples(mentions) {
		if t.Key == entity {
			rows = append(rows, t)
		}
	}
	bounds := rankmatrix.Bounds{Min: from, Max: maxYear}
	values := rankmatrix.Aggregate(rows, &bounds)
	result.Points = rankmatrix.PadSeries(values.Series(entity), bounds)
	result.Totals = rankmatrix.Cumulative(result.Points)

	t := &artifact.Table{Header: []string{"year", "viewCounter", "cumulativeViewCounter"}}
	for i, p := range result.Points {
		t.Append(strconv.Itoa(p.Period), strconv.FormatInt(p.Value, 10), strconv.FormatInt(result.Totals[i], 10))
	}
	stem := fmt.Sprintf("%s_cumulative_stats_%s_%d", textutil.SanitizeFileName(entity), category, from)
	result.Table = filepath.Join(r.cfg.Paths.OutputDir, stem+".csv")
	if err := artifact.WriteTable(result.Table, t); err != nil {
		return result, fmt.Errorf("write series: %w", err)
	}

	color, ok := r.cfg.Colors[entity]
	if !ok {
		color = defaultSeriesColor
	}
	data := chart.BarRace{
		Title:           fmt.Sprintf("%s累計再生数の推移 (%d-%d)", entity, from, maxYear),
		Color:           color,
		FramesPerPeriod: r.cfg.Animation.FramesPerPeriod,
		HoldFrames:      r.cfg.Animation.HoldFrames,
	}.Build(result.Points)
	result.Chart = filepath.Join(r.cfg.Paths.OutputDir, stem+".json")
	if err := chart.WriteFile(result.Chart, data); err != nil {
		return result, fmt.Errorf("write bar race: %w", err)
	}
	return result, nil
}
