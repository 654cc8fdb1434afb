package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"voirank/internal/artifact"
	"voirank/internal/chart"
	"voirank/internal/config"
	"voirank/internal/logging"
	"voirank/internal/rankmatrix"
)

// ChartOutput lists the artifacts written for one ranked matrix.
type ChartOutput struct {
	Name     string               `json:"name"`
	Category string               `json:"category"`
	Matrices artifact.MatrixPaths `json:"matrices"`
	Chart    string               `json:"chart"`
	Periods  []int                `json:"periods"`
	Visible  []string             `json:"visible"`
}

// Files returns every path in the output.
func (o ChartOutput) Files() []string {
	return []string{o.Matrices.Values, o.Matrices.Ranks, o.Chart}
}

// HistoryResult is the outcome of History.
type HistoryResult struct {
	Outputs []ChartOutput `json:"outputs"`
}

// Files returns every path written.
func (r HistoryResult) Files() []string {
	var out []string
	for _, o := range r.Outputs {
		out = append(out, o.Files()...)
	}
	return out
}

// overallMatrix names the overall category's matrix files in the history
// directory.
const overallMatrix = "overall_views"

func (r *Runner) bounds() *rankmatrix.Bounds {
	return &rankmatrix.Bounds{Min: r.cfg.Analysis.MinYear, Max: r.cfg.Analysis.MaxYear}
}

// History ranks characters by yearly views for the overall category and
// each history category. Noise exclusions apply to the overall category
// only.
func (r *Runner) History(ctx context.Context) (HistoryResult, error) {
	var result HistoryResult
	a := r.cfg.Analysis

	overall, err := r.Mentions(ctx, a.OverallCategory)
	if err != nil {
		return result, fmt.Errorf("history %s: %w", a.OverallCategory, err)
	}
	overall = ExcludeNoise(overall, a.Exclusions)
	out, ok, err := r.writeRanking(ctx, rankingJob{
		category: a.OverallCategory,
		name:     overallMatrix,
		chart:    "bump_chart_overall.json",
		triples:  artifact.Triples(overall),
		bump:     r.singleChart("ボイロキャラクター人気順位推移 (全体)"),
	})
	if err != nil {
		return result, err
	}
	if ok {
		result.Outputs = append(result.Outputs, out)
	}

	for _, genre := range a.HistoryCategories {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		mentions, err := r.Mentions(ctx, genre)
		if err != nil {
			return result, fmt.Errorf("history %s: %w", genre, err)
		}
		out, ok, err := r.writeRanking(ctx, rankingJob{
			category: genre,
			name:     genre + "_views",
			chart:    "bump_chart_" + genre + ".json",
			triples:  artifact.Triples(mentions),
			bump:     r.singleChart(fmt.Sprintf("ボイロキャラクター人気順位推移 (%s)", r.cfg.CategoryLabel(genre))),
		})
		if err != nil {
			return result, err
		}
		if ok {
			result.Outputs = append(result.Outputs, out)
		}
	}
	return result, nil
}

func (r *Runner) singleChart(title string) chart.BumpChart {
	return chart.BumpChart{
		Title:   title,
		TopN:    r.cfg.Analysis.SingleTopN,
		Cutoff:  r.cfg.Analysis.SingleCutoff,
		Colors:  r.cfg.Colors,
		Palette: chart.Tab20,
		Labels:  chart.LabelVisibleSpan,
	}
}

// ExcludeNoise drops mentions matching any (entity, year) exclusion.
func ExcludeNoise(mentions []artifact.Mention, exclusions []config.Exclusion) []artifact.Mention {
	if len(exclusions) == 0 {
		return mentions
	}
	kept := make([]artifact.Mention, 0, len(mentions))
	for _, m := range mentions {
		drop := false
		for _, ex := range exclusions {
			if m.Character == ex.Entity && m.Year == ex.Year {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, m)
		}
	}
	return kept
}

type rankingJob struct {
	category string
	name     string
	chart    string
	triples  []rankmatrix.Triple
	bump     chart.BumpChart
}

// writeRanking aggregates, ranks, and writes matrices and chart data. ok is
// false when nothing fell inside the period bounds.
func (r *Runner) writeRanking(ctx context.Context, job rankingJob) (ChartOutput, bool, error) {
	logger := r.log(ctx, job.category)
	values, ranks := rankmatrix.Build(job.triples, r.bounds())
	if values.Empty() {
		logger.Info("no data within period bounds; skipping", logging.String("matrix", job.name))
		return ChartOutput{}, false, nil
	}
	dir := r.cfg.HistoryDir()
	paths, err := artifact.WriteMatrices(dir, job.name, values, ranks)
	if err != nil {
		return ChartOutput{}, false, fmt.Errorf("write %s matrices: %w", job.name, err)
	}
	data := job.bump.Build(ranks)
	chartPath := filepath.Join(dir, job.chart)
	if err := chart.WriteFile(chartPath, data); err != nil {
		return ChartOutput{}, false, fmt.Errorf("write %s: %w", job.chart, err)
	}
	out := ChartOutput{
		Name:     job.name,
		Category: job.category,
		Matrices: paths,
		Chart:    chartPath,
		Periods:  ranks.Periods(),
	}
	for _, s := range data.Series {
		out.Visible = append(out.Visible, s.Key)
	}
	logger.Info("ranking written",
		logging.String("matrix", job.name),
		logging.Int("periods", len(out.Periods)),
		logging.Int("keys", len(ranks.Keys())),
		logging.Int("visible", len(out.Visible)),
	)
	return out, true, nil
}
