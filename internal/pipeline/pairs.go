package pipeline

import (
	"context"
	"fmt"
	"strings"

	"voirank/internal/chart"
	"voirank/internal/dataset"
	"voirank/internal/pairing"
)

// EntityRows reduces dated records to their year, extracted entities, and
// views. sets must be aligned with records.
func EntityRows(records []dataset.Record, sets [][]string) []pairing.EntityRow {
	rows := make([]pairing.EntityRow, 0, len(records))
	for i, rec := range records {
		year := rec.Year()
		if year == 0 {
			continue
		}
		rows = append(rows, pairing.EntityRow{Period: year, Entities: sets[i], Value: rec.ViewCounter})
	}
	return rows
}

// Pairs ranks character pairs by yearly views for category, or the
// configured pair category when category is blank. Every pair in a video is
// credited the video's full view count, so one video counts toward several
// pairs.
func (r *Runner) Pairs(ctx context.Context, category string) (ChartOutput, bool, error) {
	if strings.TrimSpace(category) == "" {
		category = r.cfg.Analysis.PairCategory
	}
	records, err := r.Records(ctx, category)
	if err != nil {
		return ChartOutput{}, false, fmt.Errorf("pairs %s: %w", category, err)
	}
	if len(records) == 0 {
		return ChartOutput{}, false, nil
	}
	records = dataset.InYears(records, r.cfg.Analysis.MinYear, r.cfg.Analysis.MaxYear)
	ex, err := r.Extractor()
	if err != nil {
		return ChartOutput{}, false, err
	}
	rows := EntityRows(records, ex.ExtractAll(records))

	return r.writeRanking(ctx, rankingJob{
		category: category,
		name:     category + "_pairings",
		chart:    "bump_chart_" + category + "_pairs.json",
		triples:  pairing.ExpandToPairs(rows),
		bump: chart.BumpChart{
			Title:      fmt.Sprintf("ボイロ実況 人気ペア推移 (%s)", r.cfg.CategoryLabel(category)),
			TopN:       r.cfg.Analysis.PairTopN,
			Cutoff:     r.cfg.Analysis.PairCutoff,
			Colors:     r.cfg.Colors,
			PairColors: chart.DefaultPairColors(),
			Palette:    chart.Tab20,
			Labels:     chart.LabelDataEnds,
		},
	})
}
