package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"voirank/internal/animation"
	"voirank/internal/artifact"
	"voirank/internal/chart"
	"voirank/internal/icons"
	"voirank/internal/logging"
	"voirank/internal/rankmatrix"
)

// AnimateResult is the outcome of Animate.
type AnimateResult struct {
	File    string   `json:"file"`
	Frames  int      `json:"frames"`
	Actors  int      `json:"actors"`
	Missing []string `json:"missingIcons,omitempty"`
}

// Animate computes the frames of the overall rank animation. Keys that
// finish within the cutoff lead; keys that were ever within it are drawn in
// the background. Icons are matched by name and supply line colours for
// characters without a configured colour.
func (r *Runner) Animate(ctx context.Context) (AnimateResult, bool, error) {
	var result AnimateResult
	a := r.cfg.Analysis
	logger := r.log(ctx, a.OverallCategory)
	ranks, err := r.overallRanks(ctx)
	if err != nil {
		return result, false, fmt.Errorf("animate %s: %w", a.OverallCategory, err)
	}
	if len(ranks.Periods()) == 0 {
		return result, false, nil
	}

	set, err := icons.LoadDir(r.cfg.Paths.IconDir)
	if err != nil {
		return result, false, err
	}
	leading, background := animation.Cast(ranks, a.SingleCutoff)
	keys := slices.Concat(leading, background)
	assigned := icons.Assign(set, keys, r.cfg.Colors, func(path string, err error) {
		logging.WarnWithContext(logger, "icon colour extraction failed", "icon_decode_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "palette colour used instead"),
		)
	})
	for _, key := range assigned.Missing {
		logger.Info("no icon matched", logging.String("character", key))
	}

	data := chart.RankAnimation{
		TitleFormat:    "ボイロキャラクター人気順位推移 (%d年)",
		Cutoff:         a.SingleCutoff,
		StepsPerPeriod: r.cfg.Animation.StepsPerPeriod,
		Colors:         assigned.Colors,
		Icons:          assigned.Icons,
		Palette:        chart.Tab20,
	}.Build(ranks)

	result.File = filepath.Join(r.cfg.HistoryDir(), "character_ranking_history.json")
	if err := chart.WriteFile(result.File, data); err != nil {
		return result, false, fmt.Errorf("write animation: %w", err)
	}
	result.Frames = len(data.Frames)
	result.Actors = len(data.Actors)
	result.Missing = assigned.Missing
	logger.Info("rank animation written",
		logging.Int("frames", result.Frames),
		logging.Int("leading", len(leading)),
		logging.Int("background", len(background)),
		logging.Int("icons", len(assigned.Icons)),
	)
	return result, true, nil
}

// overallRanks reuses the overall value matrix written by History when the
// cache is enabled and the file is readable. Otherwise the ranks are built
// from the mention cache. Period bounds are applied either way.
func (r *Runner) overallRanks(ctx context.Context) (*rankmatrix.RankMatrix, error) {
	a := r.cfg.Analysis
	logger := r.log(ctx, a.OverallCategory)
	if !r.noCache {
		path := filepath.Join(r.cfg.HistoryDir(), overallMatrix+"_race.csv")
		values, err := readValuesFile(path)
		switch {
		case err == nil:
			logger.Info("overall matrix reused", logging.String("path", path), logging.Int("keys", len(values.Keys())))
			_, ranks := rankmatrix.Build(matrixTriples(values), r.bounds())
			return ranks, nil
		case errors.Is(err, fs.ErrNotExist):
		default:
			logging.WarnWithContext(logger, "overall matrix unreadable; rebuilding", "matrix_invalid",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "ranks rebuilt from mentions"),
			)
		}
	}

	mentions, err := r.Mentions(ctx, a.OverallCategory)
	if err != nil {
		return nil, err
	}
	mentions = ExcludeNoise(mentions, a.Exclusions)
	_, ranks := rankmatrix.Build(artifact.Triples(mentions), r.bounds())
	return ranks, nil
}

func readValuesFile(path string) (*rankmatrix.ValueMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	values, err := rankmatrix.ReadValuesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return values, nil
}

func matrixTriples(m *rankmatrix.ValueMatrix) []rankmatrix.Triple {
	var rows []rankmatrix.Triple
	for _, period := range m.Periods() {
		for key, value := range m.Period(period) {
			rows = append(rows, rankmatrix.Triple{Period: period, Key: key, Value: value})
		}
	}
	return rows
}
