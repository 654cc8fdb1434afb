package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"voirank/internal/artifact"
	"voirank/internal/fileutil"
	"voirank/internal/logging"
	"voirank/internal/report"
)

// statsTopN bounds the latest-year leaderboard logged with the report.
const statsTopN = 15

// StatsResult is the outcome of CharacterStats.
type StatsResult struct {
	Report report.CharacterReport `json:"report"`
	File   string                 `json:"file"`
}

// CharacterStats builds the Markdown report for the configured characters:
// latest-year and all-time views and ranks in the overall category, plus
// latest-year ranks in every other category.
func (r *Runner) CharacterStats(ctx context.Context) (StatsResult, error) {
	var result StatsResult
	a := r.cfg.Analysis
	categories := append([]string{a.OverallCategory}, a.HistoryCategories...)

	var sources []report.Source
	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		mentions, err := r.Mentions(ctx, category)
		if err != nil {
			return result, fmt.Errorf("stats %s: %w", category, err)
		}
		if len(mentions) == 0 {
			continue
		}
		sources = append(sources, report.Source{
			Category: category,
			Label:    r.cfg.CategoryLabel(category),
			Mentions: mentionsUpTo(mentions, a.MaxYear),
		})
	}

	result.Report = report.BuildCharacterReport(a.StatsCharacters, a.OverallCategory, sources, a.MaxYear, statsTopN)
	logger := r.log(ctx, a.OverallCategory)
	for i, e := range result.Report.LatestTop {
		logger.Debug("latest-year leader",
			logging.Int("position", i+1),
			logging.Int("rank", e.Rank),
			logging.String("character", e.Key),
			logging.Int64("views", e.Value),
		)
	}

	result.File = filepath.Join(r.cfg.Paths.OutputDir, "character_stats_"+strconv.Itoa(a.MaxYear)+".md")
	if err := fileutil.WriteAtomic(result.File, 0o644, func(w io.Writer) error {
		return result.Report.WriteMarkdown(w)
	}); err != nil {
		return result, fmt.Errorf("write stats report: %w", err)
	}
	return result, nil
}

func mentionsUpTo(mentions []artifact.Mention, maxYear int) []artifact.Mention {
	kept := make([]artifact.Mention, 0, len(mentions))
	for _, m := range mentions {
		if m.Year <= maxYear {
			kept = append(kept, m)
		}
	}
	return kept
}
