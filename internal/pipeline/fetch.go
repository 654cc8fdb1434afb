package pipeline

import (
	"context"
	"fmt"
	"time"

	"voirank/internal/logging"
	"voirank/internal/services"
	"voirank/internal/services/snapshot"
)

// FetchOutcome reports one category's download.
type FetchOutcome struct {
	Category string `json:"category"`
	Records  int    `json:"records"`
	Path     string `json:"path,omitempty"`
	Error    string `json:"error,omitempty"`
}

// FetchResult is the outcome of Fetch.
type FetchResult struct {
	Outcomes []FetchOutcome `json:"outcomes"`
}

// Failed counts categories that could not be downloaded.
func (r FetchResult) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Error != "" {
			n++
		}
	}
	return n
}

// Fetch downloads the snapshot of each category and replaces its blob.
// Failures that only affect one category are recorded and the next category
// is attempted; configuration and validation failures stop the run.
func (r *Runner) Fetch(ctx context.Context, categories []string, limit int) (FetchResult, error) {
	var result FetchResult
	if r.searcher == nil {
		return result, services.Wrap(services.ErrConfiguration, "pipeline", "fetch", "no snapshot client", nil)
	}
	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		spec, ok := r.cfg.Categories[category]
		if !ok {
			return result, services.Wrap(services.ErrValidation, "pipeline", "fetch", fmt.Sprintf("unknown category %q", category), nil)
		}
		logger := r.log(ctx, category)
		started := time.Now()
		blob, err := r.searcher.Search(services.WithCategory(ctx, category), snapshot.Query{
			Category: category,
			Keywords: spec.Keywords,
			Targets:  spec.Targets,
			Limit:    limit,
		})
		if err != nil {
			if !services.Skippable(err) {
				return result, fmt.Errorf("fetch %s: %w", category, err)
			}
			logging.WarnWithContext(logger, "snapshot fetch failed; skipping category", "snapshot_fetch_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "existing blob left unchanged"),
			)
			result.Outcomes = append(result.Outcomes, FetchOutcome{Category: category, Error: err.Error()})
			continue
		}
		if err := r.blobs.Save(category, blob); err != nil {
			return result, fmt.Errorf("save %s blob: %w", category, err)
		}
		logger.Info("snapshot saved",
			logging.String("path", r.blobs.Path(category)),
			logging.Int("records", len(blob.Data)),
			logging.Int("total_count", blob.Meta.TotalCount),
			logging.Duration("elapsed", time.Since(started)),
		)
		result.Outcomes = append(result.Outcomes, FetchOutcome{Category: category, Records: len(blob.Data), Path: r.blobs.Path(category)})
	}
	return result, nil
}
