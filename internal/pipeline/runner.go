package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"voirank/internal/artifact"
	"voirank/internal/catalog"
	"voirank/internal/config"
	"voirank/internal/dataset"
	"voirank/internal/extract"
	"voirank/internal/logging"
	"voirank/internal/services"
	"voirank/internal/services/snapshot"
	"voirank/internal/share"
)

// NicknameLookup resolves an uploader ID to a display name. ok is false when
// name is a placeholder.
type NicknameLookup interface {
	Lookup(ctx context.Context, userID uint64) (name string, ok bool)
}

// PlatformSource returns platform-wide yearly totals.
type PlatformSource interface {
	Years(ctx context.Context, from, to int) ([]share.PlatformYear, error)
}

// Searcher fetches the snapshot of one category.
type Searcher interface {
	Search(ctx context.Context, q snapshot.Query) (*dataset.Blob, error)
}

// Runner carries the shared state of one invocation.
type Runner struct {
	cfg       *config.Config
	logger    *slog.Logger
	blobs     *dataset.BlobStore
	filter    *dataset.TagFilter
	catalog   *catalog.Catalog
	extractor *extract.Extractor
	noCache   bool
	nicknames NicknameLookup
	platform  PlatformSource
	searcher  Searcher
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithoutCache makes Mentions ignore existing cache files and rebuild them.
func WithoutCache() Option {
	return func(r *Runner) { r.noCache = true }
}

// WithCatalog supplies an already loaded catalog instead of reading
// the configured catalog file.
func WithCatalog(c *catalog.Catalog) Option {
	return func(r *Runner) { r.catalog = c }
}

// WithNicknames sets the uploader nickname source.
func WithNicknames(lookup NicknameLookup) Option {
	return func(r *Runner) { r.nicknames = lookup }
}

// WithPlatform sets the platform totals source.
func WithPlatform(source PlatformSource) Option {
	return func(r *Runner) { r.platform = source }
}

// WithSearcher sets the snapshot search client used by Fetch.
func WithSearcher(s Searcher) Option {
	return func(r *Runner) { r.searcher = s }
}

// New builds a Runner for cfg.
func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	filter, err := dataset.NewTagFilter(cfg.Analysis.ExcludeTagPattern)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "compile tag filter", cfg.Analysis.ExcludeTagPattern, err)
	}
	r := &Runner{
		cfg:    cfg,
		blobs:  dataset.NewBlobStore(cfg.Paths.DataDir),
		filter: filter,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "pipeline")
	return r, nil
}

// Config returns the configuration the runner was built with.
func (r *Runner) Config() *config.Config { return r.cfg }

func (r *Runner) log(ctx context.Context, category string) *slog.Logger {
	logger := logging.WithContext(ctx, r.logger)
	if category != "" {
		logger = logger.With(logging.Category(category))
	}
	return logger
}

// Catalog loads the entity catalog on first use.
func (r *Runner) Catalog() (*catalog.Catalog, error) {
	if r.catalog == nil {
		c, err := catalog.Load(r.cfg.Paths.CatalogPath, r.cfg.Analysis.ExactMatchNames)
		if err != nil {
			return nil, err
		}
		r.catalog = c
	}
	return r.catalog, nil
}

// Extractor returns the shared memoizing extractor. Its memo spans every
// category processed by this runner.
func (r *Runner) Extractor() (*extract.Extractor, error) {
	if r.extractor == nil {
		c, err := r.Catalog()
		if err != nil {
			return nil, err
		}
		r.extractor = extract.NewExtractor(c)
	}
	return r.extractor, nil
}

// Records loads the snapshot of category and applies the tag filter when the
// category is configured for it. A missing blob yields no records and no
// error.
func (r *Runner) Records(ctx context.Context, category string) ([]dataset.Record, error) {
	logger := r.log(ctx, category)
	blob, err := r.blobs.Load(category)
	if err != nil {
		if errors.Is(err, dataset.ErrNoData) {
			logging.WarnWithContext(logger, "snapshot missing; skipping category", "snapshot_missing",
				logging.String("path", r.blobs.Path(category)),
				logging.String(logging.FieldImpact, "category omitted from reports"),
				logging.String(logging.FieldErrorHint, "run voirank fetch "+category),
			)
			return nil, nil
		}
		return nil, err
	}
	records := blob.Data
	logger.Info("snapshot loaded",
		logging.Int("records", len(records)),
		logging.Int("total_count", blob.Meta.TotalCount),
	)
	if r.cfg.IsFiltered(category) {
		kept := r.filter.Exclude(records)
		logger.Info("tag filter applied",
			logging.Int("kept", len(kept)),
			logging.Int("dropped", len(records)-len(kept)),
		)
		records = kept
	}
	return records, nil
}

// Mentions returns the exploded (record, entity) rows of category. The
// cache file is used when present unless the runner was built WithoutCache;
// otherwise the snapshot is extracted and the cache rewritten.
func (r *Runner) Mentions(ctx context.Context, category string) ([]artifact.Mention, error) {
	logger := r.log(ctx, category)
	path := artifact.MentionCachePath(r.cfg.Paths.CacheDir, category)
	if !r.noCache {
		mentions, err := artifact.ReadMentions(path)
		switch {
		case err == nil:
			logger.Info("mention cache loaded", logging.String("path", path), logging.Int("mentions", len(mentions)))
			return mentions, nil
		case errors.Is(err, fs.ErrNotExist):
		default:
			logging.WarnWithContext(logger, "mention cache unreadable; rebuilding", "mention_cache_invalid",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "snapshot is extracted again"),
			)
		}
	}

	records, err := r.Records(ctx, category)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	ex, err := r.Extractor()
	if err != nil {
		return nil, err
	}
	mentions := Explode(records, ex.ExtractAll(records))
	if err := artifact.WriteMentions(path, mentions); err != nil {
		return nil, fmt.Errorf("write mention cache: %w", err)
	}
	stats := ex.Stats()
	logger.Info("mention cache written",
		logging.String("path", path),
		logging.Int("mentions", len(mentions)),
		logging.Int("distinct_tag_sets", stats.Distinct),
		logging.Int("lookups", stats.Served),
	)
	return mentions, nil
}

// Explode pairs each dated record with every entity extracted from it. sets
// must be aligned with records.
func Explode(records []dataset.Record, sets [][]string) []artifact.Mention {
	var out []artifact.Mention
	for i, rec := range records {
		year := rec.Year()
		if year == 0 {
			continue
		}
		for _, name := range sets[i] {
			out = append(out, artifact.Mention{
				Year:        year,
				Character:   name,
				ViewCounter: rec.ViewCounter,
				ContentID:   rec.ContentID,
				StartTime:   rec.StartTime,
			})
		}
	}
	return out
}

// Lock takes the cache-directory lock for the duration of a run.
func (r *Runner) Lock() (*artifact.Lock, error) {
	return artifact.AcquireLock(r.cfg.LockPath())
}
