package testsupport

import (
	"path/filepath"
	"testing"

	"voirank/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.OutputDir = filepath.Join(base, "results")
	cfgVal.Paths.CacheDir = filepath.Join(base, "results", "history", "cache")
	cfgVal.Paths.CatalogPath = filepath.Join(base, "characters.csv")
	cfgVal.Paths.IconDir = filepath.Join(base, "icons")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Fetch.SnapshotDelayMS = 0
	cfgVal.Fetch.NicknameDelayMS = 0
	cfgVal.Fetch.NicochartDelayMS = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCatalog writes a catalog CSV with the given names and points the
// config at it.
func WithCatalog(names ...string) ConfigOption {
	return func(b *configBuilder) {
		WriteCatalog(b.t, b.cfg.Paths.CatalogPath, names...)
	}
}

// WithYears overrides the analysis period bounds.
func WithYears(minYear, maxYear int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Analysis.MinYear = minYear
		b.cfg.Analysis.MaxYear = maxYear
	}
}

// WithFetchURL points every external endpoint at a test server.
func WithFetchURL(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fetch.SnapshotURL = baseURL + "/snapshot"
		b.cfg.Fetch.NicknameURL = baseURL + "/nickname"
		b.cfg.Fetch.NicochartURL = baseURL + "/total"
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
