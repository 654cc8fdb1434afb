package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input, output, and state directory configuration.
type Paths struct {
	DataDir     string `toml:"data_dir"`
	OutputDir   string `toml:"output_dir"`
	CacheDir    string `toml:"cache_dir"`
	CatalogPath string `toml:"catalog_path"`
	IconDir     string `toml:"icon_dir"`
	StateDir    string `toml:"state_dir"`
}

// Exclusion removes a single (entity, year) cell from history ranking.
type Exclusion struct {
	Entity string `toml:"entity"`
	Year   int    `toml:"year"`
}

// Analysis contains the ranking and filtering knobs shared by every report.
type Analysis struct {
	MinYear                   int         `toml:"min_year"`
	MaxYear                   int         `toml:"max_year"`
	ExactMatchNames           []string    `toml:"exact_match_names"`
	SingleCutoff              int         `toml:"single_cutoff"`
	PairCutoff                int         `toml:"pair_cutoff"`
	SingleTopN                int         `toml:"single_top_n"`
	PairTopN                  int         `toml:"pair_top_n"`
	YearlyTopN                int         `toml:"yearly_top_n"`
	ExcludeTagPattern         string      `toml:"exclude_tag_pattern"`
	FilteredCategories        []string    `toml:"filtered_categories"`
	ActiveWindowYears         int         `toml:"active_window_years"`
	ContinuationLookbackYears int         `toml:"continuation_lookback_years"`
	HistoryCategories         []string    `toml:"history_categories"`
	OverallCategory           string      `toml:"overall_category"`
	PairCategory              string      `toml:"pair_category"`
	StatsCharacters           []string    `toml:"stats_characters"`
	ActiveUsersLimit          int         `toml:"active_users_limit"`
	Exclusions                []Exclusion `toml:"exclusions"`
}

// Category describes one snapshot category (a search keyword set and its labels).
type Category struct {
	Label    string   `toml:"label"`
	Title    string   `toml:"title"`
	Keywords []string `toml:"keywords"`
	Targets  string   `toml:"targets"`
}

// Fetch contains external endpoint and pacing configuration.
type Fetch struct {
	SnapshotURL           string `toml:"snapshot_url"`
	UserAgent             string `toml:"user_agent"`
	PageSize              int    `toml:"page_size"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	SnapshotDelayMS       int    `toml:"snapshot_delay_ms"`
	NicknameURL           string `toml:"nickname_url"`
	NicknameDelayMS       int    `toml:"nickname_delay_ms"`
	NicochartURL          string `toml:"nicochart_url"`
	NicochartDelayMS      int    `toml:"nicochart_delay_ms"`
}

// Animation contains frame pacing for rank and cumulative animations.
type Animation struct {
	StepsPerPeriod  int `toml:"steps_per_period"`
	FramesPerPeriod int `toml:"frames_per_period"`
	HoldFrames      int `toml:"hold_frames"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for voirank.
//
// Configuration sections:
//   - Paths: snapshot blobs, outputs, caches, catalog, icons, state
//   - Analysis: year bounds, cutoffs, exact-match names, filters
//   - Categories: per-category labels and search keywords
//   - Colors: fixed entity colours for charts
//   - Fetch: external endpoints and inter-request delays
//   - Animation: frame pacing
//   - Logging: log format and level
type Config struct {
	Paths      Paths               `toml:"paths"`
	Analysis   Analysis            `toml:"analysis"`
	Categories map[string]Category `toml:"categories"`
	Colors     map[string]string   `toml:"colors"`
	Fetch      Fetch               `toml:"fetch"`
	Animation  Animation           `toml:"animation"`
	Logging    Logging             `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/voirank/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("voirank.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output, cache, and state directories.
// DataDir and IconDir are inputs and are never created.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.CacheDir, c.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// BlobPath returns the snapshot blob location for a category.
func (c *Config) BlobPath(category string) string {
	return filepath.Join(c.Paths.DataDir, category+".json")
}

// HistoryDir returns the directory that receives history matrices and chart data.
func (c *Config) HistoryDir() string {
	return filepath.Join(c.Paths.OutputDir, "history")
}

// StorePath returns the SQLite state database location.
func (c *Config) StorePath() string {
	return filepath.Join(c.Paths.StateDir, "voirank.db")
}

// LockPath returns the cache lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.CacheDir, ".voirank.lock")
}

// LogPath returns the log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.StateDir, "voirank.log")
}

// CategoryLabel returns the display label for a category, falling back to its key.
func (c *Config) CategoryLabel(name string) string {
	if cat, ok := c.Categories[name]; ok && strings.TrimSpace(cat.Label) != "" {
		return cat.Label
	}
	return name
}

// IsFiltered reports whether the tag exclusion pattern applies to the category.
func (c *Config) IsFiltered(category string) bool {
	for _, name := range c.Analysis.FilteredCategories {
		if name == category {
			return true
		}
	}
	return false
}

// RequestTimeout returns the HTTP client timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Fetch.RequestTimeoutSeconds) * time.Second
}

func millis(value int) time.Duration {
	return time.Duration(value) * time.Millisecond
}

// NicknameDelay returns the fixed pause between nickname lookups.
func (c *Config) NicknameDelay() time.Duration { return millis(c.Fetch.NicknameDelayMS) }

// NicochartDelay returns the fixed pause between nicochart downloads.
func (c *Config) NicochartDelay() time.Duration { return millis(c.Fetch.NicochartDelayMS) }

// SnapshotDelay returns the fixed pause between snapshot search pages.
func (c *Config) SnapshotDelay() time.Duration { return millis(c.Fetch.SnapshotDelayMS) }

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
