package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAnalysis()
	c.normalizeCategories()
	c.normalizeColors()
	c.normalizeFetch()
	c.normalizeAnimation()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.data_dir", &c.Paths.DataDir, defaultDataDir},
		{"paths.output_dir", &c.Paths.OutputDir, defaultOutputDir},
		{"paths.cache_dir", &c.Paths.CacheDir, defaultCacheDir},
		{"paths.catalog_path", &c.Paths.CatalogPath, defaultCatalogPath},
		{"paths.icon_dir", &c.Paths.IconDir, defaultIconDir},
		{"paths.state_dir", &c.Paths.StateDir, defaultStateDir},
	}
	for _, field := range fields {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = field.fallback
		}
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("%s: %w", field.key, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeAnalysis() {
	a := &c.Analysis
	if a.MinYear == 0 {
		a.MinYear = defaultMinYear
	}
	if a.MaxYear == 0 {
		a.MaxYear = defaultMaxYear
	}
	a.ExactMatchNames = dedupeTrimmed(a.ExactMatchNames)
	a.FilteredCategories = dedupeTrimmed(a.FilteredCategories)
	a.HistoryCategories = dedupeTrimmed(a.HistoryCategories)
	a.StatsCharacters = dedupeTrimmed(a.StatsCharacters)
	a.ExcludeTagPattern = strings.TrimSpace(a.ExcludeTagPattern)
	a.OverallCategory = strings.TrimSpace(a.OverallCategory)
	if a.OverallCategory == "" {
		a.OverallCategory = defaultOverallCategory
	}
	a.PairCategory = strings.TrimSpace(a.PairCategory)
	if a.PairCategory == "" {
		a.PairCategory = defaultPairCategory
	}
	if a.YearlyTopN <= 0 {
		a.YearlyTopN = defaultYearlyTopN
	}
	if a.ActiveUsersLimit <= 0 {
		a.ActiveUsersLimit = defaultActiveUsersLimit
	}
	if a.ContinuationLookbackYears <= 0 {
		a.ContinuationLookbackYears = defaultLookbackYears
	}
	for i := range a.Exclusions {
		a.Exclusions[i].Entity = strings.TrimSpace(a.Exclusions[i].Entity)
	}
}

func (c *Config) normalizeCategories() {
	if len(c.Categories) == 0 {
		c.Categories = defaultCategories()
	}
	for name, cat := range c.Categories {
		cat.Label = strings.TrimSpace(cat.Label)
		cat.Title = strings.TrimSpace(cat.Title)
		cat.Keywords = dedupeTrimmed(cat.Keywords)
		c.Categories[name] = cat
	}
}

func (c *Config) normalizeColors() {
	for name, value := range c.Colors {
		value = strings.TrimSpace(value)
		if value != "" && !strings.HasPrefix(value, "#") {
			value = "#" + value
		}
		c.Colors[name] = strings.ToLower(value)
	}
}

func (c *Config) normalizeFetch() {
	f := &c.Fetch
	f.SnapshotURL = strings.TrimRight(strings.TrimSpace(f.SnapshotURL), "/")
	if f.SnapshotURL == "" {
		f.SnapshotURL = defaultSnapshotURL
	}
	f.NicknameURL = strings.TrimSpace(f.NicknameURL)
	if f.NicknameURL == "" {
		f.NicknameURL = defaultNicknameURL
	}
	f.NicochartURL = strings.TrimRight(strings.TrimSpace(f.NicochartURL), "/")
	if f.NicochartURL == "" {
		f.NicochartURL = defaultNicochartURL
	}
	f.UserAgent = strings.TrimSpace(f.UserAgent)
	if value, ok := os.LookupEnv("VOIRANK_USER_AGENT"); ok && strings.TrimSpace(value) != "" {
		f.UserAgent = strings.TrimSpace(value)
	}
	if f.UserAgent == "" {
		f.UserAgent = defaultUserAgent
	}
	if f.PageSize <= 0 {
		f.PageSize = defaultPageSize
	}
	if f.RequestTimeoutSeconds <= 0 {
		f.RequestTimeoutSeconds = defaultRequestTimeout
	}
	if f.NicknameDelayMS < 0 {
		f.NicknameDelayMS = 0
	}
	if f.NicochartDelayMS < 0 {
		f.NicochartDelayMS = 0
	}
	if f.SnapshotDelayMS < 0 {
		f.SnapshotDelayMS = 0
	}
}

func (c *Config) normalizeAnimation() {
	if c.Animation.StepsPerPeriod <= 0 {
		c.Animation.StepsPerPeriod = defaultStepsPerPeriod
	}
	if c.Animation.FramesPerPeriod <= 0 {
		c.Animation.FramesPerPeriod = defaultFramesPerPeriod
	}
	if c.Animation.HoldFrames < 0 {
		c.Animation.HoldFrames = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func dedupeTrimmed(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// CategoryNames returns the configured category keys in sorted order.
func (c *Config) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
