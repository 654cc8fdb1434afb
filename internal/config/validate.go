package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	if err := c.validateColors(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	a := c.Analysis
	if a.MinYear > a.MaxYear {
		return fmt.Errorf("analysis.min_year (%d) must not exceed analysis.max_year (%d)", a.MinYear, a.MaxYear)
	}
	if err := ensurePositiveMap(map[string]int{
		"analysis.single_cutoff":       a.SingleCutoff,
		"analysis.pair_cutoff":         a.PairCutoff,
		"analysis.single_top_n":        a.SingleTopN,
		"analysis.pair_top_n":          a.PairTopN,
		"analysis.active_window_years": a.ActiveWindowYears,
	}); err != nil {
		return err
	}
	if a.ExcludeTagPattern != "" {
		if _, err := regexp.Compile("(?i)" + a.ExcludeTagPattern); err != nil {
			return fmt.Errorf("analysis.exclude_tag_pattern: %w", err)
		}
	}
	for _, ex := range a.Exclusions {
		if ex.Entity == "" {
			return errors.New("analysis.exclusions entries require an entity")
		}
	}
	return nil
}

func (c *Config) validateCategories() error {
	for name, cat := range c.Categories {
		if strings.TrimSpace(name) == "" {
			return errors.New("categories must not contain an empty key")
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("categories.%s: key must not contain path separators", name)
		}
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("categories.%s.keywords must include at least one keyword", name)
		}
	}
	return nil
}

func (c *Config) validateColors() error {
	for name, value := range c.Colors {
		if !hexColorPattern.MatchString(value) {
			return fmt.Errorf("colors.%s: %q is not a #rrggbb colour", name, value)
		}
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.PageSize > 100 {
		return errors.New("fetch.page_size must not exceed 100")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
