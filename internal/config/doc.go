// Package config loads, normalizes, and validates voirank configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// VOIRANK_USER_AGENT. Ranking knobs that older tooling hardcoded (the
// exact-match name list, saturation cutoffs, year bounds, noise exclusions)
// are configuration values here so every report reads them from one place.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
