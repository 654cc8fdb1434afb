// Package pipeline holds the report drivers behind the voirank commands.
//
// A Runner owns the inputs every driver shares: the configuration, the
// snapshot blob store, the catalog-backed extractor, and the mention cache.
// Each driver (History, Pairs, Characters, Analyze, CompareSurvival,
// CompareGenres, Share, ActiveUsers, CharacterStats, Animate, Series, Fetch)
// loads what it needs through the Runner, runs the shared aggregation and
// ranking packages, and writes its artifacts under the configured output
// directory. Drivers never hold plotting state; chart settings are explicit
// chart.BumpChart and chart.RankAnimation values.
//
// A missing snapshot blob is not an error: the category is logged and
// skipped. External lookups (nicknames, platform totals, snapshot search)
// are injected through small interfaces so tests can substitute fakes.
package pipeline
