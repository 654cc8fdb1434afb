// Package services defines shared utilities consumed by report drivers and the
// external HTTP integrations beneath it.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, command names, and categories for
//     logging.
//   - Structured error markers plus the Wrap helper so drivers can decide
//     whether a failure skips one category or aborts the run.
//   - Request pacing for the rate-sensitive public endpoints.
package services
