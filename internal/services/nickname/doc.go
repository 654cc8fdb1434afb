// Package nickname resolves uploader IDs to display names through the user
// info XML endpoint.
//
// Lookups never fail outward: a missing nickname, a non-200 response, or a
// transport error each produce a placeholder string so a report row can still
// be written. Successful names can be remembered through a Cache, which the
// CLI backs with the SQLite store.
package nickname
