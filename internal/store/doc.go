// Package store persists voirank state in SQLite: a run ledger recording
// every analysis invocation and a nickname cache for uploader lookups.
//
// The database lives at <state_dir>/voirank.db and is opened in WAL mode.
// Schema changes bump schemaVersion; an older database is rejected with
// ErrSchemaMismatch and must be deleted.
package store
