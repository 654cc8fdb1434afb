// Package dataset loads snapshot blobs of video metadata and applies the
// record-level filters shared by every report.
//
// Decoding is forgiving. Snapshots written by older fetchers carry
// tags as either a string or a list, and numeric fields sometimes arrive null;
// those cases degrade to empty tags and zero values instead of failing a run.
package dataset
