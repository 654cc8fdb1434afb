// Package snapshot downloads category blobs from the video snapshot search
// API.
//
// A search sends the category keywords as a single OR query against exact tag
// matches, newest first. Pages are requested one at a time through a
// services.Pacer. The API refuses offsets beyond MaxOffset, so once paging
// reaches that depth the client switches to a start-time cursor and restarts
// the offset from zero. Records seen on both sides of the cursor are dropped
// by content ID.
package snapshot
