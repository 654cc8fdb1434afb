// Package artifact reads and writes the files a run leaves behind: the
// per-category mention cache, matrix CSVs, report tables, and the lock that
// keeps two runs from writing the same cache directory.
//
// CSV files are UTF-8 with a byte order mark so spreadsheet tools detect the
// encoding of Japanese names.
package artifact
