// Package nicochart derives platform-wide yearly totals from the public
// cumulative counter TSV files.
//
// Each monthly file holds one line per sample:
//
//	date  time  epoch  total_videos  total_views  total_comments
//
// A year's growth is the last December sample minus the first January
// sample.
package nicochart
