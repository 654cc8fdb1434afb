// Package rankmatrix turns (period, key, value) rows into per-period value and
// rank matrices.
//
// Ranking uses competition ranking and never invents data: a key absent from a
// period is no-data in both matrices, which is not the same as a zero. Zero
// filling exists only in PadSeries for display. Selection and saturation
// helpers expose what a bump chart needs without baking in any one chart's
// cutoffs.
package rankmatrix
