// Package genrestats computes per-year posting statistics for one category.
package genrestats
