// Package share compares local category totals with platform-wide yearly
// totals and reports the local share of videos and views.
package share
