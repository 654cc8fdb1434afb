// Package animation computes frame-by-frame positions for rank-over-time
// and cumulative bar animations. It produces data only; a renderer draws
// the frames.
package animation
