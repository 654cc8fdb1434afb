// Package chart assembles chart-ready data from rank matrices.
//
// Every chart is described by an explicit configuration value (BumpChart,
// RankAnimation, BarRace) passed to its Build function. Nothing here draws
// pixels; the JSON documents are consumed by an external renderer.
package chart
