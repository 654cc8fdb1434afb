// Package main hosts the voirank CLI entrypoint and command graph.
//
// Each report command is a thin driver over internal/pipeline: it resolves
// configuration, takes the cache lock, records the invocation in the run
// ledger, and renders the result as a table or, with --json, as JSON on
// stdout. Logs go to stderr and the state directory log file.
//
// Add new functionality to the internal packages first and surface it here
// through a dedicated command.
package main
