// Package report renders the per-character statistics report and the
// number formats shared by human-facing output.
package report
