// Package state persists the history of lifeexp runs.
//
// Every clean or convert that writes a dataset leaves a RunRecord behind:
// which files were read and written, in which formats, the row counts, and
// the SHA-256 of the output. Records are JSON files under
// <data dir>/.lifeexp/runs, one per run ID.
//
// Key concepts:
//   - RunRecord: what a single run read, wrote and counted
//   - RunStore: interface for saving and listing run records
//   - Latest: the most recent record that wrote a given output path
package state
