package engine

import (
	"time"

	"github.com/danieljhkim/lifeexp/internal/cleaning"
	"github.com/danieljhkim/lifeexp/internal/formats"
	"github.com/danieljhkim/lifeexp/internal/state"
)

// CleanResult represents the outcome of a clean run.
type CleanResult struct {
	// RunID identifies this run in logs and output
	RunID string `json:"run_id"`

	// Country is the region code that was kept
	Country string `json:"country"`

	Input        string         `json:"input"`
	InputFormat  formats.Format `json:"input_format"`
	Output       string         `json:"output"`
	OutputFormat formats.Format `json:"output_format"`

	// Stats counts rows at each pipeline stage
	Stats cleaning.Stats `json:"stats"`

	// Records is the cleaned table
	Records cleaning.Records `json:"-"`

	// SHA256 is the digest of the written output (empty on dry run)
	SHA256 string `json:"sha256,omitempty"`

	// PreviousRunID is the last recorded run that wrote the same output
	PreviousRunID string `json:"previous_run_id,omitempty"`

	// Unchanged reports that the output matches the previous run's
	Unchanged bool `json:"unchanged"`

	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// ConvertResult represents the outcome of a conversion.
type ConvertResult struct {
	RunID        string         `json:"run_id"`
	Input        string         `json:"input"`
	InputFormat  formats.Format `json:"input_format"`
	Output       string         `json:"output"`
	OutputFormat formats.Format `json:"output_format"`

	// Rows is the number of data rows converted
	Rows int `json:"rows"`

	// Columns is the number of columns converted
	Columns int `json:"columns"`

	SHA256        string    `json:"sha256,omitempty"`
	PreviousRunID string    `json:"previous_run_id,omitempty"`
	Unchanged     bool      `json:"unchanged"`
	DryRun        bool      `json:"dry_run"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// ColumnInfo describes one column of an inspected dataset.
type ColumnInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// InspectResult summarizes a dataset.
type InspectResult struct {
	Path    string         `json:"path"`
	Format  formats.Format `json:"format"`
	Columns []ColumnInfo   `json:"columns"`
	Rows    int            `json:"rows"`

	// Preview holds the first rows of the dataset
	Preview [][]any `json:"preview"`
}

// HistoryResult lists recorded runs, most recent first.
type HistoryResult struct {
	Runs []*state.RunRecord `json:"runs"`
}
