package state

import (
	"time"

	"github.com/danieljhkim/lifeexp/internal/cleaning"
)

// Operation names recorded in RunRecord.Operation.
const (
	OpClean   = "clean"
	OpConvert = "convert"
)

// RunRecord describes one completed run that wrote an output.
type RunRecord struct {
	// RunID is the unique run identifier
	RunID string `json:"runId"`

	// Operation is "clean" or "convert"
	Operation string `json:"operation"`

	// Country is the region kept (clean only)
	Country string `json:"country,omitempty"`

	Input        string `json:"input"`
	InputFormat  string `json:"inputFormat"`
	Output       string `json:"output"`
	OutputFormat string `json:"outputFormat"`

	// Rows is the number of rows written
	Rows int `json:"rows"`

	// Stats holds the pipeline counters (clean only)
	Stats *cleaning.Stats `json:"stats,omitempty"`

	// Checksum is the SHA-256 of the written output
	Checksum string `json:"checksum"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Duration returns how long the run took.
func (r *RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
