package engine

// CleanRequest represents a request to clean the raw dataset for a country.
type CleanRequest struct {
	// Country is the region code to keep (default "PT")
	Country string

	// Input is the raw dataset path (default: configured input)
	Input string

	// Output is the cleaned dataset path
	// (default: <data dir>/<country>_life_expectancy.<OutputFormat>)
	Output string

	// OutputFormat is the extension used when Output is empty (default "csv")
	OutputFormat string

	// KeyColumn overrides the composite key column name
	KeyColumn string

	// StrictYear drops rows whose year label is not an integer
	StrictYear bool

	// DryRun runs the pipeline without writing the output
	DryRun bool
}

// ConvertRequest represents a request to re-encode a dataset.
type ConvertRequest struct {
	// Input is the source dataset path
	Input string

	// Output is the destination path; its extension selects the format
	Output string

	// DryRun loads the input without writing the output
	DryRun bool
}

// InspectRequest represents a request to summarize a dataset.
type InspectRequest struct {
	// Path is the dataset to inspect
	Path string

	// Limit is the number of preview rows; negative uses DefaultPreviewRows
	Limit int
}

// HistoryRequest represents a request to list recorded runs.
type HistoryRequest struct {
	// Output restricts the listing to runs that wrote this path
	Output string

	// Limit caps the number of runs returned (0 for all)
	Limit int
}
