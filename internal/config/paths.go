// Package config manages lifeexp configuration and filesystem paths.
//
// Paths are derived from a data directory (default: life_expectancy/data):
// the raw Eurostat input lives there, cleaned outputs are written next to
// it with the country code embedded in the file name, and run records are
// kept under .lifeexp/runs. Settings can also be
// read from a YAML file; command-line flags take priority over both.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultDataDir is the directory holding input and output datasets.
	DefaultDataDir = "life_expectancy/data"

	// DefaultInputName is the raw Eurostat dataset file name.
	DefaultInputName = "eu_life_expectancy_raw.tsv"

	// DefaultOutputFormat is the extension used for cleaned outputs.
	DefaultOutputFormat = "csv"

	// StateDirName holds lifeexp's own bookkeeping inside the data directory.
	StateDirName = ".lifeexp"

	outputSuffix = "_life_expectancy"
)

// Paths contains all the filesystem paths used by lifeexp.
type Paths struct {
	// DataDir is the base directory for datasets
	DataDir string

	// Input is the raw dataset path
	Input string

	// Runs is the directory holding run records
	Runs string
}

// DefaultPaths returns the paths rooted at dataDir, or DefaultDataDir when
// dataDir is empty.
func DefaultPaths(dataDir string) *Paths {
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	return &Paths{
		DataDir: dataDir,
		Input:   filepath.Join(dataDir, DefaultInputName),
		Runs:    filepath.Join(dataDir, StateDirName, "runs"),
	}
}

// OutputPath returns the cleaned dataset path for country, e.g.
// life_expectancy/data/PT_life_expectancy.csv. format is an extension with
// or without the leading dot.
func (p *Paths) OutputPath(country, format string) (string, error) {
	if country == "" {
		return "", fmt.Errorf("country must not be empty")
	}
	ext := strings.TrimPrefix(format, ".")
	if ext == "" {
		ext = DefaultOutputFormat
	}
	return filepath.Join(p.DataDir, country+outputSuffix+"."+ext), nil
}
