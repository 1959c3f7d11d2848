// Package formats resolves a file path to a strategy that loads and saves
// tables in that file's format.
//
// The set of formats is closed: each Format has one binding listing its
// extensions and its codec. Resolution is a pure function of the lower-cased
// extension, so an unsupported extension fails before any file is touched.
//
// Every strategy encodes into memory and writes through fsops.FS.AtomicWrite,
// so a failed Save never leaves a partial file behind.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/lifeexp/internal/fsops"
	"github.com/danieljhkim/lifeexp/internal/table"
)

// Format identifies a supported file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatExcel   Format = "xlsx"
	FormatParquet Format = "parquet"
	FormatPickle  Format = "pickle"
	FormatJSON    Format = "json"
)

// ErrUnsupportedFormat is returned when no binding matches an extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// UnsupportedFormatError names the extension that could not be resolved.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("%s: path has no extension", ErrUnsupportedFormat)
	}
	return fmt.Sprintf("%s: %s", ErrUnsupportedFormat, e.Ext)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// Strategy loads and saves tables in one file format.
type Strategy interface {
	// Format returns the format this strategy handles.
	Format() Format

	// Load reads the file at path into a table.
	Load(path string) (*table.Table, error)

	// Save writes t to path, replacing any existing file.
	Save(t *table.Table, path string) error
}

// codec converts between a table and a format's encoded bytes.
type codec interface {
	decode(data []byte) (*table.Table, error)
	encode(w io.Writer, t *table.Table) error
}

type binding struct {
	format     Format
	extensions []string
	desc       string
	newCodec   func() codec
}

var bindings = []binding{
	{FormatCSV, []string{".csv"}, "comma-separated values with header row", func() codec { return delimitedCodec{comma: ','} }},
	{FormatTSV, []string{".tsv"}, "tab-separated values with header row", func() codec { return delimitedCodec{comma: '\t'} }},
	{FormatExcel, []string{".xlsx"}, "Excel workbook, first sheet", func() codec { return excelCodec{} }},
	{FormatParquet, []string{".parquet"}, "Apache Parquet, optional columns", func() codec { return parquetCodec{} }},
	{FormatPickle, []string{".pkl", ".pickle"}, "binary table snapshot", func() codec { return snapshotCodec{} }},
	{FormatJSON, []string{".json"}, "one JSON record per line", func() codec { return jsonCodec{} }},
}

// Info describes one supported format.
type Info struct {
	Format      Format   `json:"format"`
	Extensions  []string `json:"extensions"`
	Description string   `json:"description"`
}

// Supported lists every supported format in resolution order.
func Supported() []Info {
	out := make([]Info, 0, len(bindings))
	for _, b := range bindings {
		exts := make([]string, len(b.extensions))
		copy(exts, b.extensions)
		out = append(out, Info{Format: b.format, Extensions: exts, Description: b.desc})
	}
	return out
}

// Resolver builds strategies bound to a filesystem.
type Resolver struct {
	fs fsops.FS
}

// NewResolver creates a Resolver that reads and writes through fs.
func NewResolver(fs fsops.FS) *Resolver {
	return &Resolver{fs: fs}
}

// Resolve returns the strategy for path's extension, compared
// case-insensitively. path may also be a bare extension such as ".CSV".
func (r *Resolver) Resolve(path string) (Strategy, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, b := range bindings {
		for _, e := range b.extensions {
			if e == ext {
				return &fileStrategy{format: b.format, codec: b.newCodec(), fs: r.fs}, nil
			}
		}
	}
	return nil, &UnsupportedFormatError{Ext: ext}
}

// Resolve returns the strategy for path using the real filesystem.
func Resolve(path string) (Strategy, error) {
	return NewResolver(fsops.NewRealFS()).Resolve(path)
}

type fileStrategy struct {
	format Format
	codec  codec
	fs     fsops.FS
}

func (s *fileStrategy) Format() Format {
	return s.format
}

func (s *fileStrategy) Load(path string) (*table.Table, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", s.format, err)
	}
	t, err := s.codec.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s file %s: %w", s.format, path, err)
	}
	return t, nil
}

func (s *fileStrategy) Save(t *table.Table, path string) error {
	if t == nil {
		return fmt.Errorf("cannot save nil table to %s", path)
	}
	var buf bytes.Buffer
	if err := s.codec.encode(&buf, t); err != nil {
		return fmt.Errorf("failed to encode %s file %s: %w", s.format, path, err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := s.fs.AtomicWrite(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", s.format, err)
	}
	return nil
}
