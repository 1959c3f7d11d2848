package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danieljhkim/lifeexp/internal/fsops"
)

// RunStore provides an interface for persisting run records.
type RunStore interface {
	// Save writes the record atomically, keyed by its RunID.
	Save(rec *RunRecord) error

	// Load loads the record for runID.
	// Returns os.ErrNotExist if the record doesn't exist.
	Load(runID string) (*RunRecord, error)

	// List returns all records, most recent first.
	List() ([]*RunRecord, error)

	// Latest returns the most recent record that wrote output.
	// Returns os.ErrNotExist if there is none.
	Latest(output string) (*RunRecord, error)
}

// FileRunStore implements RunStore using JSON files on disk.
type FileRunStore struct {
	fs      fsops.FS
	runsDir string
}

// NewFileRunStore creates a new FileRunStore rooted at runsDir.
func NewFileRunStore(fs fsops.FS, runsDir string) *FileRunStore {
	return &FileRunStore{
		fs:      fs,
		runsDir: runsDir,
	}
}

func (s *FileRunStore) path(runID string) string {
	return filepath.Join(s.runsDir, runID+".json")
}

// Save writes the record atomically.
func (s *FileRunStore) Save(rec *RunRecord) error {
	if err := s.fs.ValidateIdentifier(rec.RunID); err != nil {
		return fmt.Errorf("invalid run ID: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	if err := s.fs.MkdirAll(s.runsDir, 0755); err != nil {
		return fmt.Errorf("failed to create runs directory: %w", err)
	}
	if err := s.fs.AtomicWrite(s.path(rec.RunID), data, 0644); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}

	return nil
}

// Load loads the record for runID.
func (s *FileRunStore) Load(runID string) (*RunRecord, error) {
	if err := s.fs.ValidateIdentifier(runID); err != nil {
		return nil, fmt.Errorf("invalid run ID: %w", err)
	}

	data, err := s.fs.ReadFile(s.path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read run record: %w", err)
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run record %s: %w", runID, err)
	}

	return &rec, nil
}

// List returns all records, most recent first. A missing runs directory
// yields an empty list.
func (s *FileRunStore) List() ([]*RunRecord, error) {
	exists, err := s.fs.Exists(s.runsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to check runs directory: %w", err)
	}
	if !exists {
		return []*RunRecord{}, nil
	}

	entries, err := s.fs.ReadDir(s.runsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	records := make([]*RunRecord, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		rec, err := s.Load(strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	return records, nil
}

// Latest returns the most recent record that wrote output.
func (s *FileRunStore) Latest(output string) (*RunRecord, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	want := filepath.Clean(output)
	for _, rec := range records {
		if filepath.Clean(rec.Output) == want {
			return rec, nil
		}
	}
	return nil, os.ErrNotExist
}
