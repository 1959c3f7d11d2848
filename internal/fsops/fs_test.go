package fsops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRealFS_ValidateIdentifier(t *testing.T) {
	fs := &RealFS{}

	tests := []struct {
		name      string
		id        string
		wantError bool
	}{
		{
			name:      "two letter country code",
			id:        "PT",
			wantError: false,
		},
		{
			name:      "aggregate region code",
			id:        "EU27_2020",
			wantError: false,
		},
		{
			name:      "lower case code",
			id:        "sk",
			wantError: false,
		},
		{
			name:      "empty identifier",
			id:        "",
			wantError: true,
		},
		{
			name:      "current directory",
			id:        ".",
			wantError: true,
		},
		{
			name:      "parent directory",
			id:        "..",
			wantError: true,
		},
		{
			name:      "path with separator",
			id:        "PT/../etc",
			wantError: true,
		},
		{
			name:      "path with backslash",
			id:        "PT\\x",
			wantError: true,
		},
		{
			name:      "contains space",
			id:        "P T",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidateIdentifier(tt.id)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantError %v", tt.id, err, tt.wantError)
			}
		})
	}
}

func TestRealFS_Exists(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	t.Run("existing file", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "exists.csv")
		if err := os.WriteFile(testFile, []byte("a,b\n"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		exists, err := fs.Exists(testFile)
		if err != nil {
			t.Errorf("Exists returned error: %v", err)
		}
		if !exists {
			t.Error("Exists should return true for existing file")
		}
	})

	t.Run("non-existing file", func(t *testing.T) {
		exists, err := fs.Exists(filepath.Join(tmpDir, "missing.csv"))
		if err != nil {
			t.Errorf("Exists returned error: %v", err)
		}
		if exists {
			t.Error("Exists should return false for non-existing file")
		}
	})
}

func TestRealFS_MkdirAll(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	nestedPath := filepath.Join(tmpDir, "life_expectancy", "data")
	if err := fs.MkdirAll(nestedPath, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := fs.MkdirAll(nestedPath, 0755); err != nil {
		t.Errorf("Second MkdirAll should not fail: %v", err)
	}
	info, err := os.Stat(nestedPath)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}

func TestRealFS_AtomicWrite(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	t.Run("write to new file", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "PT_life_expectancy.csv")
		content := []byte("unit,sex,age,region,year,value\n")

		if err := fs.AtomicWrite(testFile, content, 0644); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}

		readContent, err := os.ReadFile(testFile)
		if err != nil {
			t.Fatalf("failed to read written file: %v", err)
		}
		if string(readContent) != string(content) {
			t.Errorf("File content mismatch: got %q, want %q", readContent, content)
		}
	})

	t.Run("overwrite existing file", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "overwrite.csv")
		if err := os.WriteFile(testFile, []byte("initial"), 0644); err != nil {
			t.Fatalf("failed to create initial file: %v", err)
		}

		if err := fs.AtomicWrite(testFile, []byte("overwritten"), 0644); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}

		readContent, err := os.ReadFile(testFile)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(readContent) != "overwritten" {
			t.Errorf("File content not updated: got %q", readContent)
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		entries, err := os.ReadDir(tmpDir)
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".lifeexp-tmp-") {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})

	t.Run("missing parent directory", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "absent", "PT_life_expectancy.csv")
		if err := fs.AtomicWrite(testFile, []byte("x"), 0644); err == nil {
			t.Error("AtomicWrite into a missing directory should fail")
		}
		if _, err := os.Stat(filepath.Dir(testFile)); !os.IsNotExist(err) {
			t.Errorf("parent directory should not be created, got %v", err)
		}
	})

	t.Run("target is a directory", func(t *testing.T) {
		dirTarget := filepath.Join(tmpDir, "is-a-dir")
		if err := os.MkdirAll(filepath.Join(dirTarget, "child"), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := fs.AtomicWrite(dirTarget, []byte("x"), 0644); err == nil {
			t.Error("AtomicWrite over a non-empty directory should fail")
		}
	})
}

func TestRealFS_ReadFile(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	t.Run("read existing file", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "read.tsv")
		content := []byte("unit,sex,age,geo\\time\t2019\n")
		if err := os.WriteFile(testFile, content, 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		readContent, err := fs.ReadFile(testFile)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(readContent) != string(content) {
			t.Errorf("ReadFile content mismatch: got %q, want %q", readContent, content)
		}
	})

	t.Run("read non-existing file", func(t *testing.T) {
		_, err := fs.ReadFile(filepath.Join(tmpDir, "does-not-exist.tsv"))
		if !os.IsNotExist(err) {
			t.Errorf("ReadFile should return a not-exist error, got %v", err)
		}
	})
}

func TestRealFS_ReadDir(t *testing.T) {
	fs := &RealFS{}
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Name() != "a.json" {
		t.Errorf("ReadDir = %v, want [a.json b.json]", entries)
	}

	if _, err := fs.ReadDir(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Errorf("ReadDir on missing dir should return not-exist, got %v", err)
	}
}
