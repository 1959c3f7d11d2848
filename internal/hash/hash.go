// Package hash fingerprints written datasets.
//
// Every clean or convert run reports the SHA-256 of the file it produced so
// that two runs over the same input can be compared without diffing the
// data. FakeHasher returns preset digests for tests.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// ShortLen is the number of hex digits shown by Short.
const ShortLen = 12

// Hasher computes content fingerprints.
type Hasher interface {
	// HashFile returns the hex digest of the file at path.
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashFile computes the SHA-256 digest of the file at path.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	digest := sha256.New()
	if _, err := io.Copy(digest, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// Short truncates a digest for display.
func Short(digest string) string {
	if len(digest) <= ShortLen {
		return digest
	}
	return digest[:ShortLen]
}

// FakeHasher returns preset digests keyed by path.
type FakeHasher struct {
	digests map[string]string
	calls   []string
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		digests: make(map[string]string),
	}
}

// SetHash presets the digest returned for path.
func (h *FakeHasher) SetHash(path, digest string) {
	h.digests[path] = digest
}

// Calls returns the paths hashed so far, in order.
func (h *FakeHasher) Calls() []string {
	return h.calls
}

// HashFile returns the preset digest for path, or "fakehash".
func (h *FakeHasher) HashFile(path string) (string, error) {
	h.calls = append(h.calls, path)
	if digest, ok := h.digests[path]; ok {
		return digest, nil
	}
	return "fakehash", nil
}
