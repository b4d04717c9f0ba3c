// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrPrefixInvalid          = errors.New("prefix contains path separator or null byte")
)

// ArtifactPath returns the deterministic path of the artifact for index i:
// {dir}/{prefix}{i}.{extension}. An empty dir means the working directory.
func ArtifactPath(dir, prefix string, i int, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	if strings.ContainsAny(prefix, "/\\\x00") {
		return "", fmt.Errorf("%w: %q", ErrPrefixInvalid, prefix)
	}
	name := fmt.Sprintf("%s%d.%s", prefix, i, extension)
	if dir == "" {
		return name, nil
	}
	return filepath.Join(dir, name), nil
}

// ValidateExtension checks that the extension is safe for use in file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// NonEmptyFile returns true if the path is a regular file with at least one byte.
func NonEmptyFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./deck.yaml" -> true (relative path)
//   - "/absolute/deck.yaml" -> true (absolute)
//   - "C:\decks\deck.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string carries a scheme the browser can load directly.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "file://")
}

// Tracker accumulates paths of temporary files and removes them all in one pass.
// The zero value is ready to use.
type Tracker struct {
	mu    sync.Mutex
	paths []string
}

// Track records path for later removal. Tracking the same path twice is a no-op.
func (t *Tracker) Track(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.paths {
		if p == path {
			return
		}
	}
	t.paths = append(t.paths, path)
}

// Paths returns a copy of the tracked paths in tracking order.
func (t *Tracker) Paths() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.paths))
	copy(out, t.paths)
	return out
}

// Cleanup removes every tracked path that still exists and forgets them.
// A failed removal never stops the pass; onErr, if non-nil, is called for it.
// Returns the number of files removed.
func (t *Tracker) Cleanup(onErr func(path string, err error)) int {
	t.mu.Lock()
	paths := t.paths
	t.paths = nil
	t.mu.Unlock()

	removed := 0
	for _, p := range paths {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, os.ErrNotExist):
			// never written, or already gone
		case onErr != nil:
			onErr(p, err)
		}
	}
	return removed
}
