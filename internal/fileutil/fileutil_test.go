package fileutil_test

// Notes:
// - Tracker.Cleanup onErr: a removal failure is triggered by tracking a
//   non-empty directory, which os.Remove refuses on every platform.
// - Permission-based failures are not tested because they depend on the
//   user running the tests (root ignores mode bits).
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-html2pptx/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"valid extension png", "png", nil},
		{"valid extension pptx", "pptx", nil},
		{"empty extension", "", fileutil.ErrExtensionEmpty},
		{"forward slash path traversal", "../etc/passwd", fileutil.ErrExtensionPathTraversal},
		{"backslash path traversal", "..\\windows\\system32", fileutil.ErrExtensionPathTraversal},
		{"null byte injection", "png\x00exe", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestArtifactPath - Deterministic per-index paths
// ---------------------------------------------------------------------------

func TestArtifactPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dir     string
		prefix  string
		index   int
		ext     string
		want    string
		wantErr error
	}{
		{"working directory", "", "slide_temp_", 0, "png", "slide_temp_0.png", nil},
		{"two digit index", "", "slide_temp_", 11, "png", "slide_temp_11.png", nil},
		{"explicit dir", "out", "slide_temp_", 3, "png", filepath.Join("out", "slide_temp_3.png"), nil},
		{"prefix with separator", "", "../x", 0, "png", "", fileutil.ErrPrefixInvalid},
		{"empty extension", "", "slide_temp_", 0, "", "", fileutil.ErrExtensionEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fileutil.ArtifactPath(tt.dir, tt.prefix, tt.index, tt.ext)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ArtifactPath() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ArtifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestNonEmptyFile - Stat helpers
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.png")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestNonEmptyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	full := filepath.Join(dir, "full.png")
	empty := filepath.Join(dir, "empty.png")
	if err := os.WriteFile(full, []byte("data"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.NonEmptyFile(full) {
		t.Error("NonEmptyFile(full) = false, want true")
	}
	if fileutil.NonEmptyFile(empty) {
		t.Error("NonEmptyFile(empty) = true, want false")
	}
	if fileutil.NonEmptyFile(dir) {
		t.Error("NonEmptyFile(dir) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath / TestIsURL - String classification
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"default", false},
		{"./deck.yaml", true},
		{"/abs/deck.yaml", true},
		{"C:\\decks\\deck.yaml", true},
		{"my-config", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"http://localhost:8080/deck.html", true},
		{"https://example.com/deck.html", true},
		{"file:///tmp/deck.html", true},
		{"pitchdeck.html", false},
		{"/tmp/deck.html", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsURL(tt.input); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestTracker - Scoped cleanup of temporary artifacts
// ---------------------------------------------------------------------------

func TestTracker_CleanupRemovesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var tr fileutil.Tracker

	for _, name := range []string{"a.png", "b.png"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		tr.Track(p)
	}
	// Tracked but never written.
	tr.Track(filepath.Join(dir, "never.png"))

	removed := tr.Cleanup(func(path string, err error) {
		t.Errorf("unexpected cleanup error for %s: %v", path, err)
	})
	if removed != 2 {
		t.Errorf("Cleanup() removed %d, want 2", removed)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty dir, found %d entries", len(entries))
	}
	if len(tr.Paths()) != 0 {
		t.Errorf("Paths() after Cleanup = %v, want empty", tr.Paths())
	}
}

func TestTracker_TrackDeduplicates(t *testing.T) {
	t.Parallel()

	var tr fileutil.Tracker
	tr.Track("a")
	tr.Track("b")
	tr.Track("a")

	got := tr.Paths()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Paths() = %v, want [a b]", got)
	}
}

func TestTracker_CleanupContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var tr fileutil.Tracker

	// A non-empty directory cannot be removed by os.Remove.
	blocked := filepath.Join(dir, "blocked")
	if err := os.MkdirAll(filepath.Join(blocked, "child"), 0o750); err != nil {
		t.Fatal(err)
	}
	after := filepath.Join(dir, "after.png")
	if err := os.WriteFile(after, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tr.Track(blocked)
	tr.Track(after)

	var failed []string
	removed := tr.Cleanup(func(path string, _ error) {
		failed = append(failed, path)
	})

	if removed != 1 {
		t.Errorf("Cleanup() removed %d, want 1", removed)
	}
	if len(failed) != 1 || failed[0] != blocked {
		t.Errorf("failed = %v, want [%s]", failed, blocked)
	}
	if fileutil.FileExists(after) {
		t.Error("file tracked after a failing path was not removed")
	}
}

func TestTracker_CleanupNilCallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.MkdirAll(filepath.Join(blocked, "child"), 0o750); err != nil {
		t.Fatal(err)
	}

	var tr fileutil.Tracker
	tr.Track(blocked)

	if removed := tr.Cleanup(nil); removed != 0 {
		t.Errorf("Cleanup(nil) removed %d, want 0", removed)
	}
}
