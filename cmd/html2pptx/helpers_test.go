package main

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/disintegration/imaging"

	html2pptx "github.com/alnah/go-html2pptx"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake renderer and environment
// ---------------------------------------------------------------------------

// paintRenderer writes a solid PNG per slide instead of launching a browser.
type paintRenderer struct {
	mu     sync.Mutex
	urls   []string
	failAt int // -1 = never
}

func (p *paintRenderer) Render(_ context.Context, req html2pptx.RenderRequest) error {
	p.mu.Lock()
	i := len(p.urls)
	p.urls = append(p.urls, req.URL)
	p.mu.Unlock()

	if i == p.failAt {
		return html2pptx.ErrBrowserExit
	}
	return imaging.Save(imaging.New(req.Width, req.Height, color.Gray{Y: uint8(40 * i)}), req.OutputPath)
}

func (p *paintRenderer) Close() error { return nil }

func (p *paintRenderer) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.urls...)
}

// testEnv returns an environment with captured output whose converters use r.
func testEnv(r html2pptx.Renderer) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Stdout:     stdout,
		Stderr:     stderr,
		RunID:      func() string { return "test-run" },
		IsTerminal: func(io.Writer) bool { return false },
		NewConverter: func(opts ...html2pptx.Option) (Converter, error) {
			return html2pptx.NewConverter(append(opts, html2pptx.WithRenderer(r))...)
		},
	}
	return env, stdout, stderr
}

// failingFactory refuses to build converters.
func failingFactory(opts ...html2pptx.Option) (Converter, error) {
	return nil, errors.New("factory broken")
}

// writeDoc creates an HTML deck in dir and returns its path.
func writeDoc(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "pitchdeck.html")
	if err := os.WriteFile(p, []byte("<html><body></body></html>"), 0o600); err != nil {
		t.Fatalf("writing document: %v", err)
	}
	return p
}

func assertNoSlideImages(t *testing.T, dir string) {
	t.Helper()
	matches, _ := filepath.Glob(filepath.Join(dir, html2pptx.ArtifactPrefix+"*"))
	if len(matches) > 0 {
		t.Errorf("leftover slide images: %v", matches)
	}
}
