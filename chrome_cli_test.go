//go:build !windows

package html2pptx

// Notes:
// - The browser is replaced by a shell script that records its arguments and
//   copies a fixture PNG to the --screenshot path, so the process contract is
//   exercised without Chrome installed.
// - Tests touching CI/ROD_* variables use t.Setenv and cannot run in parallel.

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/alnah/go-html2pptx/internal/pptx"
)

// fakeBrowser writes an executable script into dir and returns its path.
// The script logs its arguments to args.txt, then runs body.
func fakeBrowser(t *testing.T, dir, body string) string {
	t.Helper()
	script := "#!/bin/sh\n" +
		"printf '%s\\n' \"$@\" > \"" + filepath.Join(dir, "args.txt") + "\"\n" +
		body + "\n"
	p := filepath.Join(dir, "chrome")
	if err := os.WriteFile(p, []byte(script), 0o700); err != nil { // #nosec G306 -- test executable
		t.Fatalf("writing fake browser: %v", err)
	}
	return p
}

// screenshotBody copies fixture to the --screenshot path.
func screenshotBody(fixture string) string {
	return `for a in "$@"; do
  case "$a" in
    --screenshot=*) out="${a#--screenshot=}" ;;
  esac
done
cp "` + fixture + `" "$out"`
}

func clearSandboxEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CI", "")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")
}

// ---------------------------------------------------------------------------
// TestChromeRenderer_Args - Command line contract
// ---------------------------------------------------------------------------

func TestChromeRenderer_Args(t *testing.T) {
	clearSandboxEnv(t)

	r := newChromeRenderer("chrome", time.Second)
	req := RenderRequest{
		URL:        "file:///tmp/pitchdeck.html?slide=2",
		Width:      1920,
		Height:     1080,
		OutputPath: "slide_temp_2.png",
	}

	want := []string{
		"--headless",
		"--hide-scrollbars",
		"--window-size=1920,1080",
		"--screenshot=slide_temp_2.png",
		"file:///tmp/pitchdeck.html?slide=2",
	}
	if got := r.args(req); !reflect.DeepEqual(got, want) {
		t.Errorf("args() = %q, want %q", got, want)
	}

	t.Setenv("CI", "true")
	got := r.args(req)
	if got[len(got)-2] != "--no-sandbox" || got[len(got)-1] != req.URL {
		t.Errorf("args() with CI=true = %q, want --no-sandbox before URL", got)
	}
}

func TestChromeRenderer_ResolveBin(t *testing.T) {
	clearSandboxEnv(t)

	r := newChromeRenderer("/opt/chrome", time.Second)
	if got, err := r.resolveBin(); err != nil || got != "/opt/chrome" {
		t.Errorf("resolveBin() = %q, %v, want /opt/chrome", got, err)
	}

	t.Setenv("ROD_BROWSER_BIN", "/env/chromium")
	r = newChromeRenderer("", time.Second)
	if got, err := r.resolveBin(); err != nil || got != "/env/chromium" {
		t.Errorf("resolveBin() = %q, %v, want /env/chromium", got, err)
	}
}

// ---------------------------------------------------------------------------
// TestChromeRenderer_Render - Process outcomes
// ---------------------------------------------------------------------------

func TestChromeRenderer_Render(t *testing.T) {
	clearSandboxEnv(t)

	dir := t.TempDir()
	fixture := filepath.Join(dir, "fixture.png")
	if err := imaging.Save(imaging.New(16, 9, color.White), fixture); err != nil {
		t.Fatal(err)
	}
	bin := fakeBrowser(t, dir, screenshotBody(fixture))

	r := newChromeRenderer(bin, 5*time.Second)
	out := filepath.Join(dir, "slide_temp_0.png")
	err := r.Render(context.Background(), RenderRequest{
		URL:        "file:///deck.html?slide=0",
		Width:      16,
		Height:     9,
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		t.Fatalf("screenshot not written: %v", err)
	}

	args, err := os.ReadFile(filepath.Join(dir, "args.txt"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"--headless", "--window-size=16,9", "--screenshot=" + out, "file:///deck.html?slide=0"} {
		if !strings.Contains(string(args), want+"\n") {
			t.Errorf("browser args %q missing %q", args, want)
		}
	}
}

func TestChromeRenderer_RenderErrors(t *testing.T) {
	clearSandboxEnv(t)

	req := func(dir string) RenderRequest {
		return RenderRequest{URL: "file:///deck.html?slide=0", Width: 8, Height: 8, OutputPath: filepath.Join(dir, "out.png")}
	}

	t.Run("non-zero exit", func(t *testing.T) {
		dir := t.TempDir()
		r := newChromeRenderer(fakeBrowser(t, dir, "exit 3"), 5*time.Second)
		err := r.Render(context.Background(), req(dir))
		if !errors.Is(err, ErrBrowserExit) {
			t.Fatalf("error = %v, want ErrBrowserExit", err)
		}
		if !strings.Contains(err.Error(), "exit status 3") {
			t.Errorf("error = %v, want exit status 3", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		dir := t.TempDir()
		r := newChromeRenderer(fakeBrowser(t, dir, "exec sleep 10"), 100*time.Millisecond)
		start := time.Now()
		err := r.Render(context.Background(), req(dir))
		if !errors.Is(err, ErrRenderTimeout) {
			t.Fatalf("error = %v, want ErrRenderTimeout", err)
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("Render() took %v after timeout, process not killed", elapsed)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		dir := t.TempDir()
		r := newChromeRenderer(fakeBrowser(t, dir, "exit 0"), time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := r.Render(ctx, req(dir)); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		dir := t.TempDir()
		r := newChromeRenderer(filepath.Join(dir, "no-such-chrome"), time.Second)
		if err := r.Render(context.Background(), req(dir)); !errors.Is(err, ErrBrowserNotFound) {
			t.Errorf("error = %v, want ErrBrowserNotFound", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvert_ChromeRenderer - Pipeline over the process contract
// ---------------------------------------------------------------------------

func TestConvert_ChromeRenderer(t *testing.T) {
	clearSandboxEnv(t)

	in := testInput(t, 3)
	fixture := filepath.Join(t.TempDir(), "fixture.png")
	if err := imaging.Save(imaging.New(32, 18, color.White), fixture); err != nil {
		t.Fatal(err)
	}
	bin := fakeBrowser(t, t.TempDir(), screenshotBody(fixture))

	c, err := NewConverter(WithRendererKind(RendererChrome), WithBrowserBin(bin), WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer c.Close()

	if _, err := c.Convert(context.Background(), in); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	sum, err := pptx.Open(in.Output)
	if err != nil {
		t.Fatalf("pptx.Open() error = %v", err)
	}
	if len(sum.Slides) != 3 {
		t.Errorf("got %d pages, want 3", len(sum.Slides))
	}
	assertNoArtifacts(t, in.WorkDir)
}
