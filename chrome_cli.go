package html2pptx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-html2pptx/internal/process"
)

// waitDelay bounds how long Wait blocks on a killed browser's inherited pipes.
const waitDelay = 2 * time.Second

// chromeRenderer implements Renderer by running the browser's built-in
// screenshot mode, one process per slide:
//
//	chrome --headless --hide-scrollbars --window-size=W,H --screenshot=PATH URL
type chromeRenderer struct {
	bin     string
	timeout time.Duration
}

// newChromeRenderer creates a chromeRenderer. An empty bin defers to
// ROD_BROWSER_BIN, then to a lookup of installed Chrome/Chromium.
func newChromeRenderer(bin string, timeout time.Duration) *chromeRenderer {
	return &chromeRenderer{bin: bin, timeout: timeout}
}

// resolveBin returns the browser binary to execute.
func (r *chromeRenderer) resolveBin() (string, error) {
	if r.bin != "" {
		return r.bin, nil
	}
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, nil
	}
	if bin, found := launcher.LookPath(); found {
		return bin, nil
	}
	return "", fmt.Errorf("%w: install Chrome or set ROD_BROWSER_BIN", ErrBrowserNotFound)
}

// args builds the browser command line for req.
func (r *chromeRenderer) args(req RenderRequest) []string {
	args := []string{
		"--headless",
		"--hide-scrollbars",
		fmt.Sprintf("--window-size=%d,%d", req.Width, req.Height),
		"--screenshot=" + req.OutputPath,
	}
	if noSandbox() {
		args = append(args, "--no-sandbox")
	}
	return append(args, req.URL)
}

// Render runs the browser and blocks until it exits. A non-zero exit status
// is ErrBrowserExit; exceeding the deadline is ErrRenderTimeout.
func (r *chromeRenderer) Render(ctx context.Context, req RenderRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bin, err := r.resolveBin()
	if err != nil {
		return err
	}

	if _, ok := ctx.Deadline(); !ok && r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, r.args(req)...) // #nosec G204 -- binary is user-configured
	process.Detach(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = waitDelay

	err = cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrRenderTimeout, req.URL)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrBrowserNotFound, bin)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: exit status %d", ErrBrowserExit, exitErr.ExitCode())
	}
	return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
}

// Close is a no-op; each render owns its process.
func (r *chromeRenderer) Close() error {
	return nil
}
