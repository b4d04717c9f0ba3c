package html2pptx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2pptx/internal/process"
)

// rodRenderer implements Renderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	bin      string
	timeout  time.Duration
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// newRodRenderer creates a rodRenderer. An empty bin defers to
// ROD_BROWSER_BIN, then to rod's own lookup/download.
func newRodRenderer(bin string, timeout time.Duration) *rodRenderer {
	return &rodRenderer{bin: bin, timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New().Headless(true).Set("hide-scrollbars")

	bin := r.bin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if noSandbox() || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// noSandbox reports whether the environment asks for Chrome's sandbox to be off.
func noSandbox() bool {
	return os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1"
}

// Close releases browser resources and kills the browser process tree.
func (r *rodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	r.browser = nil

	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		r.launcher.Kill()
		r.launcher.Cleanup()
		r.launcher = nil
	}
	return err
}

// Render opens req.URL in a fresh tab sized to the viewport and writes a PNG
// screenshot of the viewport to req.OutputPath.
func (r *rodRenderer) Render(ctx context.Context, req RenderRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.ensureBrowser(); err != nil {
		return err
	}

	// The tab is created and closed outside ctx so it is released even
	// after a timeout or cancellation; only the work below is bound to ctx.
	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return fmt.Errorf("%w: %v", ErrRenderTimeout, context.DeadlineExceeded)
		}
	}
	p := page.Context(ctx).Timeout(timeout)

	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             req.Width,
		Height:            req.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	if err := p.Navigate(req.URL); err != nil {
		return wrapTimeout(ErrPageLoad, err)
	}
	if err := p.WaitLoad(); err != nil {
		return wrapTimeout(ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return err
	}

	png, err := p.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return wrapTimeout(ErrScreenshot, err)
	}

	if err := os.WriteFile(req.OutputPath, png, 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrScreenshot, req.OutputPath, err)
	}
	return nil
}

// wrapTimeout reports deadline errors as ErrRenderTimeout and everything
// else as sentinel.
func wrapTimeout(sentinel, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
