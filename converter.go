package html2pptx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-html2pptx/internal/fileutil"
)

// artifactExt is the extension of captured slide images.
const artifactExt = "png"

// defaultTimeout bounds a single slide render when no option overrides it.
const defaultTimeout = 30 * time.Second

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout      time.Duration
	rendererKind string
	browserBin   string
}

// Option configures a Converter.
type Option func(*Converter)

// WithTimeout sets the per-slide render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pptx: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithRendererKind selects a built-in renderer: RendererRod (default) or
// RendererChrome. Ignored when WithRenderer is also given.
func WithRendererKind(kind string) Option {
	return func(c *Converter) {
		c.cfg.rendererKind = kind
	}
}

// WithBrowserBin sets the browser binary used by the built-in renderers.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithRenderer replaces the built-in renderer. The Converter takes ownership
// and closes it in Close.
func WithRenderer(r Renderer) Option {
	return func(c *Converter) {
		c.renderer = r
	}
}

// WithDeckBuilder replaces the default .pptx deck builder.
func WithDeckBuilder(b DeckBuilder) Option {
	return func(c *Converter) {
		c.deckBuilder = b
	}
}

// WithLogger sets the logger for progress messages. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// Converter captures HTML slides and assembles them into a deck.
// Create with NewConverter, use Convert, and Close when done.
// A Converter processes one deck at a time; it is not safe for concurrent use.
type Converter struct {
	cfg         converterConfig
	renderer    Renderer
	deckBuilder DeckBuilder
	logger      *slog.Logger
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithRendererKind, WithLogger).
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout, rendererKind: RendererRod},
		deckBuilder: NewPPTXBuilder(),
		logger:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create renderer if not injected (e.g., by tests)
	if c.renderer == nil {
		switch c.cfg.rendererKind {
		case RendererRod, "":
			c.renderer = newRodRenderer(c.cfg.browserBin, c.cfg.timeout)
		case RendererChrome:
			c.renderer = newChromeRenderer(c.cfg.browserBin, c.cfg.timeout)
		default:
			return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownRenderer, c.cfg.rendererKind, RendererRod, RendererChrome)
		}
	}

	return c, nil
}

// Convert renders slides 0..input.Slides-1 in order, places each image full
// bleed on its own page, and saves the deck to input.Output.
//
// The deck is saved only after every slide succeeded. Temporary slide images
// are removed on every exit path, including render failures, cancellation
// and recovered panics; a failed removal is logged at debug level and never
// changes the returned error.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	start := time.Now()

	input = input.withDefaults()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.WorkDir != "" && !isDir(input.WorkDir) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArtifactDir, input.WorkDir)
	}

	base, err := DocumentURL(input.Document)
	if err != nil {
		return nil, err
	}

	var artifacts fileutil.Tracker
	defer func() {
		removed := artifacts.Cleanup(func(path string, cerr error) {
			c.logger.Debug("removing slide image failed", "path", path, "error", cerr)
		})
		c.logger.Debug("cleanup done", "removed", removed)
	}()
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	deck, err := c.deckBuilder.NewDeck(input.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeckBuild, err)
	}

	for i := 0; i < input.Slides; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		artifact, err := fileutil.ArtifactPath(input.WorkDir, ArtifactPrefix, i, artifactExt)
		if err != nil {
			return nil, err
		}
		// Tracked before rendering so a partial write is removed too.
		artifacts.Track(artifact)

		slideURL, err := SlideURL(base, input.SlideParam, i)
		if err != nil {
			return nil, err
		}

		c.logger.Info("capturing slide", "slide", i+1, "of", input.Slides)
		slideStart := time.Now()
		if err := c.capture(ctx, RenderRequest{
			URL:        slideURL,
			Width:      input.Viewport.Width,
			Height:     input.Viewport.Height,
			OutputPath: artifact,
		}); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}

		if err := deck.AppendFullBleedPage(artifact); err != nil {
			return nil, fmt.Errorf("slide %d: %w: %v", i, ErrDeckBuild, err)
		}
		c.logger.Debug("slide placed", "slide", i, "path", artifact, "elapsed", time.Since(slideStart))
	}

	c.logger.Info("saving deck", "output", input.Output, "pages", deck.Len())
	if err := deck.Save(input.Output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeckSave, err)
	}

	return &Result{
		Output:   input.Output,
		Slides:   deck.Len(),
		Duration: time.Since(start),
	}, nil
}

// capture renders one slide and verifies the image exists. Every failure is
// reported as ErrRenderFailed, wrapping the renderer's own error.
func (c *Converter) capture(ctx context.Context, req RenderRequest) error {
	// A stale image from an earlier run must not pass for this one.
	if err := os.Remove(req.OutputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: removing stale %s: %v", ErrRenderFailed, req.OutputPath, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	if err := c.renderer.Render(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	if !fileutil.NonEmptyFile(req.OutputPath) {
		return fmt.Errorf("%w: %w: %s", ErrRenderFailed, ErrMissingArtifact, req.OutputPath)
	}
	return nil
}

// Close releases renderer resources (headless browser).
func (c *Converter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
