package html2pptx

import (
	"fmt"
	"net/url"
	"time"
)

// EMU (English Metric Units) per inch.
const EMUPerInch = 914400

// Default page size: 13.333 x 7.5 inches, 16:9.
const (
	DefaultPageWidth  = 12192000
	DefaultPageHeight = 6858000
)

// Page size bounds in EMU, matching what PowerPoint accepts (1 to 56 inches).
const (
	MinPageSide = 1 * EMUPerInch
	MaxPageSide = 56 * EMUPerInch
)

// Default capture resolution in pixels.
const (
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
)

// Viewport bounds in pixels.
const (
	MinViewportSide = 1
	MaxViewportSide = 16384
)

// MaxSlides caps a single run.
const MaxSlides = 10000

// DefaultSlideParam is the query parameter that selects a slide.
const DefaultSlideParam = "slide"

// ArtifactPrefix names temporary slide images: slide_temp_<i>.png.
const ArtifactPrefix = "slide_temp_"

// Renderer kinds accepted by WithRendererKind.
const (
	RendererRod    = "rod"
	RendererChrome = "chrome"
)

// Viewport is the pixel size of each captured slide.
type Viewport struct {
	Width  int
	Height int
}

// Validate checks the viewport is within bounds.
func (v Viewport) Validate() error {
	if v.Width < MinViewportSide || v.Width > MaxViewportSide ||
		v.Height < MinViewportSide || v.Height > MaxViewportSide {
		return fmt.Errorf("%w: %dx%d (each side must be between %d and %d px)",
			ErrInvalidViewport, v.Width, v.Height, MinViewportSide, MaxViewportSide)
	}
	return nil
}

// PageSize is the deck page size in EMU.
type PageSize struct {
	Width  int64
	Height int64
}

// Validate checks the page size is within PowerPoint's bounds.
func (p PageSize) Validate() error {
	if p.Width < MinPageSide || p.Width > MaxPageSide ||
		p.Height < MinPageSide || p.Height > MaxPageSide {
		return fmt.Errorf("%w: %dx%d EMU (each side must be between %d and %d)",
			ErrInvalidPageSize, p.Width, p.Height, MinPageSide, MaxPageSide)
	}
	return nil
}

// Inches returns the page size in inches.
func (p PageSize) Inches() (w, h float64) {
	return float64(p.Width) / EMUPerInch, float64(p.Height) / EMUPerInch
}

// Input contains conversion parameters.
type Input struct {
	Document   string   // HTML file path or URL (required)
	Slides     int      // number of slides, captured as indices 0..Slides-1
	Output     string   // deck path (required)
	Viewport   Viewport // zero = 1920x1080
	Page       PageSize // zero = 12192000x6858000 EMU
	SlideParam string   // zero = "slide"
	WorkDir    string   // directory for slide_temp_<i>.png; zero = current directory
}

// withDefaults fills zero-valued optional fields.
func (in Input) withDefaults() Input {
	if in.Viewport == (Viewport{}) {
		in.Viewport = Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
	if in.Page == (PageSize{}) {
		in.Page = PageSize{Width: DefaultPageWidth, Height: DefaultPageHeight}
	}
	if in.SlideParam == "" {
		in.SlideParam = DefaultSlideParam
	}
	return in
}

// Validate checks required fields and bounds. Zero-valued optional fields
// are accepted and replaced by defaults at conversion time.
func (in Input) Validate() error {
	in = in.withDefaults()

	if in.Document == "" {
		return ErrEmptyDocument
	}
	if in.Output == "" {
		return ErrEmptyOutput
	}
	if in.Slides < 0 || in.Slides > MaxSlides {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidSlideCount, in.Slides, MaxSlides)
	}
	if err := in.Viewport.Validate(); err != nil {
		return err
	}
	if err := in.Page.Validate(); err != nil {
		return err
	}
	if in.SlideParam != url.QueryEscape(in.SlideParam) {
		return fmt.Errorf("%w: %q (must be a plain query key)", ErrInvalidSlideParam, in.SlideParam)
	}
	return nil
}

// Result describes a completed conversion.
type Result struct {
	Output   string
	Slides   int
	Duration time.Duration
}
