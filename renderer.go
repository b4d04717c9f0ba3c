package html2pptx

import "context"

// RenderRequest describes one slide capture.
type RenderRequest struct {
	URL        string // page to load, slide selector included
	Width      int    // viewport width in pixels
	Height     int    // viewport height in pixels
	OutputPath string // where the PNG must be written
}

// Renderer turns a page into a PNG file. Render blocks until the file is
// written or the capture fails. Implementations need not be safe for
// concurrent use.
type Renderer interface {
	Render(ctx context.Context, req RenderRequest) error
	Close() error
}

// Compile-time interface checks.
var (
	_ Renderer = (*rodRenderer)(nil)
	_ Renderer = (*chromeRenderer)(nil)
)
