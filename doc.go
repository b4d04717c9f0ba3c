// Package html2pptx turns an HTML slide deck into a PowerPoint presentation
// by capturing each slide with a headless browser.
//
// # Quick Start
//
// Create a converter, convert the deck, and close when done:
//
//	conv, err := html2pptx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, html2pptx.Input{
//	    Document: "pitchdeck.html",
//	    Slides:   12,
//	    Output:   "PitchDeck.pptx",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Slides, "slides written to", result.Output)
//
// # Conversion Pipeline
//
// For each slide index i from 0 to Slides-1, in order:
//
//  1. The document URL gets a slide=<i> query parameter
//  2. The renderer captures the page at the viewport size into slide_temp_<i>.png
//  3. The image is placed on a new page at (0,0), stretched to the page size
//
// Once every slide is captured the deck is saved to Output. The temporary
// images are removed whatever the outcome, and a failed run leaves no output
// file behind.
//
// The HTML document is expected to show the slide selected by the query
// parameter; html2pptx never parses it.
//
// # Renderers
//
// Two renderers are built in:
//
//   - RendererRod (default) drives one long-lived headless Chrome through
//     the DevTools protocol (go-rod). Rod downloads Chromium when none is found.
//   - RendererChrome runs the browser's own --screenshot mode, one process
//     per slide.
//
// Both honor ROD_BROWSER_BIN to pick the binary and disable the sandbox when
// CI=true or ROD_NO_SANDBOX=1:
//
//	conv, err := html2pptx.NewConverter(
//	    html2pptx.WithRendererKind(html2pptx.RendererChrome),
//	    html2pptx.WithBrowserBin("/usr/bin/chromium"),
//	    html2pptx.WithTimeout(time.Minute),
//	)
//
// Custom renderers and deck formats plug in through WithRenderer and
// WithDeckBuilder.
//
// # Error Handling
//
// Errors wrap sentinels that can be checked with errors.Is:
//
//	_, err := conv.Convert(ctx, input)
//	if errors.Is(err, html2pptx.ErrRenderFailed) {
//	    // a slide could not be captured
//	}
//
// Render failures also wrap the browser-level cause (ErrRenderTimeout,
// ErrBrowserExit, ErrMissingArtifact, ...).
package html2pptx
