package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds flags describing the HTML deck.
type documentFlags struct {
	path       string
	slides     int
	slideParam string
}

// captureFlags holds rendering flags.
type captureFlags struct {
	width    int
	height   int
	renderer string
	browser  string
	timeout  string
}

// pageFlags holds deck page size flags, in EMU.
type pageFlags struct {
	width  int64
	height int64
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	document    documentFlags
	capture     captureFlags
	page        pageFlags
	output      string
	workDir     string
	printConfig bool

	// set reports whether a flag was given on the command line.
	set func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-slide timing and cleanup details")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.path, "document", "", "HTML deck file or URL (default pitchdeck.html)")
	fs.IntVarP(&f.slides, "slides", "n", 0, "number of slides (default 12)")
	fs.StringVar(&f.slideParam, "slide-param", "", "query parameter selecting a slide (default slide)")
}

// addCaptureFlags adds rendering flags to a FlagSet.
func addCaptureFlags(fs *flag.FlagSet, f *captureFlags) {
	fs.IntVar(&f.width, "width", 0, "capture width in pixels (default 1920)")
	fs.IntVar(&f.height, "height", 0, "capture height in pixels (default 1080)")
	fs.StringVar(&f.renderer, "renderer", "", "renderer: rod, chrome (default rod)")
	fs.StringVar(&f.browser, "browser", "", "browser binary (default auto-detect)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-slide timeout (e.g., 30s, 2m)")
}

// addPageFlags adds page size flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.Int64Var(&f.width, "page-width", 0, "page width in EMU (default 12192000)")
	fs.Int64Var(&f.height, "page-height", 0, "page height in EMU (default 6858000)")
}

// parseConvertFlags parses convert command flags and returns positional args.
// -h/--help prints usage to stdout and returns errHelpShown.
func parseConvertFlags(args []string, stdout io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "deck output path (default PitchDeck.pptx)")
	fs.StringVar(&f.workDir, "workdir", "", "directory for temporary slide images (default .)")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config as YAML and exit")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addCaptureFlags(fs, &f.capture)
	addPageFlags(fs, &f.page)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(stdout)
			return nil, nil, errHelpShown
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	f.set = func(name string) bool { return fs.Changed(name) }

	return f, fs.Args(), nil
}
