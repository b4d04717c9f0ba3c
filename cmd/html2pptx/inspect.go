package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2pptx/internal/pptx"
)

// emuPerInch converts EMU to inches for display.
const emuPerInch = 914400.0

// inspectReport is the machine-readable form of a deck summary.
type inspectReport struct {
	Path   string         `json:"path"`
	Width  int64          `json:"width_emu"`
	Height int64          `json:"height_emu"`
	Slides []inspectSlide `json:"slides"`
}

type inspectSlide struct {
	Number   int              `json:"number"`
	Part     string           `json:"part"`
	Pictures []inspectPicture `json:"pictures"`
}

type inspectPicture struct {
	Name      string `json:"name"`
	X         int64  `json:"x"`
	Y         int64  `json:"y"`
	CX        int64  `json:"cx"`
	CY        int64  `json:"cy"`
	FullBleed bool   `json:"full_bleed"`
	Media     string `json:"media"`
	PixelW    int    `json:"pixel_width,omitempty"`
	PixelH    int    `json:"pixel_height,omitempty"`
}

// runInspect prints the page size and picture geometry of a .pptx file.
func runInspect(args []string, env *Environment) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	jsonOutput := fs.Bool("json", false, "output JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printInspectUsage(env.Stdout)
			return errHelpShown
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: inspect needs exactly one .pptx file", ErrMissingArgument)
	}

	path := fs.Arg(0)
	sum, err := pptx.Open(path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}

	report := buildReport(path, sum)
	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(env.Stdout, report)
	return nil
}

func buildReport(path string, sum *pptx.Summary) *inspectReport {
	r := &inspectReport{Path: path, Width: sum.Width, Height: sum.Height, Slides: []inspectSlide{}}
	for i, s := range sum.Slides {
		slide := inspectSlide{Number: i + 1, Part: s.Part, Pictures: []inspectPicture{}}
		for _, p := range s.Pictures {
			pic := inspectPicture{
				Name:      p.Name,
				X:         p.X,
				Y:         p.Y,
				CX:        p.CX,
				CY:        p.CY,
				FullBleed: p.FullBleed(sum.Width, sum.Height),
				Media:     p.Media,
			}
			if img, err := imaging.Decode(bytes.NewReader(p.MediaData)); err == nil {
				b := img.Bounds()
				pic.PixelW, pic.PixelH = b.Dx(), b.Dy()
			}
			slide.Pictures = append(slide.Pictures, pic)
		}
		r.Slides = append(r.Slides, slide)
	}
	return r
}

func printReport(w io.Writer, r *inspectReport) {
	fmt.Fprintln(w, r.Path)
	fmt.Fprintf(w, "Page size: %d x %d EMU (%.2f x %.2f in)\n",
		r.Width, r.Height, float64(r.Width)/emuPerInch, float64(r.Height)/emuPerInch)
	fmt.Fprintf(w, "Slides: %d\n", len(r.Slides))

	for _, s := range r.Slides {
		fmt.Fprintf(w, "\n  %d  %s\n", s.Number, s.Part)
		if len(s.Pictures) == 0 {
			fmt.Fprintln(w, "     (no pictures)")
		}
		for _, p := range s.Pictures {
			fit := "partial"
			if p.FullBleed {
				fit = "full-bleed"
			}
			fmt.Fprintf(w, "     %s at (%d,%d) %dx%d %s\n", p.Media, p.X, p.Y, p.CX, p.CY, fit)
			if p.PixelW > 0 {
				fmt.Fprintf(w, "     image %dx%d px\n", p.PixelW, p.PixelH)
			}
		}
	}
}
