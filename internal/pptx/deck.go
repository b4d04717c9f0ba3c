package pptx

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/alnah/go-html2pptx/internal/assets"
)

// EMU conversion and PowerPoint's accepted slide size range.
const (
	EMUPerInch   = 914400
	MinSlideSize = 1 * EMUPerInch
	MaxSlideSize = 56 * EMUPerInch
)

// First slide ID PowerPoint accepts, and the number of presentation
// relationships that precede the slide relationships.
const (
	firstSlideID          = 256
	fixedPresentationRels = 5
)

// zipEpoch pins entry timestamps so identical decks are byte-identical.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// staticParts maps asset names to their location in the package.
var staticParts = []struct {
	asset string
	path  string
}{
	{"rels", "_rels/.rels"},
	{"core", "docProps/core.xml"},
	{"presProps", "ppt/presProps.xml"},
	{"viewProps", "ppt/viewProps.xml"},
	{"tableStyles", "ppt/tableStyles.xml"},
	{"theme", "ppt/theme/theme1.xml"},
	{"slideMaster", "ppt/slideMasters/slideMaster1.xml"},
	{"slideMasterRels", "ppt/slideMasters/_rels/slideMaster1.xml.rels"},
	{"slideLayout", "ppt/slideLayouts/slideLayout1.xml"},
	{"slideLayoutRels", "ppt/slideLayouts/_rels/slideLayout1.xml.rels"},
}

// Deck is an in-memory presentation with a fixed slide size.
// Not safe for concurrent use.
type Deck struct {
	width  int64
	height int64
	loader assets.Loader
	slides []*picture
}

// Option configures a Deck.
type Option func(*Deck)

// WithLoader replaces the embedded part loader.
func WithLoader(l assets.Loader) Option {
	return func(d *Deck) {
		d.loader = l
	}
}

// New creates an empty deck whose slides measure width x height EMU.
func New(width, height int64, opts ...Option) (*Deck, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	d := &Deck{
		width:  width,
		height: height,
		loader: assets.NewEmbeddedLoader(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func validateSize(width, height int64) error {
	for _, v := range []int64{width, height} {
		if v < MinSlideSize || v > MaxSlideSize {
			return fmt.Errorf("%w: %dx%d EMU (each side must be between %d and %d)",
				ErrInvalidSize, width, height, MinSlideSize, MaxSlideSize)
		}
	}
	return nil
}

// Size returns the slide size in EMU.
func (d *Deck) Size() (width, height int64) {
	return d.width, d.height
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.slides)
}

// AddFullBleedPicture appends a slide showing the image at path, placed at
// (0,0) and stretched to the full slide size. The image is read immediately;
// the file may be removed once this returns.
func (d *Deck) AddFullBleedPicture(path string) error {
	pic, err := loadPicture(path)
	if err != nil {
		return err
	}
	d.slides = append(d.slides, pic)
	return nil
}

// slideEntry is the template view of one slide.
type slideEntry struct {
	Number int
	ID     int
	RelID  string
	Descr  string
	Media  string
	X, Y   int64
	CX, CY int64
}

// deckView is the template view of the whole deck.
type deckView struct {
	Width  int64
	Height int64
	Slides []slideEntry
}

func (d *Deck) view() (*deckView, error) {
	v := &deckView{Width: d.width, Height: d.height}
	for i, pic := range d.slides {
		n := i + 1
		var descr bytes.Buffer
		if err := xml.EscapeText(&descr, []byte(pic.name)); err != nil {
			return nil, err
		}
		v.Slides = append(v.Slides, slideEntry{
			Number: n,
			ID:     firstSlideID + i,
			RelID:  fmt.Sprintf("rId%d", fixedPresentationRels+n),
			Descr:  descr.String(),
			Media:  fmt.Sprintf("image%d.%s", n, pic.ext),
			CX:     d.width,
			CY:     d.height,
		})
	}
	return v, nil
}

// Write encodes the deck as a .pptx package.
func (d *Deck) Write(w io.Writer) error {
	view, err := d.view()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPackageWrite, err)
	}

	zw := zip.NewWriter(w)
	pw := &packageWriter{zw: zw, loader: d.loader}

	pw.render("[Content_Types].xml", "contentTypes", view)
	for _, p := range staticParts {
		pw.static(p.path, p.asset)
	}
	pw.render("docProps/app.xml", "app", view)
	pw.render("ppt/presentation.xml", "presentation", view)
	pw.render("ppt/_rels/presentation.xml.rels", "presentationRels", view)

	for i, s := range view.Slides {
		pw.render(fmt.Sprintf("ppt/slides/slide%d.xml", s.Number), "slide", s)
		pw.render(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", s.Number), "slideRels", s)
		pw.raw("ppt/media/"+s.Media, d.slides[i].data, zip.Store)
	}

	if pw.err != nil {
		return fmt.Errorf("%w: %v", ErrPackageWrite, pw.err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrPackageWrite, err)
	}
	return nil
}

// Save writes the deck to path. The package is written to a temporary file
// in the same directory and renamed into place, so a failed save never leaves
// a partial file at path.
func (d *Deck) Save(path string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".html2pptx-*.pptx")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPackageWrite, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = d.Write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrPackageWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrPackageWrite, err)
	}
	// #nosec G302 -- presentations are meant to be shared
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPackageWrite, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %v", ErrPackageWrite, err)
	}
	return nil
}

// packageWriter adds zip entries and keeps the first error.
type packageWriter struct {
	zw     *zip.Writer
	loader assets.Loader
	err    error
}

func (pw *packageWriter) raw(name string, data []byte, method uint16) {
	if pw.err != nil {
		return
	}
	w, err := pw.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: zipEpoch,
	})
	if err != nil {
		pw.err = fmt.Errorf("creating %s: %w", name, err)
		return
	}
	if _, err := w.Write(data); err != nil {
		pw.err = fmt.Errorf("writing %s: %w", name, err)
	}
}

func (pw *packageWriter) static(name, asset string) {
	if pw.err != nil {
		return
	}
	content, err := pw.loader.LoadPart(asset)
	if err != nil {
		pw.err = err
		return
	}
	pw.raw(name, []byte(content), zip.Deflate)
}

func (pw *packageWriter) render(name, asset string, data any) {
	if pw.err != nil {
		return
	}
	src, err := pw.loader.LoadTemplate(asset)
	if err != nil {
		pw.err = err
		return
	}
	tmpl, err := template.New(asset).Option("missingkey=error").Parse(src)
	if err != nil {
		pw.err = fmt.Errorf("parsing template %s: %w", asset, err)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		pw.err = fmt.Errorf("rendering %s: %w", name, err)
		return
	}
	pw.raw(name, buf.Bytes(), zip.Deflate)
}
