package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// MaxPartSize limits how much of a single package part is read, so a
// compressed bomb cannot exhaust memory (default 64MB).
var MaxPartSize int64 = 64 << 20

// Summary describes a presentation's slide size and pictures.
type Summary struct {
	Width  int64
	Height int64
	Slides []SlideInfo
}

// SlideInfo describes the pictures on one slide, in shape-tree order.
type SlideInfo struct {
	Part     string
	Pictures []PictureInfo
}

// PictureInfo is the geometry and media of one picture.
type PictureInfo struct {
	Name      string
	X, Y      int64
	CX, CY    int64
	Media     string // package path of the image part
	MediaData []byte
}

// FullBleed reports whether the picture exactly covers a w x h slide.
func (p PictureInfo) FullBleed(w, h int64) bool {
	return p.X == 0 && p.Y == 0 && p.CX == w && p.CY == h
}

// Open reads the package at name.
func Open(name string) (*Summary, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackageRead, err)
	}
	defer zr.Close()

	return read(&zr.Reader)
}

// Read reads a package from r.
func Read(r io.ReaderAt, size int64) (*Summary, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackageRead, err)
	}
	return read(zr)
}

type presentationXML struct {
	SldIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SldSz struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

type relationshipsXML struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type slideXML struct {
	Pics []struct {
		CNvPr struct {
			Name string `xml:"name,attr"`
		} `xml:"nvPicPr>cNvPr"`
		Blip struct {
			Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
		} `xml:"blipFill>blip"`
		Off struct {
			X int64 `xml:"x,attr"`
			Y int64 `xml:"y,attr"`
		} `xml:"spPr>xfrm>off"`
		Ext struct {
			CX int64 `xml:"cx,attr"`
			CY int64 `xml:"cy,attr"`
		} `xml:"spPr>xfrm>ext"`
	} `xml:"cSld>spTree>pic"`
}

func read(zr *zip.Reader) (*Summary, error) {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	var pres presentationXML
	if err := decodePart(files, "ppt/presentation.xml", &pres); err != nil {
		return nil, err
	}
	presRels, err := readRels(files, "ppt/presentation.xml")
	if err != nil {
		return nil, err
	}

	sum := &Summary{Width: pres.SldSz.CX, Height: pres.SldSz.CY}
	for _, id := range pres.SldIDs {
		target, ok := presRels[id.RelID]
		if !ok {
			return nil, fmt.Errorf("%w: slide relationship %q not found", ErrMalformed, id.RelID)
		}
		slide, err := readSlide(files, target)
		if err != nil {
			return nil, err
		}
		sum.Slides = append(sum.Slides, *slide)
	}
	return sum, nil
}

func readSlide(files map[string]*zip.File, part string) (*SlideInfo, error) {
	var sx slideXML
	if err := decodePart(files, part, &sx); err != nil {
		return nil, err
	}
	rels, err := readRels(files, part)
	if err != nil {
		return nil, err
	}

	info := &SlideInfo{Part: part}
	for _, p := range sx.Pics {
		pic := PictureInfo{
			Name: p.CNvPr.Name,
			X:    p.Off.X,
			Y:    p.Off.Y,
			CX:   p.Ext.CX,
			CY:   p.Ext.CY,
		}
		if media, ok := rels[p.Blip.Embed]; ok {
			pic.Media = media
			data, err := readPart(files, media)
			if err != nil {
				return nil, err
			}
			pic.MediaData = data
		}
		info.Pictures = append(info.Pictures, pic)
	}
	return info, nil
}

// readRels returns the relationship targets of part, resolved to package paths.
func readRels(files map[string]*zip.File, part string) (map[string]string, error) {
	dir, base := path.Split(part)
	relsPath := dir + "_rels/" + base + ".rels"

	var rx relationshipsXML
	if err := decodePart(files, relsPath, &rx); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rx.Rels))
	for _, r := range rx.Rels {
		target := r.Target
		if strings.HasPrefix(target, "/") {
			target = strings.TrimPrefix(target, "/")
		} else {
			target = path.Join(dir, target)
		}
		out[r.ID] = target
	}
	return out, nil
}

func decodePart(files map[string]*zip.File, name string, v any) error {
	data, err := readPart(files, name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return nil
}

func readPart(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", ErrMalformed, name)
	}
	if f.UncompressedSize64 > uint64(MaxPartSize) {
		return nil, fmt.Errorf("%w: %s: %d bytes (max %d)", ErrPartTooLarge, name, f.UncompressedSize64, MaxPartSize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPackageRead, name, err)
	}
	defer rc.Close()

	// The header size can lie; cap the stream too.
	data, err := io.ReadAll(io.LimitReader(rc, MaxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPackageRead, name, err)
	}
	if int64(len(data)) > MaxPartSize {
		return nil, fmt.Errorf("%w: %s: more than %d bytes", ErrPartTooLarge, name, MaxPartSize)
	}
	return data, nil
}
