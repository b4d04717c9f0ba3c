package pptx

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// picture is an image ready to be embedded as a media part.
type picture struct {
	data   []byte
	ext    string // "png" or "jpeg"
	name   string // source base name, used as alt text
	width  int    // pixels
	height int    // pixels
}

// loadPicture reads and decodes the image at path. PNG and JPEG bytes are
// embedded as-is; any other decodable format is re-encoded as PNG.
func loadPicture(path string) (*picture, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is a renderer artifact
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageRead, err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: %s: empty image", ErrImageDecode, path)
	}

	pic := &picture{
		data:   data,
		name:   filepath.Base(path),
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}

	switch format {
	case "png":
		pic.ext = "png"
	case "jpeg":
		pic.ext = "jpeg"
	default:
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("%w: re-encoding %s: %v", ErrImageDecode, path, err)
		}
		pic.data = buf.Bytes()
		pic.ext = "png"
	}

	return pic, nil
}
