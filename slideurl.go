package html2pptx

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alnah/go-html2pptx/internal/fileutil"
)

// DocumentURL resolves a document location to a URL the browser can load.
// URLs (http, https, file) pass through unchanged. Anything else is treated
// as a local path, made absolute and checked for existence.
func DocumentURL(location string) (string, error) {
	if location == "" {
		return "", ErrEmptyDocument
	}
	if fileutil.IsURL(location) {
		if _, err := url.Parse(location); err != nil {
			return "", fmt.Errorf("%w: %v", ErrDocumentNotFound, err)
		}
		return location, nil
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("resolving document path: %w", err)
	}
	if !fileutil.FileExists(abs) {
		return "", fmt.Errorf("%w: %s: %w", ErrDocumentNotFound, abs, os.ErrNotExist)
	}

	p := filepath.ToSlash(abs)
	if p[0] != '/' {
		// Windows drive paths: file:///C:/...
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String(), nil
}

// SlideURL returns base with param set to index, keeping any existing query
// parameters and fragment.
func SlideURL(base, param string, index int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing document URL: %w", err)
	}
	q := u.Query()
	q.Set(param, strconv.Itoa(index))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
