package html2pptx

import "errors"

// Sentinel errors for library operations.
var (
	// ErrRenderFailed marks every failure to turn a slide into an image.
	// The browser-level sentinels below are wrapped alongside it.
	ErrRenderFailed    = errors.New("slide render failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrBrowserNotFound = errors.New("browser binary not found")
	ErrBrowserExit     = errors.New("browser exited with failure")
	ErrRenderTimeout   = errors.New("slide render timed out")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrScreenshot      = errors.New("screenshot capture failed")
	ErrMissingArtifact = errors.New("renderer produced no image")

	// Deck assembly errors.
	ErrDeckBuild = errors.New("deck assembly failed")
	ErrDeckSave  = errors.New("failed to save deck")

	// Input validation errors.
	ErrEmptyDocument      = errors.New("document location cannot be empty")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrEmptyOutput        = errors.New("output path cannot be empty")
	ErrInvalidSlideCount  = errors.New("invalid slide count")
	ErrInvalidViewport    = errors.New("invalid viewport")
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidSlideParam  = errors.New("invalid slide parameter")
	ErrUnknownRenderer    = errors.New("unknown renderer")
	ErrInvalidArtifactDir = errors.New("invalid artifact directory")
)
