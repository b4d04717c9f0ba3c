package main

import (
	"errors"
	"os"

	html2pptx "github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/config"
	"github.com/alnah/go-html2pptx/internal/pptx"
)

// Exit codes for html2pptx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/render errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, html2pptx.ErrRenderFailed) ||
		errors.Is(err, html2pptx.ErrBrowserConnect) ||
		errors.Is(err, html2pptx.ErrBrowserNotFound) ||
		errors.Is(err, html2pptx.ErrBrowserExit) ||
		errors.Is(err, html2pptx.ErrRenderTimeout) ||
		errors.Is(err, html2pptx.ErrPageCreate) ||
		errors.Is(err, html2pptx.ErrPageLoad) ||
		errors.Is(err, html2pptx.ErrScreenshot) ||
		errors.Is(err, html2pptx.ErrMissingArtifact) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, html2pptx.ErrDocumentNotFound) ||
		errors.Is(err, html2pptx.ErrDeckSave) ||
		errors.Is(err, html2pptx.ErrInvalidArtifactDir) ||
		errors.Is(err, pptx.ErrPackageRead) ||
		errors.Is(err, pptx.ErrMalformed) ||
		errors.Is(err, pptx.ErrPartTooLarge) ||
		errors.Is(err, ErrOutputDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, html2pptx.ErrEmptyDocument) ||
		errors.Is(err, html2pptx.ErrEmptyOutput) ||
		errors.Is(err, html2pptx.ErrInvalidSlideCount) ||
		errors.Is(err, html2pptx.ErrInvalidViewport) ||
		errors.Is(err, html2pptx.ErrInvalidPageSize) ||
		errors.Is(err, html2pptx.ErrInvalidSlideParam) ||
		errors.Is(err, html2pptx.ErrUnknownRenderer) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrEnvFile) {
		return ExitUsage
	}

	return ExitGeneral
}
