package pptx

import "errors"

// Sentinel errors for deck operations.
var (
	ErrInvalidSize  = errors.New("invalid slide size")
	ErrImageRead    = errors.New("failed to read image")
	ErrImageDecode  = errors.New("failed to decode image")
	ErrPackageWrite = errors.New("failed to write package")
	ErrPackageRead  = errors.New("failed to read package")
	ErrMalformed    = errors.New("malformed package")
	ErrPartTooLarge = errors.New("package part exceeds maximum size")
)
