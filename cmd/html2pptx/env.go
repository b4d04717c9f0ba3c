package main

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	html2pptx "github.com/alnah/go-html2pptx"
)

// Converter is the subset of *html2pptx.Converter the CLI needs.
type Converter interface {
	Convert(ctx context.Context, input html2pptx.Input) (*html2pptx.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*html2pptx.Converter)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, run identity, and converter construction.
type Environment struct {
	Stdout       io.Writer
	Stderr       io.Writer
	RunID        func() string
	IsTerminal   func(w io.Writer) bool
	NewConverter func(opts ...html2pptx.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		RunID:      uuid.NewString,
		IsTerminal: isTerminal,
		NewConverter: func(opts ...html2pptx.Option) (Converter, error) {
			return html2pptx.NewConverter(opts...)
		},
	}
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
