package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidFlag     = errors.New("invalid flag")
	ErrOutputDir       = errors.New("failed to create output directory")
	ErrEnvFile         = errors.New("failed to load env file")
)

// errHelpShown signals that usage was printed on request (-h/--help).
var errHelpShown = errors.New("help shown")
