package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	html2pptx "github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/config"
	"github.com/alnah/go-html2pptx/internal/fileutil"
	"github.com/alnah/go-html2pptx/internal/hints"
	"github.com/alnah/go-html2pptx/internal/yamlutil"
)

// dirPermissions is used when creating the output directory.
const dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute

// runConvert exports one deck: config, then flags, then the pipeline.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: unexpected arguments %v", ErrInvalidFlag, positional[1:])
	}
	if len(positional) == 1 && flags.set("document") {
		return fmt.Errorf("%w: document given both as argument and --document", ErrInvalidFlag)
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeFlags(flags, positional, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.printConfig {
		data, err := yamlutil.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, levelFor(flags.common.verbose, flags.common.quiet), env.IsTerminal(env.Stderr)).
		With("run", env.RunID())

	if err := ensureOutputDir(cfg.Output.Path); err != nil {
		return err
	}

	opts := []html2pptx.Option{
		html2pptx.WithLogger(logger),
		html2pptx.WithRendererKind(strings.ToLower(cfg.Capture.Renderer)),
		html2pptx.WithBrowserBin(cfg.Capture.Browser),
	}
	if timeout > 0 {
		opts = append(opts, html2pptx.WithTimeout(timeout))
	}

	conv, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conv.Close(); cerr != nil {
			logger.Debug("closing browser failed", "error", cerr)
		}
	}()

	input := buildInput(cfg)
	logger.Info("exporting deck", "document", input.Document, "slides", input.Slides, "renderer", cfg.Capture.Renderer)

	result, err := conv.Convert(ctx, input)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted: %w", err)
		}
		return withHint(err, cfg)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%d slides in %s)\n",
			result.Output, result.Slides, result.Duration.Round(time.Millisecond))
	}
	return nil
}

// loadConfig returns the built-in config, or the named/path config file.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			paths := []string{nameOrPath}
			if !fileutil.IsFilePath(nameOrPath) {
				paths = config.SearchPaths(nameOrPath)
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(paths))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, positional []string, cfg *config.Config) {
	set := flags.set
	if set == nil {
		set = func(string) bool { return false }
	}

	// Document
	if len(positional) == 1 {
		cfg.Document.Path = positional[0]
	}
	if set("document") {
		cfg.Document.Path = flags.document.path
	}
	if set("slides") {
		cfg.Document.Slides = flags.document.slides
	}
	if set("slide-param") {
		cfg.Document.SlideParam = flags.document.slideParam
	}

	// Output
	if set("output") {
		cfg.Output.Path = flags.output
	}
	if set("workdir") {
		cfg.Output.WorkDir = flags.workDir
	}

	// Capture
	if set("width") {
		cfg.Capture.Width = flags.capture.width
	}
	if set("height") {
		cfg.Capture.Height = flags.capture.height
	}
	if set("renderer") {
		cfg.Capture.Renderer = flags.capture.renderer
	}
	if set("browser") {
		cfg.Capture.Browser = flags.capture.browser
	}
	if set("timeout") {
		cfg.Capture.Timeout = flags.capture.timeout
	}

	// Page
	if set("page-width") {
		cfg.Page.Width = flags.page.width
	}
	if set("page-height") {
		cfg.Page.Height = flags.page.height
	}
}

// buildInput converts the merged config into library input.
func buildInput(cfg *config.Config) html2pptx.Input {
	return html2pptx.Input{
		Document:   cfg.Document.Path,
		Slides:     cfg.Document.Slides,
		Output:     cfg.Output.Path,
		Viewport:   html2pptx.Viewport{Width: cfg.Capture.Width, Height: cfg.Capture.Height},
		Page:       html2pptx.PageSize{Width: cfg.Page.Width, Height: cfg.Page.Height},
		SlideParam: cfg.Document.SlideParam,
		WorkDir:    cfg.Output.WorkDir,
	}
}

// ensureOutputDir creates the parent directory of the deck if needed.
func ensureOutputDir(output string) error {
	dir := filepath.Dir(output)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrOutputDir, err, hints.ForOutputDirectory())
	}
	return nil
}

// withHint appends an actionable hint for well-known failures.
func withHint(err error, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, html2pptx.ErrBrowserNotFound):
		hint = hints.ForBrowserNotFound()
	case errors.Is(err, html2pptx.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, html2pptx.ErrRenderTimeout), errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, html2pptx.ErrMissingArtifact):
		param := cfg.Document.SlideParam
		if param == "" {
			param = html2pptx.DefaultSlideParam
		}
		hint = hints.ForMissingArtifact(param)
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
