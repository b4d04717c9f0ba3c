package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pptx/internal/fileutil"
	"github.com/alnah/go-html2pptx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDir is the directory under the user config dir searched for configs.
const appDir = "html2pptx"

// Field length limits.
const (
	MaxPathLength       = 4096 // PATH_MAX on Linux
	MaxURLLength        = 2048 // Browser limit
	MaxSlideParamLength = 64
	MaxDurationLength   = 20 // "1h30m15s"
)

// Numeric limits. Zero sizes mean "use the default".
const (
	MaxSlides       = 10000
	MaxViewportSide = 16384
	MaxPageSide     = 56 * 914400 // 56 inches in EMU
)

// Built-in defaults: a 12-slide 16:9 pitch deck.
const (
	DefaultDocument   = "pitchdeck.html"
	DefaultSlides     = 12
	DefaultSlideParam = "slide"
	DefaultOutput     = "PitchDeck.pptx"
	DefaultWidth      = 1920
	DefaultHeight     = 1080
	DefaultPageWidth  = 12192000
	DefaultPageHeight = 6858000
	DefaultTimeout    = "30s"
	DefaultRenderer   = "rod"
)

// Config holds everything needed to export one deck.
type Config struct {
	Document DocumentConfig `yaml:"document"`
	Output   OutputConfig   `yaml:"output"`
	Capture  CaptureConfig  `yaml:"capture"`
	Page     PageConfig     `yaml:"page"`
}

// DocumentConfig describes the HTML deck.
type DocumentConfig struct {
	Path       string `yaml:"path"`       // File path or http(s)/file URL
	Slides     int    `yaml:"slides"`     // Slide count, indices 0..slides-1
	SlideParam string `yaml:"slideParam"` // Query parameter selecting a slide
}

// OutputConfig defines where files are written.
type OutputConfig struct {
	Path    string `yaml:"path"`    // Deck file
	WorkDir string `yaml:"workDir"` // Temporary slide images (empty = current directory)
}

// CaptureConfig defines how slides are rendered.
type CaptureConfig struct {
	Width    int    `yaml:"width"`    // Viewport width in pixels
	Height   int    `yaml:"height"`   // Viewport height in pixels
	Timeout  string `yaml:"timeout"`  // Per-slide timeout, Go duration ("30s", "2m")
	Renderer string `yaml:"renderer"` // "rod" or "chrome"
	Browser  string `yaml:"browser"`  // Browser binary (empty = auto-detect)
}

// PageConfig defines the deck page size in EMU.
type PageConfig struct {
	Width  int64 `yaml:"width"`
	Height int64 `yaml:"height"`
}

// DefaultConfig returns the built-in configuration: a 12-slide 16:9 deck
// captured at 1920x1080.
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{
			Path:       DefaultDocument,
			Slides:     DefaultSlides,
			SlideParam: DefaultSlideParam,
		},
		Output: OutputConfig{Path: DefaultOutput},
		Capture: CaptureConfig{
			Width:    DefaultWidth,
			Height:   DefaultHeight,
			Timeout:  DefaultTimeout,
			Renderer: DefaultRenderer,
		},
		Page: PageConfig{Width: DefaultPageWidth, Height: DefaultPageHeight},
	}
}

// TimeoutDuration parses Capture.Timeout. Empty means zero (library default).
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Capture.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Capture.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: capture.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: capture.timeout: must be positive, got %s", ErrInvalidValue, c.Capture.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., after merging CLI flags).
func (c *Config) Validate() error {
	if err := validateFieldLength("document.path", c.Document.Path, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.slideParam", c.Document.SlideParam, MaxSlideParamLength); err != nil {
		return err
	}
	if c.Document.Slides < 0 || c.Document.Slides > MaxSlides {
		return fmt.Errorf("%w: document.slides: must be between 0 and %d, got %d", ErrInvalidValue, MaxSlides, c.Document.Slides)
	}

	if err := validateFieldLength("output.path", c.Output.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.workDir", c.Output.WorkDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateRange("capture.width", int64(c.Capture.Width), MaxViewportSide); err != nil {
		return err
	}
	if err := validateRange("capture.height", int64(c.Capture.Height), MaxViewportSide); err != nil {
		return err
	}
	if err := validateFieldLength("capture.timeout", c.Capture.Timeout, MaxDurationLength); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	switch strings.ToLower(c.Capture.Renderer) {
	case "", "rod", "chrome":
		// valid
	default:
		return fmt.Errorf("%w: capture.renderer: %q (must be rod or chrome)", ErrInvalidValue, c.Capture.Renderer)
	}
	if err := validateFieldLength("capture.browser", c.Capture.Browser, MaxPathLength); err != nil {
		return err
	}

	if err := validateRange("page.width", c.Page.Width, MaxPageSide); err != nil {
		return err
	}
	return validateRange("page.height", c.Page.Height, MaxPageSide)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateRange checks 0 <= v <= maxValue. Finer bounds are enforced at conversion time.
func validateRange(fieldName string, v, maxValue int64) error {
	if v < 0 || v > maxValue {
		return fmt.Errorf("%w: %s: must be between 0 and %d, got %d", ErrInvalidValue, fieldName, maxValue, v)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in SearchPaths order.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists, in lookup order, where a config called name may live:
// the current directory, then the user config directory (~/.config/html2pptx/
// on Linux), each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
