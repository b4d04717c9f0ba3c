package assets

import (
	"embed"
	"fmt"
)

//go:embed parts/*
var parts embed.FS

//go:embed templates/*
var templates embed.FS

// Loader provides package parts by logical name.
type Loader interface {
	LoadPart(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// EmbeddedLoader loads assets from the embedded filesystem.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadPart loads a static part by name. The name excludes the .xml extension.
func (e *EmbeddedLoader) LoadPart(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := parts.ReadFile("parts/" + name + ".xml")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrPartNotFound, name)
	}

	return string(content), nil
}

// LoadTemplate loads a part template by name. The name excludes the .xml extension.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := templates.ReadFile("templates/" + name + ".xml")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
