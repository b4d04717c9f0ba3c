package html2pptx

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestInput_Validate - Required fields and bounds
// ---------------------------------------------------------------------------

func TestInput_Validate(t *testing.T) {
	t.Parallel()

	valid := Input{Document: "deck.html", Slides: 12, Output: "deck.pptx"}

	tests := []struct {
		name    string
		mutate  func(in *Input)
		wantErr error
	}{
		{"defaults filled", func(in *Input) {}, nil},
		{"zero slides", func(in *Input) { in.Slides = 0 }, nil},
		{"max slides", func(in *Input) { in.Slides = MaxSlides }, nil},
		{"empty document", func(in *Input) { in.Document = "" }, ErrEmptyDocument},
		{"empty output", func(in *Input) { in.Output = "" }, ErrEmptyOutput},
		{"negative slides", func(in *Input) { in.Slides = -1 }, ErrInvalidSlideCount},
		{"too many slides", func(in *Input) { in.Slides = MaxSlides + 1 }, ErrInvalidSlideCount},
		{"zero width viewport", func(in *Input) { in.Viewport = Viewport{Width: 0, Height: 1080} }, ErrInvalidViewport},
		{"huge viewport", func(in *Input) { in.Viewport = Viewport{Width: 1920, Height: MaxViewportSide + 1} }, ErrInvalidViewport},
		{"4:3 page", func(in *Input) { in.Page = PageSize{Width: 9144000, Height: 6858000} }, nil},
		{"page too small", func(in *Input) { in.Page = PageSize{Width: 100, Height: 6858000} }, ErrInvalidPageSize},
		{"page too large", func(in *Input) { in.Page = PageSize{Width: MaxPageSide + 1, Height: 6858000} }, ErrInvalidPageSize},
		{"custom param", func(in *Input) { in.SlideParam = "page" }, nil},
		{"param with space", func(in *Input) { in.SlideParam = "my slide" }, ErrInvalidSlideParam},
		{"param with ampersand", func(in *Input) { in.SlideParam = "a&b" }, ErrInvalidSlideParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInput_WithDefaults(t *testing.T) {
	t.Parallel()

	got := Input{}.withDefaults()
	if got.Viewport != (Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}) {
		t.Errorf("Viewport = %+v, want 1920x1080", got.Viewport)
	}
	if got.Page != (PageSize{Width: DefaultPageWidth, Height: DefaultPageHeight}) {
		t.Errorf("Page = %+v, want 12192000x6858000", got.Page)
	}
	if got.SlideParam != DefaultSlideParam {
		t.Errorf("SlideParam = %q, want %q", got.SlideParam, DefaultSlideParam)
	}

	custom := Input{Viewport: Viewport{Width: 800, Height: 600}, SlideParam: "p"}.withDefaults()
	if custom.Viewport.Width != 800 || custom.SlideParam != "p" {
		t.Errorf("withDefaults() overwrote explicit values: %+v", custom)
	}
}

func TestPageSize_Inches(t *testing.T) {
	t.Parallel()

	w, h := PageSize{Width: DefaultPageWidth, Height: DefaultPageHeight}.Inches()
	if math.Abs(w-13.333) > 0.001 || h != 7.5 {
		t.Errorf("Inches() = %.3f x %.3f, want 13.333 x 7.5", w, h)
	}
}

// ---------------------------------------------------------------------------
// TestSlideURL - Query parameter handling
// ---------------------------------------------------------------------------

func TestSlideURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		base  string
		param string
		index int
		want  string
	}{
		{"file URL", "file:///tmp/pitchdeck.html", "slide", 0, "file:///tmp/pitchdeck.html?slide=0"},
		{"higher index", "file:///tmp/pitchdeck.html", "slide", 11, "file:///tmp/pitchdeck.html?slide=11"},
		{"custom param", "http://localhost:8080/deck", "page", 2, "http://localhost:8080/deck?page=2"},
		{"keeps query and fragment", "https://example.com/deck?lang=en#top", "slide", 3, "https://example.com/deck?lang=en&slide=3#top"},
		{"replaces existing slide", "https://example.com/deck?slide=9", "slide", 1, "https://example.com/deck?slide=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SlideURL(tt.base, tt.param, tt.index)
			if err != nil {
				t.Fatalf("SlideURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SlideURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlideURL_InvalidBase(t *testing.T) {
	t.Parallel()

	if _, err := SlideURL("http://[::1", "slide", 0); err == nil {
		t.Error("expected error for malformed URL")
	}
}

// ---------------------------------------------------------------------------
// TestDocumentURL - Local paths and URLs
// ---------------------------------------------------------------------------

func TestDocumentURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "pitchdeck.html")
	if err := os.WriteFile(doc, []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("local file", func(t *testing.T) {
		t.Parallel()
		got, err := DocumentURL(doc)
		if err != nil {
			t.Fatalf("DocumentURL() error = %v", err)
		}
		if !strings.HasPrefix(got, "file:///") || !strings.HasSuffix(got, "/pitchdeck.html") {
			t.Errorf("DocumentURL() = %q, want file:///.../pitchdeck.html", got)
		}
	})

	t.Run("URLs pass through", func(t *testing.T) {
		t.Parallel()
		for _, u := range []string{"http://localhost:3000/", "https://example.com/deck.html", "file:///srv/deck.html"} {
			got, err := DocumentURL(u)
			if err != nil {
				t.Fatalf("DocumentURL(%q) error = %v", u, err)
			}
			if got != u {
				t.Errorf("DocumentURL(%q) = %q, want unchanged", u, got)
			}
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := DocumentURL(filepath.Join(dir, "missing.html"))
		if !errors.Is(err, ErrDocumentNotFound) || !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want ErrDocumentNotFound wrapping os.ErrNotExist", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		if _, err := DocumentURL(""); !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("error = %v, want ErrEmptyDocument", err)
		}
	})
}
