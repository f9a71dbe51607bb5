package assets_test

import (
	"strings"
	"testing"

	"github.com/alnah/go-md2epub/internal/assets"
)

func TestStylesheetEmbedded(t *testing.T) {
	t.Parallel()

	css := string(assets.Stylesheet)
	if len(css) == 0 {
		t.Fatal("embedded stylesheet is empty")
	}

	// Selectors the generated documents rely on.
	for _, selector := range []string{
		"body",
		"blockquote.epigraph",
		"hr.scene-break",
		".cover-image",
		"nav#toc",
	} {
		if !strings.Contains(css, selector) {
			t.Errorf("stylesheet missing selector %q", selector)
		}
	}
}
