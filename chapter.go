package md2epub

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// chapterTitlePattern matches a level-1 ATX heading at the start of any
// line, not just the first line of the document.
var chapterTitlePattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// typographicSubstitutions replaces Goldmark's default HTML entities
// (&ldquo; etc.) with raw UTF-8 characters. XHTML only predefines the five
// XML entities, so named entities would break strict EPUB readers.
var typographicSubstitutions = extension.TypographicSubstitutions{
	extension.LeftSingleQuote:  []byte("‘"),
	extension.RightSingleQuote: []byte("’"),
	extension.LeftDoubleQuote:  []byte("“"),
	extension.RightDoubleQuote: []byte("”"),
	extension.EnDash:           []byte("–"),
	extension.EmDash:           []byte("—"),
	extension.Ellipsis:         []byte("…"),
	extension.Apostrophe:       []byte("’"),
}

// newMarkdownRenderer creates a Goldmark instance with GFM extensions,
// typographic punctuation, and syntax-highlighted code blocks. Goldmark
// keeps no per-document state, so a single instance converts every chapter
// without formatting state leaking across chapter boundaries.
func newMarkdownRenderer() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			extension.NewTypographer(
				extension.WithTypographicSubstitutions(typographicSubstitutions),
			),
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // style via the stylesheet, not inline attributes
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // self-closing tags for XHTML serialization
		),
	)
}

// extractTitle returns the text of the first level-1 heading in content,
// or "Chapter <ordinal>" when no such heading exists.
func extractTitle(content string, ordinal int) string {
	if m := chapterTitlePattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return fmt.Sprintf("Chapter %d", ordinal)
}

// transformChapter reads one source file, converts it to XHTML, writes the
// wrapped chapter document into the staging tree, and returns the Chapter
// record consumed by the package and navigation generators.
func (s *Service) transformChapter(src SourceFile, ordinal int, book Book, tree *StagingTree) (Chapter, error) {
	raw, err := os.ReadFile(src.Path)
	if err != nil {
		return Chapter{}, fmt.Errorf("reading %s: %w", src.Path, err)
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert(raw, &buf); err != nil {
		return Chapter{}, fmt.Errorf("%w: %s: %v", ErrHTMLConversion, filepath.Base(src.Path), err)
	}

	ch := newChapter(ordinal, extractTitle(string(raw), ordinal), buf.String())

	doc, err := renderChapterDoc(book.Language, ch.Title, ch.Body)
	if err != nil {
		return Chapter{}, err
	}
	if err := tree.WriteFile("OEBPS/"+ch.Href, doc); err != nil {
		return Chapter{}, err
	}

	return ch, nil
}
