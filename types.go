package md2epub

import "fmt"

// Defaults applied by Book.withDefaults.
const (
	DefaultTitle    = "Untitled"
	DefaultAuthor   = "Unknown Author"
	DefaultLanguage = "en"
)

// DefaultStagingDir is where the unpacked EPUB tree is assembled when no
// explicit staging directory is given.
const DefaultStagingDir = "_epub_temp"

// Book holds the metadata embedded in every generated artifact.
type Book struct {
	Title     string
	Author    string
	Language  string // BCP 47 language code
	Publisher string // empty = use Author
	Cover     string // path to a cover image (PNG/JPG), empty = no cover
}

// withDefaults fills empty metadata fields with neutral defaults.
func (b Book) withDefaults() Book {
	if b.Title == "" {
		b.Title = DefaultTitle
	}
	if b.Author == "" {
		b.Author = DefaultAuthor
	}
	if b.Language == "" {
		b.Language = DefaultLanguage
	}
	return b
}

// Chapter is one transformed manuscript chapter. Chapters are created in
// reading order during transformation and never mutated afterwards; the
// package document, spine and navigation document all consume the same
// ordered slice.
type Chapter struct {
	Ordinal int    // 1-based position in reading order
	ID      string // manifest/spine identifier, e.g. "chap01"
	Href    string // path relative to the OEBPS root, e.g. "Text/chapter-01.xhtml"
	Title   string // first level-1 heading, or "Chapter N"
	Body    string // rendered XHTML fragment
}

// newChapter derives the identifier and href for a chapter at the given
// 1-based position. The position is assigned contiguously after sorting;
// the number embedded in the source filename is only a sort key.
func newChapter(ordinal int, title, body string) Chapter {
	return Chapter{
		Ordinal: ordinal,
		ID:      fmt.Sprintf("chap%02d", ordinal),
		Href:    fmt.Sprintf("Text/chapter-%02d.xhtml", ordinal),
		Title:   title,
		Body:    body,
	}
}

// BuildInput contains parameters for an EPUB build.
type BuildInput struct {
	Book        Book
	InputDir    string // directory with chapter-*.md files
	Output      string // .epub output path
	StagingDir  string // empty = DefaultStagingDir
	KeepStaging bool   // leave the unpacked tree in place, skip zipping
}

// BuildResult reports the outcome of an EPUB build.
type BuildResult struct {
	OutputPath string // empty when KeepStaging is set
	StagingDir string // retained tree when KeepStaging is set
	Chapters   int
	Size       int64 // archive size in bytes, 0 when KeepStaging is set
}

// ConsolidateInput contains parameters for consolidate mode.
type ConsolidateInput struct {
	InputDir string
	Output   string // .md output path
}

// ConsolidateResult reports the outcome of a consolidation.
type ConsolidateResult struct {
	OutputPath string
	Chapters   int
	Size       int64
}

// PDFOptions control the Pandoc invocation in PDF mode.
type PDFOptions struct {
	PaperSize       string // "a4", "letter", "a5", ... (default "a4")
	TOC             bool   // include a table of contents
	IncludeCover    bool   // prepend the cover image as a title page
	FixSpecialChars bool   // normalize typographic punctuation before Pandoc
}

// PDFInput contains parameters for PDF mode.
type PDFInput struct {
	Book     Book
	InputDir string
	Output   string // .pdf output path
	Options  PDFOptions
}

// PDFResult reports the outcome of a PDF conversion.
type PDFResult struct {
	OutputPath string
	Chapters   int
	Size       int64
}
