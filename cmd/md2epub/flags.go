package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// appFlags holds every recognized flag. String flags default to "" so an
// unset flag can be told apart from a config-file value; boolean PDF-TOC
// handling uses FlagSet.Changed instead (true is the default).
type appFlags struct {
	config     string
	title      string
	author     string
	language   string
	inputDir   string
	output     string
	cover      string
	publisher  string
	stagingDir string

	consolidate bool
	noPackage   bool

	pdf             bool
	pdfCover        bool
	pdfTOC          bool
	noPDFTOC        bool
	pdfPaperSize    string
	fixSpecialChars bool

	quiet   bool
	version bool
}

// parseFlags parses the command line and returns the flags plus the
// FlagSet (needed for Changed lookups during config merging).
func parseFlags(args []string) (*appFlags, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("md2epub", flag.ContinueOnError)
	f := &appFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "YAML configuration file name or path")
	fs.StringVar(&f.title, "title", "", "book title")
	fs.StringVar(&f.author, "author", "", "author name")
	fs.StringVar(&f.language, "language", "", "language code (default: en)")
	fs.StringVar(&f.inputDir, "input-dir", "", "input directory containing chapter-*.md files (default: manuscript)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (.epub, .md for consolidate mode, .pdf for PDF mode)")
	fs.StringVar(&f.cover, "cover", "", "cover image (PNG/JPG)")
	fs.StringVar(&f.publisher, "publisher", "", "publisher name (default: author)")
	fs.StringVar(&f.stagingDir, "staging-dir", "", "directory for the unpacked EPUB tree (default: _epub_temp)")

	fs.BoolVar(&f.consolidate, "consolidate", false, "merge chapters into a single Markdown file (for editing)")
	fs.BoolVar(&f.noPackage, "no-package", false, "output the EPUB folder structure without zipping (for manual editing)")

	fs.BoolVar(&f.pdf, "pdf", false, "convert to PDF using Pandoc (requires Pandoc and LaTeX)")
	fs.BoolVar(&f.pdfCover, "pdf-cover", false, "include cover image in PDF")
	fs.BoolVar(&f.pdfTOC, "pdf-toc", true, "include table of contents in PDF")
	fs.BoolVar(&f.noPDFTOC, "no-pdf-toc", false, "disable table of contents in PDF")
	fs.StringVar(&f.pdfPaperSize, "pdf-paper-size", "", "paper size for PDF: a4, letter, a5, ... (default: a4)")
	fs.BoolVar(&f.fixSpecialChars, "fix-special-chars", false, "normalize typographic punctuation before PDF conversion")

	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs, nil
}
