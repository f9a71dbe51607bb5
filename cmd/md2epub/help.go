package main

import (
	"fmt"
	"io"
)

// usageText is the full help output. Flag descriptions live in flags.go;
// this covers invocation shapes and examples.
const usageText = `md2epub - convert Markdown manuscripts to EPUB 3

Usage:
  md2epub [flags]

The input directory holds one file per chapter, named chapter-1.md,
chapter-2.md, ... (or chap-1.md, ...). Reading order follows the number
in the filename.

Modes:
  (default)       build a packaged .epub
  --consolidate   merge chapters into a single Markdown file for editing
  --pdf           convert chapters to PDF via Pandoc (requires LaTeX)
  --no-package    build the EPUB folder structure without zipping

Examples:
  # Generate EPUB
  md2epub --title "My Novel" --author "Your Name"
  md2epub --config book
  md2epub --input-dir chapters/ --output my-book.epub --cover cover.png

  # Generate PDF for printing
  md2epub --pdf --title "My Novel" --author "Your Name" --output novel.pdf
  md2epub --pdf --pdf-cover --pdf-paper-size letter --title "My Novel"

  # Consolidate for editing
  md2epub --consolidate --input-dir chapters/ --output full-draft.md

Run "md2epub --help" for the full flag list.
`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
