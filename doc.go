// Package md2epub converts a directory of Markdown chapter files into a
// packaged EPUB 3 ebook.
//
// # Quick Start
//
// Create a service and build a book:
//
//	svc := md2epub.New()
//	result, err := svc.Build(ctx, md2epub.BuildInput{
//	    Book: md2epub.Book{
//	        Title:  "My Novel",
//	        Author: "Your Name",
//	    },
//	    InputDir: "manuscript",
//	    Output:   "book.epub",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %s (%d chapters)\n", result.OutputPath, result.Chapters)
//
// # Build Pipeline
//
// The build runs four sequential stages:
//
//  1. Chapter discovery: scan the input directory for chapter-N.md files
//     (fallback: chap-N.md), sorted by the number embedded in the filename.
//  2. Chapter transformation: convert each chapter to XHTML via Goldmark
//     (GFM, typographic quotes, syntax highlighting) and extract its title
//     from the first level-1 heading.
//  3. Container assembly: generate the mimetype marker, container
//     descriptor, package document, navigation document, stylesheet, and
//     optional cover page into a staging tree.
//  4. Packaging: zip the staging tree into the .epub, with the mimetype as
//     the first entry, stored uncompressed.
//
// # Other Modes
//
// Consolidate merges all chapters into a single Markdown file for editing:
//
//	result, err := svc.Consolidate(ctx, md2epub.ConsolidateInput{
//	    InputDir: "manuscript",
//	    Output:   "full-draft.md",
//	})
//
// ConvertPDF delegates to the Pandoc CLI (requires Pandoc and LuaLaTeX):
//
//	result, err := svc.ConvertPDF(ctx, md2epub.PDFInput{
//	    Book:     book,
//	    InputDir: "manuscript",
//	    Output:   "book.pdf",
//	    Options:  md2epub.PDFOptions{PaperSize: "a4", TOC: true},
//	})
//
// # Input Layout
//
// The input directory holds one UTF-8 Markdown file per chapter, named
// chapter-1.md, chapter-2.md, ... (or chap-1.md, ...). Each file may begin
// with a level-1 heading which becomes the chapter title; otherwise the
// title is synthesized as "Chapter N". Reading order follows the number in
// the filename, not the filesystem listing order.
package md2epub
