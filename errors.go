package md2epub

import "errors"

// Sentinel errors for library operations.
var (
	ErrInputDirNotFound = errors.New("input directory not found")
	ErrNoChapters       = errors.New("no chapter files found")
	ErrChapterNumber    = errors.New("cannot parse chapter number")
	ErrHTMLConversion   = errors.New("HTML conversion failed")

	// Staging tree errors.
	ErrEmptyStagingPath = errors.New("staging path cannot be empty")

	// PDF mode errors.
	ErrPandocNotFound = errors.New("pandoc is not installed")
	ErrPandocFailed   = errors.New("PDF conversion failed")
)
