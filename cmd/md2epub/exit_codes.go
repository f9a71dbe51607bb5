package main

import (
	"errors"
	"os"

	md2epub "github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/config"
)

// Exit codes for the md2epub CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or manuscript layout
	ExitIO      = 3 // File not found, permission denied
	ExitTool    = 4 // External tool (Pandoc) missing or failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External tool errors (exit 4)
	if errors.Is(err, md2epub.ErrPandocNotFound) ||
		errors.Is(err, md2epub.ErrPandocFailed) {
		return ExitTool
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2epub.ErrInputDirNotFound) {
		return ExitIO
	}

	// Usage/config/manuscript errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, md2epub.ErrNoChapters) ||
		errors.Is(err, md2epub.ErrChapterNumber) ||
		errors.Is(err, md2epub.ErrEmptyStagingPath) {
		return ExitUsage
	}

	return ExitGeneral
}
