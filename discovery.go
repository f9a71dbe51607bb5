package md2epub

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Chapter filename patterns. The primary pattern is tried first; the
// fallback is only consulted when the primary yields no matches at all.
var (
	chapterFilePattern  = regexp.MustCompile(`^chapter-(\d+)\.md$`)
	fallbackFilePattern = regexp.MustCompile(`^chap-(\d+)\.md$`)
)

// SourceFile describes a discovered chapter source file.
type SourceFile struct {
	Path   string
	Number int // number embedded in the filename; sort key only
}

// DiscoverChapters scans inputDir for chapter source files and returns them
// sorted by the number embedded in the filename, ascending. Files matching
// chapter-N.md win over chap-N.md; the fallback pattern is used only when
// the primary matches nothing. The sort is stable, so files with equal
// numbers keep their directory-listing order.
//
// Returns ErrInputDirNotFound if inputDir does not exist and ErrNoChapters
// if neither pattern matches any file.
func DiscoverChapters(inputDir string) ([]SourceFile, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputDirNotFound, inputDir)
		}
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	files, err := matchSourceFiles(inputDir, entries, chapterFilePattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		files, err = matchSourceFiles(inputDir, entries, fallbackFilePattern)
		if err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoChapters, inputDir)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Number < files[j].Number
	})

	return files, nil
}

// matchSourceFiles collects regular files whose names match pattern,
// parsing the captured digits into a typed number. A filename that matches
// but whose number cannot be parsed (e.g. overflows int) is a discovery
// error, not a silent skip.
func matchSourceFiles(inputDir string, entries []os.DirEntry, pattern *regexp.Regexp) ([]SourceFile, error) {
	var files []SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrChapterNumber, entry.Name(), err)
		}
		files = append(files, SourceFile{
			Path:   filepath.Join(inputDir, entry.Name()),
			Number: n,
		})
	}
	return files, nil
}
