package md2epub

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// chapterSeparator joins chapters in consolidate mode: a Markdown
// horizontal rule with a blank line on each side.
const chapterSeparator = "\n\n---\n\n"

// Consolidate merges all discovered chapters, in discovery order, into a
// single Markdown file with horizontal-rule separators between chapters.
// Discovery failures are the same as in Build: zero matches abort the run
// before anything is written.
func (s *Service) Consolidate(ctx context.Context, in ConsolidateInput) (*ConsolidateResult, error) {
	sources, err := DiscoverChapters(in.InputDir)
	if err != nil {
		return nil, err
	}
	s.logf("Consolidating %d chapters into single file...", len(sources))

	parts := make([]string, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logf("  Adding: %s", filepath.Base(src.Path))
		raw, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", src.Path, err)
		}
		parts = append(parts, strings.TrimSpace(string(raw)))
	}

	if dir := filepath.Dir(in.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	content := strings.Join(parts, chapterSeparator)
	if err := os.WriteFile(in.Output, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", in.Output, err)
	}

	return &ConsolidateResult{
		OutputPath: in.Output,
		Chapters:   len(sources),
		Size:       int64(len(content)),
	}, nil
}
