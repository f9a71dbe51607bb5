package md2epub

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/alnah/go-md2epub/internal/assets"
)

// Service orchestrates the manuscript conversion pipeline. All modes are
// synchronous: every stage runs to completion before the next begins.
type Service struct {
	markdown goldmark.Markdown
	runner   CommandRunner
	progress io.Writer

	// Injection points for tests.
	clock func() time.Time
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithProgressWriter directs per-stage progress lines (chapter names,
// cover handling) to w. The default discards them.
func WithProgressWriter(w io.Writer) Option {
	return func(s *Service) {
		s.progress = w
	}
}

// WithCommandRunner replaces the command runner used to invoke Pandoc in
// PDF mode. Intended for tests.
func WithCommandRunner(r CommandRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		markdown: newMarkdownRenderer(),
		runner:   &ExecRunner{},
		progress: io.Discard,
		clock:    time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) logf(format string, args ...any) {
	fmt.Fprintf(s.progress, format+"\n", args...)
}

// Build runs the full EPUB pipeline: discovery, transformation, container
// assembly, packaging. The staging tree is created fresh, owned by this
// run, and removed after successful packaging unless in.KeepStaging is
// set. On failure only the discardable staging tree may remain; no partial
// archive is ever left at the output path.
func (s *Service) Build(ctx context.Context, in BuildInput) (*BuildResult, error) {
	book := in.Book.withDefaults()

	sources, err := DiscoverChapters(in.InputDir)
	if err != nil {
		return nil, err
	}
	s.logf("Found %d chapters", len(sources))

	stagingDir := in.StagingDir
	if stagingDir == "" {
		stagingDir = DefaultStagingDir
	}
	tree, err := NewStagingTree(stagingDir)
	if err != nil {
		return nil, err
	}

	chapters := make([]Chapter, 0, len(sources))
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logf("  Converting: %s", filepath.Base(src.Path))
		ch, err := s.transformChapter(src, i+1, book, tree)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}

	cover, err := s.stageCover(book, tree)
	if err != nil {
		return nil, err
	}

	if err := s.assembleContainer(book, chapters, cover, tree); err != nil {
		return nil, err
	}

	if in.KeepStaging {
		return &BuildResult{
			StagingDir: tree.Root(),
			Chapters:   len(chapters),
		}, nil
	}

	s.logf("Packaging EPUB...")
	size, err := writeArchive(tree, in.Output)
	if err != nil {
		return nil, err
	}
	if err := tree.Remove(); err != nil {
		return nil, err
	}

	return &BuildResult{
		OutputPath: in.Output,
		Chapters:   len(chapters),
		Size:       size,
	}, nil
}

// assembleContainer generates the fixed set of EPUB support files into the
// staging tree. Each generator is a pure function of the book metadata,
// the ordered chapter list, and the optional cover.
func (s *Service) assembleContainer(book Book, chapters []Chapter, cover *CoverAsset, tree *StagingTree) error {
	if err := writeContainerFiles(tree); err != nil {
		return err
	}

	// A fresh identifier per run: rebuilding the same manuscript yields a
	// new book identity.
	bookID := "urn:uuid:" + s.newID()

	opf, err := buildPackageDoc(book, bookID, chapters, cover, s.clock())
	if err != nil {
		return err
	}
	if err := tree.WriteFile("OEBPS/content.opf", opf); err != nil {
		return err
	}

	nav, err := renderNavDoc(book, chapters, cover)
	if err != nil {
		return err
	}
	if err := tree.WriteFile("OEBPS/nav.xhtml", nav); err != nil {
		return err
	}

	return tree.WriteFile("OEBPS/Styles/stylesheet.css", assets.Stylesheet)
}
