package md2epub

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		return "", "", fmt.Errorf("reading stderr: %w", err)
	}

	err = cmd.Wait()
	return stdout.String(), string(stderrContent), err
}

// coverFrontMatter is the temporary Markdown document prepended to the
// Pandoc inputs when the PDF includes a cover page.
const coverFrontMatter = `---
title: "%s"
author: "%s"
---

![Cover](%s)

{.cover}

\newpage

`

// ConvertPDF converts the discovered chapters to a single PDF by invoking
// Pandoc with the LuaLaTeX engine. Pandoc is probed first; a missing
// binary yields ErrPandocNotFound. A failing conversion yields
// ErrPandocFailed carrying Pandoc's captured stderr verbatim.
func (s *Service) ConvertPDF(ctx context.Context, in PDFInput) (*PDFResult, error) {
	book := in.Book.withDefaults()
	opts := in.Options
	if opts.PaperSize == "" {
		opts.PaperSize = "a4"
	}

	sources, err := DiscoverChapters(in.InputDir)
	if err != nil {
		return nil, err
	}
	s.logf("Converting %d chapters to PDF...", len(sources))

	if _, _, err := s.runner.Run("pandoc", "--version"); err != nil {
		return nil, fmt.Errorf("%w: install from https://pandoc.org/installing.html", ErrPandocNotFound)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inputs, cleanup, err := s.preparePandocInputs(book, sources, opts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := buildPandocArgs(book, inputs, in.Output, opts)
	_, stderr, err := s.runner.Run("pandoc", args...)
	if err != nil {
		if stderr != "" {
			return nil, fmt.Errorf("%w: %s", ErrPandocFailed, stderr)
		}
		return nil, fmt.Errorf("%w: %v", ErrPandocFailed, err)
	}

	var size int64
	if info, err := os.Stat(in.Output); err == nil {
		size = info.Size()
	}
	return &PDFResult{
		OutputPath: in.Output,
		Chapters:   len(sources),
		Size:       size,
	}, nil
}

// preparePandocInputs assembles the ordered list of Markdown files to feed
// Pandoc: an optional generated cover page first, then the chapters. With
// FixSpecialChars set, each chapter is rewritten to a temporary file with
// typographic punctuation normalized for LaTeX. The returned cleanup
// removes every temporary file and is safe to call unconditionally.
func (s *Service) preparePandocInputs(book Book, sources []SourceFile, opts PDFOptions) ([]string, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	var inputs []string
	if opts.IncludeCover && book.Cover != "" && fileutil.FileExists(book.Cover) {
		s.logf("  Adding cover: %s", book.Cover)
		content := fmt.Sprintf(coverFrontMatter, book.Title, book.Author, book.Cover)
		path, rm, err := fileutil.WriteTempFile(content, "md")
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, rm)
		inputs = append(inputs, path)
	}

	for _, src := range sources {
		s.logf("  Adding: %s", filepath.Base(src.Path))
		if !opts.FixSpecialChars {
			inputs = append(inputs, src.Path)
			continue
		}
		raw, err := os.ReadFile(src.Path)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("reading %s: %w", src.Path, err)
		}
		path, rm, err := fileutil.WriteTempFile(NormalizeSpecialChars(string(raw)), "md")
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, rm)
		inputs = append(inputs, path)
	}

	return inputs, cleanup, nil
}

// buildPandocArgs constructs the Pandoc argument list for a PDF run.
func buildPandocArgs(book Book, inputs []string, output string, opts PDFOptions) []string {
	args := append([]string{}, inputs...)
	args = append(args,
		"-o", output,
		"--pdf-engine=lualatex",
		"-V", "papersize="+opts.PaperSize,
	)
	if opts.TOC {
		args = append(args, "--toc", "--toc-depth=2")
	}
	args = append(args,
		"-V", "title="+book.Title,
		"-V", "author="+book.Author,
		"-V", "geometry:margin=1in",
		"-V", "fontsize=12pt",
		"-V", "linestretch=1.5",
		"--pdf-engine-opt=-shell-escape",
	)
	return args
}
