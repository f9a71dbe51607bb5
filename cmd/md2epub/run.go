package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	md2epub "github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/config"
)

// buildMode identifies which pipeline a run executes.
type buildMode int

const (
	modeEPUB buildMode = iota
	modeConsolidate
	modePDF
)

// runConfig is the fully resolved configuration for one run: config-file
// values overridden by flag values, with defaults applied last.
type runConfig struct {
	book        md2epub.Book
	inputDir    string
	output      string
	stagingDir  string
	mode        buildMode
	keepStaging bool
	pdfOpts     md2epub.PDFOptions
}

// run parses arguments, resolves configuration, and dispatches to the
// selected pipeline mode.
func run(args []string, stdout io.Writer) error {
	flags, fs, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.version {
		fmt.Fprintf(stdout, "md2epub %s\n", Version)
		return nil
	}

	fileCfg := &config.Config{}
	if flags.config != "" {
		fileCfg, err = config.Load(flags.config)
		if err != nil {
			return err
		}
	}

	rc := resolveRunConfig(flags, fs, fileCfg)

	// Validate the input directory up front so every mode aborts before
	// writing anything.
	if info, err := os.Stat(rc.inputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", md2epub.ErrInputDirNotFound, rc.inputDir)
	}

	progress := stdout
	if flags.quiet {
		progress = io.Discard
	}
	svc := md2epub.New(md2epub.WithProgressWriter(progress))
	ctx := context.Background()

	switch rc.mode {
	case modeConsolidate:
		return runConsolidate(ctx, svc, rc, progress)
	case modePDF:
		return runPDF(ctx, svc, rc, progress)
	default:
		return runEPUB(ctx, svc, rc, progress)
	}
}

func runEPUB(ctx context.Context, svc *md2epub.Service, rc *runConfig, out io.Writer) error {
	fmt.Fprintf(out, "Building EPUB: %s\n", rc.book.Title)
	fmt.Fprintf(out, "Author: %s\n\n", rc.book.Author)

	result, err := svc.Build(ctx, md2epub.BuildInput{
		Book:        rc.book,
		InputDir:    rc.inputDir,
		Output:      rc.output,
		StagingDir:  rc.stagingDir,
		KeepStaging: rc.keepStaging,
	})
	if err != nil {
		return err
	}

	if rc.keepStaging {
		fmt.Fprintf(out, "\nSUCCESS: EPUB folder created at %s\n", result.StagingDir)
		fmt.Fprintf(out, "  Chapters: %d\n", result.Chapters)
		fmt.Fprintf(out, "  Ready for manual editing\n")
		return nil
	}

	fmt.Fprintf(out, "\nSUCCESS: %s\n", result.OutputPath)
	fmt.Fprintf(out, "  Chapters: %d\n", result.Chapters)
	fmt.Fprintf(out, "  Size: %.1f KB\n", float64(result.Size)/1024)
	return nil
}

func runConsolidate(ctx context.Context, svc *md2epub.Service, rc *runConfig, out io.Writer) error {
	result, err := svc.Consolidate(ctx, md2epub.ConsolidateInput{
		InputDir: rc.inputDir,
		Output:   rc.output,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSUCCESS: %s\n", result.OutputPath)
	fmt.Fprintf(out, "  Chapters: %d\n", result.Chapters)
	fmt.Fprintf(out, "  Size: %.1f KB\n", float64(result.Size)/1024)
	return nil
}

func runPDF(ctx context.Context, svc *md2epub.Service, rc *runConfig, out io.Writer) error {
	result, err := svc.ConvertPDF(ctx, md2epub.PDFInput{
		Book:     rc.book,
		InputDir: rc.inputDir,
		Output:   rc.output,
		Options:  rc.pdfOpts,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSUCCESS: %s\n", result.OutputPath)
	fmt.Fprintf(out, "  Chapters: %d\n", result.Chapters)
	fmt.Fprintf(out, "  Size: %.1f KB\n", float64(result.Size)/1024)
	return nil
}

// resolveRunConfig merges flag values over config-file values, then fills
// remaining gaps with defaults. Mode switches are additive: either source
// can turn a mode on.
func resolveRunConfig(flags *appFlags, fs *flag.FlagSet, fileCfg *config.Config) *runConfig {
	rc := &runConfig{
		book: md2epub.Book{
			Title:     firstNonEmpty(flags.title, fileCfg.Title),
			Author:    firstNonEmpty(flags.author, fileCfg.Author),
			Language:  firstNonEmpty(flags.language, fileCfg.Language),
			Publisher: firstNonEmpty(flags.publisher, fileCfg.Publisher),
			Cover:     firstNonEmpty(flags.cover, fileCfg.Cover),
		},
		inputDir:    firstNonEmpty(flags.inputDir, fileCfg.InputDir, "manuscript"),
		stagingDir:  flags.stagingDir,
		keepStaging: flags.noPackage || fileCfg.NoPackage,
	}

	switch {
	case flags.consolidate || fileCfg.Consolidate:
		rc.mode = modeConsolidate
	case flags.pdf || fileCfg.PDF:
		rc.mode = modePDF
	}

	defaultOutput := "book.epub"
	switch rc.mode {
	case modeConsolidate:
		defaultOutput = "consolidated-manuscript.md"
	case modePDF:
		defaultOutput = "book.pdf"
	}
	rc.output = firstNonEmpty(flags.output, fileCfg.Output, defaultOutput)

	rc.pdfOpts = md2epub.PDFOptions{
		PaperSize:       firstNonEmpty(flags.pdfPaperSize, fileCfg.PDFPaperSize, "a4"),
		TOC:             resolvePDFTOC(flags, fs, fileCfg),
		IncludeCover:    flags.pdfCover || fileCfg.PDFCover,
		FixSpecialChars: flags.fixSpecialChars,
	}

	return rc
}

// resolvePDFTOC applies precedence for the TOC switch: explicit flags win,
// then the config file, then the default (enabled).
func resolvePDFTOC(flags *appFlags, fs *flag.FlagSet, fileCfg *config.Config) bool {
	if flags.noPDFTOC {
		return false
	}
	if fs.Changed("pdf-toc") {
		return flags.pdfTOC
	}
	if fileCfg.PDFTOC != nil {
		return *fileCfg.PDFTOC
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
