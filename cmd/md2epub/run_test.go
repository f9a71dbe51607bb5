package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	md2epub "github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/config"
)

func writeManuscript(t *testing.T, chapters map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range chapters {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func boolPtr(b bool) *bool { return &b }

// ---------------------------------------------------------------------------
// resolveRunConfig - Flag/config/default precedence
// ---------------------------------------------------------------------------

func TestResolveRunConfigPrecedence(t *testing.T) {
	t.Parallel()

	flags, fs, err := parseFlags([]string{"--title", "Flag Title", "--author", "Flag Author"})
	if err != nil {
		t.Fatal(err)
	}
	fileCfg := &config.Config{
		Title:    "File Title",
		Author:   "File Author",
		Language: "de",
		InputDir: "file-manuscript",
		Output:   "file.epub",
	}

	rc := resolveRunConfig(flags, fs, fileCfg)

	if rc.book.Title != "Flag Title" {
		t.Errorf("Title = %q, want flag value", rc.book.Title)
	}
	if rc.book.Author != "Flag Author" {
		t.Errorf("Author = %q, want flag value", rc.book.Author)
	}
	if rc.book.Language != "de" {
		t.Errorf("Language = %q, want file value", rc.book.Language)
	}
	if rc.inputDir != "file-manuscript" {
		t.Errorf("inputDir = %q, want file value", rc.inputDir)
	}
	if rc.output != "file.epub" {
		t.Errorf("output = %q, want file value", rc.output)
	}
}

func TestResolveRunConfigDefaults(t *testing.T) {
	t.Parallel()

	flags, fs, err := parseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}

	rc := resolveRunConfig(flags, fs, &config.Config{})

	if rc.inputDir != "manuscript" {
		t.Errorf("inputDir = %q, want manuscript", rc.inputDir)
	}
	if rc.output != "book.epub" {
		t.Errorf("output = %q, want book.epub", rc.output)
	}
	if rc.mode != modeEPUB {
		t.Errorf("mode = %v, want EPUB", rc.mode)
	}
	if rc.pdfOpts.PaperSize != "a4" {
		t.Errorf("PaperSize = %q, want a4", rc.pdfOpts.PaperSize)
	}
	if !rc.pdfOpts.TOC {
		t.Error("TOC = false, want default true")
	}
}

func TestResolveRunConfigModeOutputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		fileCfg    *config.Config
		wantMode   buildMode
		wantOutput string
	}{
		{
			name:       "consolidate flag",
			args:       []string{"--consolidate"},
			fileCfg:    &config.Config{},
			wantMode:   modeConsolidate,
			wantOutput: "consolidated-manuscript.md",
		},
		{
			name:       "pdf flag",
			args:       []string{"--pdf"},
			fileCfg:    &config.Config{},
			wantMode:   modePDF,
			wantOutput: "book.pdf",
		},
		{
			name:       "consolidate wins over pdf",
			args:       []string{"--consolidate", "--pdf"},
			fileCfg:    &config.Config{},
			wantMode:   modeConsolidate,
			wantOutput: "consolidated-manuscript.md",
		},
		{
			name:       "pdf from config file",
			args:       nil,
			fileCfg:    &config.Config{PDF: true},
			wantMode:   modePDF,
			wantOutput: "book.pdf",
		},
		{
			name:       "explicit output overrides mode default",
			args:       []string{"--pdf", "-o", "custom.pdf"},
			fileCfg:    &config.Config{},
			wantMode:   modePDF,
			wantOutput: "custom.pdf",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags, fs, err := parseFlags(tt.args)
			if err != nil {
				t.Fatal(err)
			}
			rc := resolveRunConfig(flags, fs, tt.fileCfg)
			if rc.mode != tt.wantMode {
				t.Errorf("mode = %v, want %v", rc.mode, tt.wantMode)
			}
			if rc.output != tt.wantOutput {
				t.Errorf("output = %q, want %q", rc.output, tt.wantOutput)
			}
		})
	}
}

func TestResolvePDFTOC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		fileCfg *config.Config
		want    bool
	}{
		{
			name:    "default enabled",
			args:    nil,
			fileCfg: &config.Config{},
			want:    true,
		},
		{
			name:    "no-pdf-toc disables",
			args:    []string{"--no-pdf-toc"},
			fileCfg: &config.Config{},
			want:    false,
		},
		{
			name:    "explicit pdf-toc false",
			args:    []string{"--pdf-toc=false"},
			fileCfg: &config.Config{},
			want:    false,
		},
		{
			name:    "config file disables",
			args:    nil,
			fileCfg: &config.Config{PDFTOC: boolPtr(false)},
			want:    false,
		},
		{
			name:    "explicit flag overrides config file",
			args:    []string{"--pdf-toc=true"},
			fileCfg: &config.Config{PDFTOC: boolPtr(false)},
			want:    true,
		},
		{
			name:    "no-pdf-toc overrides everything",
			args:    []string{"--no-pdf-toc", "--pdf-toc=true"},
			fileCfg: &config.Config{PDFTOC: boolPtr(true)},
			want:    false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags, fs, err := parseFlags(tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if got := resolvePDFTOC(flags, fs, tt.fileCfg); got != tt.want {
				t.Errorf("resolvePDFTOC() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// run - End-to-end command dispatch
// ---------------------------------------------------------------------------

func TestRunEPUB(t *testing.T) {
	inputDir := writeManuscript(t, map[string]string{
		"chapter-1.md": "# One\n\nText.\n",
		"chapter-2.md": "# Two\n\nText.\n",
	})
	out := filepath.Join(t.TempDir(), "book.epub")
	staging := filepath.Join(t.TempDir(), "staging")

	var stdout bytes.Buffer
	err := run([]string{
		"--title", "Test Book",
		"--author", "Tester",
		"--input-dir", inputDir,
		"-o", out,
		"--staging-dir", staging,
	}, &stdout)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("EPUB not written: %v", err)
	}
	output := stdout.String()
	if !strings.Contains(output, "Building EPUB: Test Book") {
		t.Errorf("missing header in output:\n%s", output)
	}
	if !strings.Contains(output, "SUCCESS: "+out) {
		t.Errorf("missing success line in output:\n%s", output)
	}
	if !strings.Contains(output, "Chapters: 2") {
		t.Errorf("missing chapter count in output:\n%s", output)
	}
}

func TestRunConsolidate(t *testing.T) {
	inputDir := writeManuscript(t, map[string]string{
		"chapter-1.md": "# One\n",
		"chapter-2.md": "# Two\n",
	})
	out := filepath.Join(t.TempDir(), "merged.md")

	var stdout bytes.Buffer
	err := run([]string{
		"--consolidate",
		"--input-dir", inputDir,
		"-o", out,
	}, &stdout)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := "# One\n\n---\n\n# Two"; string(content) != want {
		t.Errorf("consolidated content = %q, want %q", content, want)
	}
}

func TestRunMissingInputDir(t *testing.T) {
	var stdout bytes.Buffer
	err := run([]string{
		"--input-dir", filepath.Join(t.TempDir(), "nope"),
	}, &stdout)
	if !errors.Is(err, md2epub.ErrInputDirNotFound) {
		t.Fatalf("run() error = %v, want ErrInputDirNotFound", err)
	}
}

func TestRunVersion(t *testing.T) {
	var stdout bytes.Buffer
	if err := run([]string{"--version"}, &stdout); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "md2epub") {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestRunQuiet(t *testing.T) {
	inputDir := writeManuscript(t, map[string]string{
		"chapter-1.md": "# One\n",
	})
	out := filepath.Join(t.TempDir(), "book.epub")
	staging := filepath.Join(t.TempDir(), "staging")

	var stdout bytes.Buffer
	err := run([]string{
		"-q",
		"--input-dir", inputDir,
		"-o", out,
		"--staging-dir", staging,
	}, &stdout)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet run produced output:\n%s", stdout.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("EPUB not written: %v", err)
	}
}

func TestRunWithConfigFile(t *testing.T) {
	inputDir := writeManuscript(t, map[string]string{
		"chapter-1.md": "# One\n",
	})
	out := filepath.Join(t.TempDir(), "book.epub")
	staging := filepath.Join(t.TempDir(), "staging")

	cfgPath := filepath.Join(t.TempDir(), "book.yaml")
	cfg := "title: Config Title\nauthor: Config Author\ninput_dir: " + inputDir + "\noutput: " + out + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	err := run([]string{
		"-c", cfgPath,
		"--staging-dir", staging,
	}, &stdout)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Building EPUB: Config Title") {
		t.Errorf("config title not used:\n%s", stdout.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("EPUB not written at config output path: %v", err)
	}
}

func TestRunConfigNotFound(t *testing.T) {
	var stdout bytes.Buffer
	err := run([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}, &stdout)
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Fatalf("run() error = %v, want ErrConfigNotFound", err)
	}
}
