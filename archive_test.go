package md2epub

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newArchiveFixture stages a minimal tree and returns it.
func newArchiveFixture(t *testing.T) *StagingTree {
	t.Helper()
	tree := newTestTree(t)
	if err := writeContainerFiles(tree); err != nil {
		t.Fatal(err)
	}
	if err := tree.WriteFile("OEBPS/content.opf", []byte("<package/>")); err != nil {
		t.Fatal(err)
	}
	if err := tree.WriteFile("OEBPS/Text/chapter-01.xhtml", []byte(strings.Repeat("<p>compressible</p>\n", 50))); err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestWriteArchiveMimetypeFirstAndStored(t *testing.T) {
	tree := newArchiveFixture(t)
	out := filepath.Join(t.TempDir(), "book.epub")

	size, err := writeArchive(tree, out)
	if err != nil {
		t.Fatalf("writeArchive() error = %v", err)
	}
	if size <= 0 {
		t.Errorf("writeArchive() size = %d", size)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer zr.Close()

	first := zr.File[0]
	if first.Name != "mimetype" {
		t.Errorf("first entry = %q, want mimetype", first.Name)
	}
	if first.Method != zip.Store {
		t.Errorf("mimetype method = %d, want %d (stored)", first.Method, zip.Store)
	}

	rc, err := first.Open()
	if err != nil {
		t.Fatal(err)
	}
	content, err := io.ReadAll(rc)
	rc.Close()
	if err != nil || string(content) != "application/epub+zip" {
		t.Errorf("mimetype content = %q, %v", content, err)
	}
}

func TestWriteArchiveRawMimetypeOffset(t *testing.T) {
	// Readers that sniff the container check for the mimetype string at
	// byte offset 38: 30 bytes of local file header plus len("mimetype").
	tree := newArchiveFixture(t)
	out := filepath.Join(t.TempDir(), "book.epub")
	if _, err := writeArchive(tree, out); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 58 {
		t.Fatalf("archive too small: %d bytes", len(raw))
	}
	if got := string(raw[38:58]); got != "application/epub+zip" {
		t.Errorf("bytes at offset 38 = %q, want application/epub+zip", got)
	}
}

func TestWriteArchiveDeflatesOtherEntries(t *testing.T) {
	tree := newArchiveFixture(t)
	out := filepath.Join(t.TempDir(), "book.epub")
	if _, err := writeArchive(tree, out); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	names := make(map[string]uint16)
	for _, f := range zr.File {
		names[f.Name] = f.Method
	}
	for _, name := range []string{"META-INF/container.xml", "OEBPS/content.opf", "OEBPS/Text/chapter-01.xhtml"} {
		method, ok := names[name]
		if !ok {
			t.Errorf("entry %s missing from archive", name)
			continue
		}
		if method != zip.Deflate {
			t.Errorf("entry %s method = %d, want %d (deflated)", name, method, zip.Deflate)
		}
	}
	if _, dup := names["mimetype"]; !dup {
		t.Error("mimetype entry missing")
	}
	if len(zr.File) != 4 {
		t.Errorf("archive has %d entries, want 4", len(zr.File))
	}
}

func TestWriteArchiveOverwritesExisting(t *testing.T) {
	tree := newArchiveFixture(t)
	out := filepath.Join(t.TempDir(), "book.epub")
	if err := os.WriteFile(out, []byte("stale bytes, not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := writeArchive(tree, out); err != nil {
		t.Fatalf("writeArchive() error = %v", err)
	}
	if _, err := zip.OpenReader(out); err != nil {
		t.Errorf("overwritten output is not a valid archive: %v", err)
	}
}

func TestWriteArchiveCreatesParentDir(t *testing.T) {
	tree := newArchiveFixture(t)
	out := filepath.Join(t.TempDir(), "dist", "books", "book.epub")

	if _, err := writeArchive(tree, out); err != nil {
		t.Fatalf("writeArchive() error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}
}
