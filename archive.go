package md2epub

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// writeArchive serializes the staging tree into an EPUB archive at
// outputPath, overwriting any existing file there. The mimetype marker is
// the first entry and is stored uncompressed; every other file is deflated
// under its staging-relative path. On failure the partial archive is
// removed so no broken output is left behind.
func writeArchive(tree *StagingTree, outputPath string) (int64, error) {
	if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("removing existing output: %w", err)
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(outputPath) // #nosec G304 -- output path comes from user configuration
	if err != nil {
		return 0, fmt.Errorf("creating output: %w", err)
	}

	if err := writeArchiveEntries(tree, f); err != nil {
		_ = f.Close()
		_ = os.Remove(outputPath)
		return 0, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(outputPath)
		return 0, fmt.Errorf("closing output: %w", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return 0, fmt.Errorf("stating output: %w", err)
	}
	return info.Size(), nil
}

func writeArchiveEntries(tree *StagingTree, out io.Writer) error {
	zw := zip.NewWriter(out)

	// mimetype MUST be the first entry and MUST be stored, not deflated.
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return fmt.Errorf("creating mimetype entry: %w", err)
	}
	if _, err := w.Write([]byte(mimetypeContent)); err != nil {
		return fmt.Errorf("writing mimetype entry: %w", err)
	}

	err = filepath.WalkDir(tree.Root(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(tree.Root(), path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}
		name := filepath.ToSlash(rel)
		if name == "mimetype" {
			return nil
		}
		return addArchiveEntry(zw, name, path)
	})
	if err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

func addArchiveEntry(zw *zip.Writer, name, path string) error {
	src, err := os.Open(path) // #nosec G304 -- path is inside the staging tree
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	w, err := zw.Create(name) // zip.Deflate by default
	if err != nil {
		return fmt.Errorf("creating entry %s: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("writing entry %s: %w", name, err)
	}
	return nil
}
