package md2epub

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// CoverAsset describes a cover image staged into the tree, plus the XHTML
// page wrapping it.
type CoverAsset struct {
	ImageHref string // e.g. "Images/cover.png", relative to the OEBPS root
	MediaType string // e.g. "image/png"
	DocHref   string // always "Text/cover.xhtml"
}

// stageCover copies the configured cover image into the staging tree as
// Images/cover.<ext> and writes the cover XHTML page. Returns (nil, nil)
// when no cover is configured or the configured file does not exist; in
// that case no cover artifact appears anywhere in the output.
func (s *Service) stageCover(book Book, tree *StagingTree) (*CoverAsset, error) {
	if book.Cover == "" {
		return nil, nil
	}
	if !fileutil.FileExists(book.Cover) {
		s.logf("  Skipping cover (not found): %s", book.Cover)
		return nil, nil
	}

	ext := strings.TrimPrefix(filepath.Ext(book.Cover), ".")
	cover := &CoverAsset{
		ImageHref: "Images/cover." + ext,
		MediaType: coverMediaType(ext),
		DocHref:   "Text/cover.xhtml",
	}

	s.logf("  Adding cover: %s", book.Cover)
	if err := tree.CopyFile("OEBPS/"+cover.ImageHref, book.Cover); err != nil {
		return nil, err
	}

	doc, err := renderCoverDoc(book, cover.ImageHref)
	if err != nil {
		return nil, err
	}
	if err := tree.WriteFile("OEBPS/"+cover.DocHref, doc); err != nil {
		return nil, err
	}

	return cover, nil
}

// coverMediaType maps an image file extension to its media type.
func coverMediaType(ext string) string {
	switch strings.ToLower(ext) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	case "webp":
		return "image/webp"
	default:
		return "image/" + strings.ToLower(ext)
	}
}
