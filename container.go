package md2epub

// mimetypeContent is the exact content of the mimetype marker file: ASCII,
// no trailing newline, no surrounding whitespace. Readers that check byte
// offset 38 of the archive depend on these exact bytes.
const mimetypeContent = "application/epub+zip"

// containerDescriptor is META-INF/container.xml. It has no dynamic content;
// it only points readers at the package document.
const containerDescriptor = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
    <rootfiles>
        <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
    </rootfiles>
</container>`

// writeContainerFiles writes the two fixed container files into the tree.
func writeContainerFiles(tree *StagingTree) error {
	if err := tree.WriteFile("mimetype", []byte(mimetypeContent)); err != nil {
		return err
	}
	return tree.WriteFile("META-INF/container.xml", []byte(containerDescriptor))
}
