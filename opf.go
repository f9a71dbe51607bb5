package md2epub

import (
	"encoding/xml"
	"fmt"
	"time"
)

// Media types used in the manifest.
const (
	mediaTypeXHTML = "application/xhtml+xml"
	mediaTypeCSS   = "text/css"
)

// The package document is modeled as structs and serialized with a single
// xml.Marshal call, so XML escaping of user-supplied metadata happens in
// one place.

type opfPackage struct {
	XMLName          xml.Name    `xml:"package"`
	Xmlns            string      `xml:"xmlns,attr"`
	Version          string      `xml:"version,attr"`
	Lang             string      `xml:"xml:lang,attr"`
	UniqueIdentifier string      `xml:"unique-identifier,attr"`
	Metadata         opfMetadata `xml:"metadata"`
	Manifest         opfManifest `xml:"manifest"`
	Spine            opfSpine    `xml:"spine"`
}

type opfMetadata struct {
	XmlnsDC    string        `xml:"xmlns:dc,attr"`
	Identifier opfIdentifier `xml:"dc:identifier"`
	Title      string        `xml:"dc:title"`
	Creator    string        `xml:"dc:creator"`
	Language   string        `xml:"dc:language"`
	Publisher  string        `xml:"dc:publisher"`
	Date       string        `xml:"dc:date"`
	Metas      []opfMeta     `xml:"meta"`
}

type opfIdentifier struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

type opfMeta struct {
	Property string `xml:"property,attr,omitempty"`
	Name     string `xml:"name,attr,omitempty"`
	Content  string `xml:"content,attr,omitempty"`
	Value    string `xml:",chardata"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr,omitempty"`
}

type opfSpine struct {
	Refs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

// accessibilityMetas is the fixed EPUB accessibility metadata block
// (schema.org vocabulary) describing how the generated book can be read.
var accessibilityMetas = []opfMeta{
	{Property: "schema:accessMode", Value: "textual"},
	{Property: "schema:accessMode", Value: "visual"},
	{Property: "schema:accessModeSufficient", Value: "textual"},
	{Property: "schema:accessibilityFeature", Value: "tableOfContents"},
	{Property: "schema:accessibilityFeature", Value: "readingOrder"},
	{Property: "schema:accessibilityFeature", Value: "structuralNavigation"},
	{Property: "schema:accessibilityHazard", Value: "none"},
	{Property: "schema:accessibilitySummary", Value: "This publication conforms to WCAG 2.1 Level AA. " +
		"All content is accessible via text and includes proper semantic structure, navigation, " +
		"and alternative text for images where applicable."},
}

// buildPackageDoc produces content.opf. The manifest lists every generated
// file; the spine lists reading order, cover first when present, then
// chapters in discovery order. Spine idrefs always reference manifest ids
// built from the same Chapter records.
func buildPackageDoc(book Book, bookID string, chapters []Chapter, cover *CoverAsset, now time.Time) ([]byte, error) {
	publisher := book.Publisher
	if publisher == "" {
		publisher = book.Author
	}

	metas := []opfMeta{
		{Property: "dcterms:modified", Value: now.UTC().Format("2006-01-02T15:04:05Z")},
	}
	if cover != nil {
		metas = append(metas, opfMeta{Name: "cover", Content: "cover-image"})
	}
	metas = append(metas, accessibilityMetas...)

	manifest := opfManifest{Items: []opfItem{
		{ID: "nav", Href: "nav.xhtml", MediaType: mediaTypeXHTML, Properties: "nav"},
		{ID: "css", Href: "Styles/stylesheet.css", MediaType: mediaTypeCSS},
	}}
	var spine opfSpine
	if cover != nil {
		manifest.Items = append(manifest.Items,
			opfItem{ID: "cover-image", Href: cover.ImageHref, MediaType: cover.MediaType, Properties: "cover-image"},
			opfItem{ID: "cover", Href: cover.DocHref, MediaType: mediaTypeXHTML},
		)
		spine.Refs = append(spine.Refs, opfItemRef{IDRef: "cover"})
	}
	for _, ch := range chapters {
		manifest.Items = append(manifest.Items, opfItem{ID: ch.ID, Href: ch.Href, MediaType: mediaTypeXHTML})
		spine.Refs = append(spine.Refs, opfItemRef{IDRef: ch.ID})
	}

	pkg := opfPackage{
		Xmlns:            "http://www.idpf.org/2007/opf",
		Version:          "3.0",
		Lang:             book.Language,
		UniqueIdentifier: "book-id",
		Metadata: opfMetadata{
			XmlnsDC:    "http://purl.org/dc/elements/1.1/",
			Identifier: opfIdentifier{ID: "book-id", Value: bookID},
			Title:      book.Title,
			Creator:    book.Author,
			Language:   book.Language,
			Publisher:  publisher,
			Date:       now.Format("2006-01-02"),
			Metas:      metas,
		},
		Manifest: manifest,
		Spine:    spine,
	}

	out, err := xml.MarshalIndent(pkg, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshaling package document: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
