package md2epub

import (
	"bytes"
	"fmt"
	"html/template"
)

// navDoc is the EPUB 3 navigation document: a required table-of-contents
// nav plus a hidden landmarks nav for accessibility tooling.
var navDoc = template.Must(template.New("nav").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops" xml:lang="{{.Language}}" lang="{{.Language}}">
<head>
    <meta charset="UTF-8"/>
    <title>Navigation</title>
    <link rel="stylesheet" type="text/css" href="Styles/stylesheet.css"/>
</head>
<body>
    <nav epub:type="toc" id="toc" role="doc-toc">
        <h1>Table of Contents</h1>
        <ol>
{{- range .TOC}}
            <li><a href="{{.Href}}">{{.Title}}</a></li>
{{- end}}
        </ol>
    </nav>
    <nav epub:type="landmarks" id="landmarks" role="doc-landmarks" hidden="">
        <h1>Landmarks</h1>
        <ol>
{{- range .Landmarks}}
            <li><a epub:type="{{.Type}}" href="{{.Href}}">{{.Title}}</a></li>
{{- end}}
        </ol>
    </nav>
</body>
</html>
`))

// navLink is one entry in the TOC or landmarks nav.
type navLink struct {
	Type  string // epub:type, landmarks only
	Href  string
	Title string
}

// renderNavDoc produces nav.xhtml. TOC entries follow spine order: cover
// first when present, then chapters in discovery order. Landmarks point at
// the cover, the TOC itself, and the first body chapter.
func renderNavDoc(book Book, chapters []Chapter, cover *CoverAsset) ([]byte, error) {
	var toc []navLink
	if cover != nil {
		toc = append(toc, navLink{Href: cover.DocHref, Title: "Cover"})
	}
	for _, ch := range chapters {
		toc = append(toc, navLink{Href: ch.Href, Title: ch.Title})
	}

	var landmarks []navLink
	if cover != nil {
		landmarks = append(landmarks, navLink{Type: "cover", Href: cover.DocHref, Title: "Cover"})
	}
	landmarks = append(landmarks, navLink{Type: "toc", Href: "nav.xhtml", Title: "Table of Contents"})
	if len(chapters) > 0 {
		landmarks = append(landmarks, navLink{Type: "bodymatter", Href: chapters[0].Href, Title: "Start Reading"})
	}

	var buf bytes.Buffer
	data := struct {
		Language  string
		TOC       []navLink
		Landmarks []navLink
	}{book.Language, toc, landmarks}
	if err := navDoc.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering navigation document: %w", err)
	}
	return buf.Bytes(), nil
}
