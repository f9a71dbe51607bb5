package md2epub

import (
	"bytes"
	"fmt"
	"html/template"
)

// Generated XHTML documents are built with html/template so every
// user-supplied string (titles, author) passes through one escaping choke
// point. Chapter bodies are already-rendered markup and flow through as
// template.HTML.

// chapterDoc is the standalone XHTML document wrapping one chapter.
var chapterDoc = template.Must(template.New("chapter").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops" xml:lang="{{.Language}}" lang="{{.Language}}">
<head>
    <meta charset="UTF-8"/>
    <title>{{.Title}}</title>
    <link rel="stylesheet" type="text/css" href="../Styles/stylesheet.css"/>
</head>
<body>
    <section epub:type="chapter" role="doc-chapter">
{{.Body}}
    </section>
</body>
</html>
`))

// coverDoc wraps the cover image with alt text naming the book and author.
var coverDoc = template.Must(template.New("cover").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops" xml:lang="{{.Language}}" lang="{{.Language}}">
<head>
    <meta charset="UTF-8"/>
    <title>Cover</title>
    <link rel="stylesheet" type="text/css" href="../Styles/stylesheet.css"/>
</head>
<body class="cover">
    <section epub:type="cover" role="doc-cover">
        <div class="cover-image">
            <img src="../{{.ImageHref}}" alt="Cover: {{.Title}} by {{.Author}}" />
        </div>
    </section>
</body>
</html>
`))

// renderChapterDoc produces the XHTML document for one chapter.
func renderChapterDoc(language, title, body string) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Language string
		Title    string
		Body     template.HTML
	}{language, title, template.HTML(body)} // #nosec G203 -- body is Goldmark output, not user markup
	if err := chapterDoc.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering chapter document: %w", err)
	}
	return buf.Bytes(), nil
}

// renderCoverDoc produces the XHTML cover page referencing imageHref
// (a path relative to the OEBPS root, e.g. "Images/cover.png").
func renderCoverDoc(book Book, imageHref string) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Language  string
		Title     string
		Author    string
		ImageHref string
	}{book.Language, book.Title, book.Author, imageHref}
	if err := coverDoc.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering cover document: %w", err)
	}
	return buf.Bytes(), nil
}
