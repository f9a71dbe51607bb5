// Package assets provides the embedded default stylesheet shipped with
// every generated book. The CSS is static; there is no per-book
// parameterization.
package assets

import _ "embed"

// Stylesheet is the default EPUB stylesheet, written into
// OEBPS/Styles/stylesheet.css of every staging tree.
//
//go:embed stylesheet.css
var Stylesheet []byte
