package md2epub

import "strings"

// specialCharReplacer maps typographic characters to plain ASCII
// equivalents that survive LaTeX processing. The literal backslash-n pair
// (not a real newline) sometimes leaks into AI-drafted manuscripts and is
// collapsed to a space.
var specialCharReplacer = strings.NewReplacer(
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"—", "--", // em dash
	"–", "-", // en dash
	"…", "...", // ellipsis
	" ", " ", // non-breaking space
	"•", "*", // bullet
	`\n`, " ",
)

// NormalizeSpecialChars replaces typographic punctuation with ASCII
// equivalents. Used as an opt-in preprocessing step for PDF mode, where
// LaTeX handles curly quotes and dashes poorly.
func NormalizeSpecialChars(content string) string {
	return specialCharReplacer.Replace(content)
}
