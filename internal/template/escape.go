package template

import "strings"

// htmlEscaper rewrites, in order, & < > ' ". The ampersand goes first so
// entities introduced by later replacements are not escaped twice.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// EscapeHTML escapes a substituted value before it is placed in a line.
func EscapeHTML(value string) string {
	return htmlEscaper.Replace(value)
}
