package svgcard

import "strings"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// SafeText is an XML-escaped string.  Only Escape can construct one, so any text
// node built from a SafeText is guaranteed free of markup injection.  Usernames
// and titles are user controlled and must always pass through here.
type SafeText struct {
	s string
}

// Escape XML-escapes raw text for embedding in SVG text nodes and attributes
func Escape(raw string) SafeText {
	return SafeText{s: xmlEscaper.Replace(raw)}
}

func (t SafeText) String() string {
	return t.s
}
