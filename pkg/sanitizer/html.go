package sanitizer

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy drops every element and keeps text content. Script and
	// style bodies are skipped entirely.
	strictPolicy = bluemonday.StrictPolicy()

	// formattingPolicy keeps basic formatting and plain links.
	formattingPolicy = newFormattingPolicy()

	// quoteUnescaper undoes the quote escapes of the strict policy. Quotes
	// carry no meaning outside attributes, which strict output never has.
	quoteUnescaper = strings.NewReplacer("&#39;", "'", "&#34;", `"`)
)

func newFormattingPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"b", "i", "em", "strong", "u", "s", "p", "br",
		"ul", "ol", "li", "blockquote", "code", "pre", "span",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)
	return p
}

// SanitizeHTML removes markup from s. In strict mode every tag is removed and
// only text content remains. Otherwise dangerous constructs (script, iframe,
// object and embed elements, inline event handlers, javascript: URLs) are
// removed while basic formatting tags survive.
//
// Text content is returned HTML-escaped, so entities in the input are kept
// as entities. Strict output only escapes <, > and &; quotes are returned
// as typed.
func SanitizeHTML(s string, strict bool) string {
	if s == "" {
		return ""
	}
	if strict {
		return quoteUnescaper.Replace(strictPolicy.Sanitize(s))
	}
	return formattingPolicy.Sanitize(s)
}

// SanitizeText strips all markup from plain-text fields such as names,
// titles and descriptions.
func SanitizeText(s string) string {
	return SanitizeHTML(s, true)
}
