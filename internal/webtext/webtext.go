// Package webtext turns raw HTML into the short plain-text preview shown by
// the fetch tool.
package webtext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NoTitle is returned by Title when the document has no usable <title>.
const NoTitle = "No title"

var titlePattern = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)

// VisibleText returns the character data of htmlContent with every <script>
// and <style> element removed, whitespace runs collapsed to single spaces and
// the result trimmed.
func VisibleText(htmlContent string) string {
	z := html.NewTokenizer(strings.NewReader(htmlContent))
	var sb strings.Builder
	var skip atom.Atom
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF, or a reader error after which the partial text is still useful
			return collapse(sb.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			// <script/> still opens a raw-text element; the slash is ignored.
			if skip != 0 {
				continue
			}
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				skip = a
			}
		case html.EndTagToken:
			if skip == 0 {
				continue
			}
			name, _ := z.TagName()
			if atom.Lookup(name) == skip {
				skip = 0
			}
		case html.TextToken:
			if skip != 0 {
				continue
			}
			sb.Write(z.Text())
		}
	}
}

// Title returns the trimmed raw content of the first <title> element in the
// markup, or NoTitle when there is none. Entities are left undecoded.
func Title(htmlContent string) string {
	m := titlePattern.FindStringSubmatch(htmlContent)
	if m == nil {
		return NoTitle
	}
	return strings.TrimSpace(m[1])
}

// Truncate shortens text to at most limit characters, appending "..." when
// anything was cut. A non-positive limit disables truncation.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
