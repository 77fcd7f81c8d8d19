// Package textclean reduces rich-text fragments to plain single-line text in
// Unicode NFC form, so composed and decomposed spellings compare equal.
package textclean

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// markup matches a complete start or end tag, or a comment opener. A bare
// "<" in text such as "a<b" or "<Y16" is not markup.
var markup = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9-]*(?:\s[^<>]*)?/?>|<!--`)

// PlainText strips HTML markup and collapses whitespace. Input without
// tags only has its entities unescaped.
func PlainText(s string) string {
	if !markup.MatchString(s) {
		if strings.Contains(s, "&") {
			s = html.UnescapeString(s)
		}
		return collapse(s)
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return collapse(buf.String())
}

func collapse(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
