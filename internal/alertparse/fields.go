package alertparse

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// cleanText collapses whitespace runs (including non-breaking spaces from
// decoded entities) to single spaces and trims the ends.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// normLabel canonicalizes a label cell like "  Date & Time : " for lookup:
// cleaned, trailing colons dropped, lowercased.
func normLabel(s string) string {
	return strings.ToLower(strings.TrimRight(cleanText(s), ":"))
}

// textContent returns the cleaned text of a node and all its descendants.
// Text nodes are joined with spaces so that label and value cells read as one
// sentence for the regex extractors.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return cleanText(b.String())
}

// tableFields collects label/value pairs from two-cell table rows: the first
// <td> is normalized as the label, the second is the value. A repeated label
// overwrites the earlier value, so the last row wins.
func tableFields(doc *html.Node) map[string]string {
	fields := make(map[string]string)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			cells := childElements(n, "td")
			if len(cells) >= 2 {
				label := normLabel(textContent(cells[0]))
				if label != "" {
					fields[label] = textContent(cells[1])
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return fields
}

// childElements returns the direct child elements of n with the given tag.
func childElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
	}
	return out
}

// strongTail returns the cleaned text immediately following a <strong> whose
// own text equals label, e.g. `<strong>From:</strong> ACME PTE LTD`. Returns
// "" when the label is absent or followed by another element instead of text.
func strongTail(doc *html.Node, label string) string {
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "strong" && cleanText(textContent(n)) == label {
			for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
				if sib.Type == html.ElementNode {
					break
				}
				if sib.Type == html.TextNode {
					if s := cleanText(sib.Data); s != "" {
						found = s
						return
					}
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}
