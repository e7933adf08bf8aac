package htmlutil

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// TextFragments returns the trimmed direct text-node children of the
// selection's first node, skipping fragments that are empty after trimming.
// Text inside child elements (links, spans) is not included.
func TextFragments(sel *goquery.Selection) []string {
	if len(sel.Nodes) == 0 {
		return nil
	}

	var fragments []string
	child := sel.Nodes[0].FirstChild
	for child != nil {
		if child.Type == html.TextNode {
			text := removeNonPrintable(child.Data)
			text = strings.Trim(text, " \t\n")
			if text != "" {
				fragments = append(fragments, text)
			}
		}
		child = child.NextSibling
	}
	return fragments
}
