package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// extractPageMetadata parses raw page HTML and pulls out the title and
// meta description used to enrich capture reports.
func extractPageMetadata(rawHTML string) (*PageMetadata, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	meta := &PageMetadata{
		Title:       extractTitle(doc),
		Description: extractMetaDescription(doc),
	}
	return meta, nil
}

// extractTitle finds the first <title> element and returns its text.
func extractTitle(doc *html.Node) string {
	var title string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)
	return title
}

// extractMetaDescription finds <meta name="description"> and returns
// its content attribute.
func extractMetaDescription(doc *html.Node) string {
	var description string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, content string
			for _, attr := range n.Attr {
				switch strings.ToLower(attr.Key) {
				case "name":
					name = strings.ToLower(attr.Val)
				case "content":
					content = attr.Val
				}
			}
			if name == "description" {
				description = strings.TrimSpace(content)
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)
	return description
}
