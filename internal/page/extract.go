// Package page turns raw HTML into the text blob handed to the
// structured extraction model.
package page

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Content is the readable text of a page plus a summary of its links.
type Content struct {
	Text        string
	LinkSummary string
}

// Blob is the combined text for extraction: plain text immediately
// followed by the link summary. A page without anchors yields the plain
// text alone.
func (c Content) Blob() string {
	return c.Text + c.LinkSummary
}

// Extract parses HTML and returns the page's visible text and a link
// summary. Visible text is every text node outside script/style, trimmed
// per node and joined by single spaces. The link summary concatenates
// "<absolute-url> (<anchor text>)" for every anchor with a parsable
// href, relative hrefs resolved against baseURL. Duplicate and
// non-content links are kept; filtering is the model's job.
func Extract(rawHTML []byte, baseURL string) (Content, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		return Content{}, fmt.Errorf("parse html: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return Content{}, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		links = append(links, fmt.Sprintf("%s (%s)", abs.String(), strings.TrimSpace(sel.Text())))
	})

	return Content{
		Text:        visibleText(doc),
		LinkSummary: strings.Join(links, " "),
	}, nil
}

func visibleText(doc *goquery.Document) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
