// Package pageinfo reads metadata from web pages.
package pageinfo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoTitle is returned when a page has no usable title.
var ErrNoTitle = errors.New("page has no title")

const maxPageBytes = 2 << 20

// FetchTitle downloads rawURL and returns its title.
// A nil client uses http.DefaultClient.
func FetchTitle(ctx context.Context, client *http.Client, rawURL string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: %s", http.StatusText(resp.StatusCode))
	}

	return ParseTitle(io.LimitReader(resp.Body, maxPageBytes))
}

// ParseTitle returns the text of the first <title> element, falling back
// to the og:title meta property.
func ParseTitle(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var title, ogTitle string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" {
					title = getTextContent(n)
				}
			case "meta":
				if ogTitle == "" && strings.EqualFold(getAttr(n, "property"), "og:title") {
					ogTitle = strings.TrimSpace(getAttr(n, "content"))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	switch {
	case title != "":
		return title, nil
	case ogTitle != "":
		return ogTitle, nil
	default:
		return "", ErrNoTitle
	}
}

// getTextContent returns the whitespace-collapsed text of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(text.String()), " ")
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
