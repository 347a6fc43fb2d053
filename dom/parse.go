package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseDocument parses HTML markup into a Document using golang.org/x/net/html
// as the underlying parser implementation. Only the node types this package
// models survive the conversion; comments and doctypes are dropped.
func ParseDocument(r io.Reader) (*Document, error) {
	parsed, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	convertChildren(doc, doc.AsNode(), parsed)
	return doc, nil
}

// ParseDocumentString parses HTML markup from a string.
func ParseDocumentString(markup string) (*Document, error) {
	return ParseDocument(strings.NewReader(markup))
}

// convertChildren converts the children of src into dom nodes appended to
// parent.
func convertChildren(doc *Document, parent *Node, src *html.Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			el := doc.CreateElement(c.Data)
			for _, attr := range c.Attr {
				if attr.Namespace != "" {
					continue
				}
				el.SetAttribute(attr.Key, attr.Val)
			}
			parent.AppendChild(el.AsNode())
			convertChildren(doc, el.AsNode(), c)
		case html.TextNode:
			parent.AppendChild(doc.CreateTextNode(c.Data))
		}
	}
}
