package dom

import "strings"

// Document represents a DOM document. It is a view over Node.
type Document Node

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	n := newNode(DocumentNode, "#document", nil)
	n.documentData = &documentData{
		url: "about:blank",
	}
	return (*Document)(n)
}

// AsNode returns the Node view of this document.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode.
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// URL returns the document's URL.
func (d *Document) URL() string {
	return d.documentData.url
}

// SetURL sets the document's URL.
func (d *Document) SetURL(url string) {
	d.documentData.url = url
}

// DocumentElement returns the root element of the document, or nil if the
// document has no element child.
func (d *Document) DocumentElement() *Element {
	return d.documentData.documentElement.AsElement()
}

// CreateElement creates a new element with the given tag name. Tag names are
// uppercased per the HTML convention.
func (d *Document) CreateElement(tagName string) *Element {
	localName := strings.ToLower(tagName)
	n := newNode(ElementNode, strings.ToUpper(tagName), d)
	n.elementData = &elementData{
		localName:  localName,
		tagName:    strings.ToUpper(tagName),
		attributes: make(map[string]string),
	}
	return (*Element)(n)
}

// CreateTextNode creates a new text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	n := newNode(TextNode, "#text", d)
	n.textData = &data
	return n
}

// GetElementById returns the first element with the given id, or nil.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	return d.findElementById(d.AsNode(), id)
}

func (d *Document) findElementById(node *Node, id string) *Element {
	for c := node.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode && c.elementData.id == id {
			return (*Element)(c)
		}
		if found := d.findElementById(c, id); found != nil {
			return found
		}
	}
	return nil
}

// IntersectionObserverTaskManager returns the document's intersection
// observer task manager, creating it on first use. There is exactly one per
// document.
func (d *Document) IntersectionObserverTaskManager() *IntersectionObserverTaskManager {
	if d.documentData.intersectionObserverTaskManager == nil {
		d.documentData.intersectionObserverTaskManager = NewIntersectionObserverTaskManager()
	}
	return d.documentData.intersectionObserverTaskManager
}

// UpdateIntersectionObservations runs the per-pass update for every observer
// registered with this document. The layout driver calls this after layout
// has produced fresh element geometry.
func (d *Document) UpdateIntersectionObservations() {
	d.IntersectionObserverTaskManager().UpdateObservations()
}
