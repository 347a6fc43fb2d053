package dom

// Element represents a DOM element. It is a view over Node.
type Element Node

// AsNode returns the Node view of this element.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode.
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// TagName returns the uppercase tag name of this element.
func (e *Element) TagName() string {
	return e.elementData.tagName
}

// LocalName returns the lowercase local name of this element.
func (e *Element) LocalName() string {
	return e.elementData.localName
}

// Id returns the element's id attribute.
func (e *Element) Id() string {
	return e.elementData.id
}

// SetId sets the element's id attribute.
func (e *Element) SetId(id string) {
	e.elementData.id = id
	e.elementData.attributes["id"] = id
}

// GetAttribute returns the value of the named attribute, or "" if absent.
func (e *Element) GetAttribute(name string) string {
	return e.elementData.attributes[name]
}

// SetAttribute sets the value of the named attribute.
func (e *Element) SetAttribute(name, value string) {
	e.elementData.attributes[name] = value
	if name == "id" {
		e.elementData.id = value
	}
}

// HasAttribute returns true if the named attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.elementData.attributes[name]
	return ok
}

// OwnerDocument returns the document this element belongs to.
func (e *Element) OwnerDocument() *Document {
	return e.ownerDoc
}

// Geometry returns the element's layout geometry, or nil if layout has not
// run for it yet.
func (e *Element) Geometry() *ElementGeometry {
	return e.elementData.geometry
}

// SetGeometry records the element's layout geometry. The layout engine calls
// this after each layout pass.
func (e *Element) SetGeometry(g *ElementGeometry) {
	e.elementData.geometry = g
}

// BoundingClientRect returns the element's border box as a DOMRect. Elements
// without layout geometry report an empty rect at the origin, matching
// getBoundingClientRect for undisplayed elements.
func (e *Element) BoundingClientRect() *DOMRect {
	g := e.elementData.geometry
	if g == nil {
		return NewDOMRect(0, 0, 0, 0)
	}
	return NewDOMRect(g.X, g.Y, g.Width, g.Height)
}
