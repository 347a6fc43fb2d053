package dom

// Node represents a node in the DOM tree. Document and Element are views over
// the same underlying struct, converted with AsNode/AsElement/AsDocument.
type Node struct {
	nodeType   NodeType
	nodeName   string
	ownerDoc   *Document
	parentNode *Node

	// First/last child and sibling pointers for efficient traversal
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Type-specific data (only one will be non-nil based on nodeType)
	elementData  *elementData
	textData     *string
	documentData *documentData
}

// ElementGeometry holds computed layout geometry for an element.
// It is produced by the layout engine, not by this package; intersection
// observation only ever reads it.
type ElementGeometry struct {
	// Border box coordinates relative to the viewport
	X, Y, Width, Height float64
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName  string
	tagName    string
	id         string
	attributes map[string]string

	// Layout geometry - set by the layout pass
	geometry *ElementGeometry

	// Element-side half of the observer/target registration pair
	intersectionObserverRegistrations []*IntersectionObserverRegistration
}

// documentData holds data specific to Document nodes.
type documentData struct {
	documentElement *Node
	url             string

	// Document-scoped scheduler for intersection observer notification tasks
	intersectionObserverTaskManager *IntersectionObserverTaskManager
}

// newNode creates a new node of the given type.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of this node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of this node (tag name for elements, "#text" for
// text nodes, "#document" for documents).
func (n *Node) NodeName() string {
	return n.nodeName
}

// OwnerDocument returns the document this node belongs to, or nil for a
// document node itself.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// NextSibling returns the node immediately following this one, or nil.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// PreviousSibling returns the node immediately preceding this one, or nil.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// IsConnected returns true if the node is connected to a document.
func (n *Node) IsConnected() bool {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root.nodeType == DocumentNode
}

// AppendChild adds a node to the end of the list of children of this node.
// The child is detached from its previous parent first.
func (n *Node) AppendChild(child *Node) *Node {
	if child == nil {
		return nil
	}
	if child.parentNode != nil {
		child.parentNode.RemoveChild(child)
	}

	child.parentNode = n
	child.prevSibling = n.lastChild
	child.nextSibling = nil
	if n.lastChild != nil {
		n.lastChild.nextSibling = child
	} else {
		n.firstChild = child
	}
	n.lastChild = child

	if n.nodeType == DocumentNode && child.nodeType == ElementNode {
		n.documentData.documentElement = child
	}
	return child
}

// RemoveChild removes a child node from this node. Returns the removed node,
// or nil if child is not a child of this node.
func (n *Node) RemoveChild(child *Node) *Node {
	if child == nil || child.parentNode != n {
		return nil
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil

	if n.nodeType == DocumentNode && n.documentData.documentElement == child {
		n.documentData.documentElement = nil
	}
	return child
}

// TextContent returns the concatenated text of this node's descendants.
func (n *Node) TextContent() string {
	if n.nodeType == TextNode {
		if n.textData != nil {
			return *n.textData
		}
		return ""
	}
	result := ""
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == TextNode || c.nodeType == ElementNode {
			result += c.TextContent()
		}
	}
	return result
}

// AsElement returns the Element view of this node, or nil if it is not an
// element.
func (n *Node) AsElement() *Element {
	if n == nil || n.nodeType != ElementNode {
		return nil
	}
	return (*Element)(n)
}

// AsDocument returns the Document view of this node, or nil if it is not a
// document.
func (n *Node) AsDocument() *Document {
	if n == nil || n.nodeType != DocumentNode {
		return nil
	}
	return (*Document)(n)
}
