package dom

import "github.com/google/uuid"

// Node is a handle on a document tree participant. Concrete nodes are
// *Element and *Video; code that cares about playback state type-asserts to
// *Video instead of inspecting tag names.
type Node interface {
	// Elem returns the element view of the node.
	Elem() *Element
}

// Element is a mutable document node: tag, identity, attributes, dataset,
// inline style, layout rectangle, child links, and event listeners.
type Element struct {
	doc       *Document
	self      Node
	id        string
	tag       string
	parent    *Element
	children  []Node
	attrs     map[string]string
	dataset   map[string]string
	style     map[string]string
	rect      Rect
	listeners []*Listener
}

func initElement(e *Element, doc *Document, tag string) {
	e.doc = doc
	e.id = uuid.NewString()
	e.tag = tag
	e.attrs = make(map[string]string)
	e.dataset = make(map[string]string)
	e.style = make(map[string]string)
}

// Elem returns the element itself, satisfying Node.
func (e *Element) Elem() *Element { return e }

// ID returns the node's intrinsic identifier. Bridge-mirrored nodes carry the
// page-assigned id; engine-created nodes get a generated one.
func (e *Element) ID() string { return e.id }

// SetID overrides the generated identifier. The bridge uses this to keep
// mirrored nodes addressable by their page-side ids.
func (e *Element) SetID(id string) { e.id = id }

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Parent returns the parent element, or nil for detached nodes.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child nodes in insertion order. The slice is a copy;
// mutating it does not change the tree.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// AppendChild attaches child as the element's last child, detaching it from
// any previous parent first. Both the removal and the insertion are recorded
// for mutation observers. Appending a node under its own descendant is
// ignored.
func (e *Element) AppendChild(child Node) {
	if child == nil || child.Elem() == nil {
		return
	}
	ce := child.Elem()
	if ce == e || ce.Contains(e.self) {
		return
	}
	if ce.parent != nil {
		ce.parent.RemoveChild(child)
	}
	ce.parent = e
	e.children = append(e.children, child)
	if e.doc != nil {
		e.doc.queueMutation(e.self, []Node{child}, nil)
	}
}

// RemoveChild detaches child from the element. Nodes that are not currently
// children are ignored.
func (e *Element) RemoveChild(child Node) {
	if child == nil || child.Elem() == nil {
		return
	}
	ce := child.Elem()
	if ce.parent != e {
		return
	}
	for i, n := range e.children {
		if n.Elem() == ce {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
	ce.parent = nil
	if e.doc != nil {
		e.doc.queueMutation(e.self, nil, []Node{child})
	}
}

// Remove detaches the element from its parent, if it has one.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.RemoveChild(e.self)
	}
}

// Contains reports whether n is the element itself or one of its
// descendants.
func (e *Element) Contains(n Node) bool {
	if n == nil || n.Elem() == nil {
		return false
	}
	for p := n.Elem(); p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// OffsetParent mirrors layout containment: nil for detached or
// fixed-position elements, otherwise the nearest ancestor below the document
// body whose computed position is not static.
func (e *Element) OffsetParent() *Element {
	if e.parent == nil || e.style["position"] == "fixed" {
		return nil
	}
	var body *Element
	if e.doc != nil {
		body = e.doc.body
	}
	for p := e.parent; p != nil && p != body; p = p.parent {
		if pos := p.style["position"]; pos != "" && pos != "static" {
			return p
		}
	}
	return nil
}

// Attr returns the named attribute, or "" when unset.
func (e *Element) Attr(name string) string { return e.attrs[name] }

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) { e.attrs[name] = value }

// Dataset returns the named dataset entry, or "" when unset.
func (e *Element) Dataset(key string) string { return e.dataset[key] }

// SetDataset sets the named dataset entry.
func (e *Element) SetDataset(key, value string) { e.dataset[key] = value }

// Style returns the named inline style property, or "" when unset.
func (e *Element) Style(prop string) string { return e.style[prop] }

// SetStyle sets the named inline style property.
func (e *Element) SetStyle(prop, value string) { e.style[prop] = value }

// Rect returns the element's layout rectangle.
func (e *Element) Rect() Rect { return e.rect }

// SetRect sets the element's layout rectangle.
func (e *Element) SetRect(r Rect) { e.rect = r }
