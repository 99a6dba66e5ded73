package dom

// Rect is an axis-aligned layout rectangle in page units.
type Rect struct {
	X, Y, W, H float64
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.W * r.H }

// Document models the single embedding page: one body, one viewport, one
// focus target. The zero value has no body and represents a restricted
// context; NewDocument returns a usable one.
type Document struct {
	body         *Element
	viewport     Rect
	active       *Element
	observers    []*Observer
	playbackSink func(PlaybackOp)
}

// NewDocument returns a document with an empty body and a default viewport.
func NewDocument() *Document {
	d := &Document{viewport: Rect{W: 1280, H: 720}}
	d.body = d.CreateElement("body")
	return d
}

// CreateElement returns a detached element with a generated id. Elements
// created this way are plain nodes even when the tag is "video"; use
// CreateVideo for nodes that carry playback state.
func (d *Document) CreateElement(tag string) *Element {
	e := &Element{}
	initElement(e, d, tag)
	e.self = e
	return e
}

// Body returns the document root, or nil in a restricted context.
func (d *Document) Body() *Element { return d.body }

// Viewport returns the visual viewport rectangle.
func (d *Document) Viewport() Rect { return d.viewport }

// SetViewport records the visual viewport rectangle.
func (d *Document) SetViewport(r Rect) { d.viewport = r }

// SetActiveElement records the focus target; nil clears it.
func (d *Document) SetActiveElement(e *Element) { d.active = e }

// ActiveElement returns the focus target, or nil.
func (d *Document) ActiveElement() *Element { return d.active }

// IsActive reports whether e currently holds focus.
func (d *Document) IsActive(e *Element) bool { return e != nil && d.active == e }

// SetPlaybackSink registers the consumer of engine-originated playback
// writes. A nil sink drops them.
func (d *Document) SetPlaybackSink(fn func(PlaybackOp)) { d.playbackSink = fn }

// ByID finds a connected node by intrinsic id. Detached nodes are not found.
func (d *Document) ByID(id string) Node {
	if d.body == nil || id == "" {
		return nil
	}
	return findByID(d.body, id)
}

func findByID(n Node, id string) Node {
	e := n.Elem()
	if e.id == id {
		return n
	}
	for _, c := range e.children {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Videos returns every connected video in document order.
func (d *Document) Videos() []*Video {
	if d.body == nil {
		return nil
	}
	return VideosUnder(d.body)
}

// VideosUnder collects the videos in the subtree rooted at n, including n
// itself, in document order.
func VideosUnder(n Node) []*Video {
	if n == nil || n.Elem() == nil {
		return nil
	}
	var out []*Video
	walk(n, func(node Node) {
		if v, ok := node.(*Video); ok {
			out = append(out, v)
		}
	})
	return out
}

func walk(n Node, visit func(Node)) {
	visit(n)
	for _, c := range n.Elem().children {
		walk(c, visit)
	}
}
