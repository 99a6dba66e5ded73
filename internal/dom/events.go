package dom

// Event types dispatched by the document model.
const (
	EventTimeUpdate     = "timeupdate"
	EventSeeked         = "seeked"
	EventLoadedMetadata = "loadedmetadata"
	EventInput          = "input"
	EventClick          = "click"
	EventPointerDown    = "pointerdown"
)

// Handler consumes a dispatched event.
type Handler func(*Event)

// Event is a synchronous propagating event. There are no default actions and
// no async queue; dispatch runs to completion before returning.
type Event struct {
	Type    string
	Target  Node
	stopped bool
}

// StopPropagation halts delivery to nodes later in the propagation path.
// Listeners already reached on the current node still run.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Listener is the registration handle returned by AddEventListener. Pass it
// back to RemoveEventListener to unbind.
type Listener struct {
	typ     string
	capture bool
	fn      Handler
}

// AddEventListener registers fn for events of the given type. Capture
// listeners run while the event descends toward its target; the rest run at
// the target and while it bubbles back up.
func (e *Element) AddEventListener(typ string, fn Handler, capture bool) *Listener {
	l := &Listener{typ: typ, capture: capture, fn: fn}
	e.listeners = append(e.listeners, l)
	return l
}

// RemoveEventListener unbinds a previously registered listener. Unknown,
// already removed, or nil handles are ignored.
func (e *Element) RemoveEventListener(l *Listener) {
	if l == nil {
		return
	}
	for i, cur := range e.listeners {
		if cur == l {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers an event of the given type through the capture, target,
// bubble sequence rooted at the element's ancestor chain.
func (e *Element) Dispatch(typ string) {
	ev := &Event{Type: typ, Target: e.self}

	var path []*Element
	for p := e.parent; p != nil; p = p.parent {
		path = append(path, p)
	}

	for i := len(path) - 1; i >= 0; i-- {
		path[i].invoke(ev, phaseCapture)
		if ev.stopped {
			return
		}
	}
	e.invoke(ev, phaseTarget)
	if ev.stopped {
		return
	}
	for _, p := range path {
		p.invoke(ev, phaseBubble)
		if ev.stopped {
			return
		}
	}
}

type phase int

const (
	phaseCapture phase = iota
	phaseTarget
	phaseBubble
)

func (e *Element) invoke(ev *Event, ph phase) {
	// Snapshot so handlers can unbind listeners mid-dispatch.
	snapshot := make([]*Listener, len(e.listeners))
	copy(snapshot, e.listeners)
	for _, l := range snapshot {
		if l.typ != ev.Type {
			continue
		}
		switch ph {
		case phaseCapture:
			if !l.capture {
				continue
			}
		case phaseBubble:
			if l.capture {
				continue
			}
		}
		l.fn(ev)
	}
}
