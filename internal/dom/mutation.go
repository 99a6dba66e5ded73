package dom

import "errors"

// MutationRecord describes one childList change on Target. A record carries
// either added or removed nodes, in the order the operation enumerated them.
type MutationRecord struct {
	Target  Node
	Added   []Node
	Removed []Node
}

// ObserveOptions selects an observer's coverage. Only childList changes are
// produced; the zero value watches the target's direct children.
type ObserveOptions struct {
	// Subtree extends coverage to every descendant of the target.
	Subtree bool
}

// Observer receives batched mutation records when its document flushes.
// Whether a change is queued for an observer is decided when the change
// happens, so records survive the observed node being detached later in the
// same batch.
type Observer struct {
	doc     *Document
	target  *Element
	subtree bool
	fn      func([]MutationRecord)
	pending []MutationRecord
}

// NewObserver returns an observer delivering batches to fn. It watches
// nothing until Observe is called.
func (d *Document) NewObserver(fn func([]MutationRecord)) *Observer {
	return &Observer{doc: d, fn: fn}
}

// Observe starts watching childList changes on target, replacing any previous
// target. A nil target is rejected so callers can degrade when the document
// has no usable root.
func (o *Observer) Observe(target Node, opts ObserveOptions) error {
	if target == nil || target.Elem() == nil {
		return errors.New("observe: nil target")
	}
	o.target = target.Elem()
	o.subtree = opts.Subtree
	for _, reg := range o.doc.observers {
		if reg == o {
			return nil
		}
	}
	o.doc.observers = append(o.doc.observers, o)
	return nil
}

// Disconnect stops delivery and drops any queued records.
func (o *Observer) Disconnect() {
	o.pending = nil
	o.target = nil
	for i, reg := range o.doc.observers {
		if reg == o {
			o.doc.observers = append(o.doc.observers[:i], o.doc.observers[i+1:]...)
			return
		}
	}
}

func (o *Observer) covers(target *Element) bool {
	if o.target == nil {
		return false
	}
	if o.target == target {
		return true
	}
	return o.subtree && o.target.Contains(target.self)
}

func (d *Document) queueMutation(target Node, added, removed []Node) {
	te := target.Elem()
	for _, o := range d.observers {
		if o.covers(te) {
			o.pending = append(o.pending, MutationRecord{Target: target, Added: added, Removed: removed})
		}
	}
}

// Flush delivers queued mutation batches to their observers in queue order.
// Callbacks run synchronously; changes they make queue further records, which
// are delivered before Flush returns.
func (d *Document) Flush() {
	for {
		delivered := false
		observers := make([]*Observer, len(d.observers))
		copy(observers, d.observers)
		for _, o := range observers {
			if len(o.pending) == 0 {
				continue
			}
			batch := o.pending
			o.pending = nil
			delivered = true
			o.fn(batch)
		}
		if !delivered {
			return
		}
	}
}
