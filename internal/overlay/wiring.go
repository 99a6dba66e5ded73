package overlay

import (
	"strconv"

	"seekbar/internal/dom"
)

// Dataset keys correlating enhanced videos with their overlay containers.
const (
	// DatasetVideoKey marks an enhanced video with its correlation id.
	DatasetVideoKey = "seekbarId"
	// DatasetContainerKey marks an overlay container with the correlation id
	// of the video it serves.
	DatasetContainerKey = "seekbarFor"
)

type binding struct {
	el *dom.Element
	l  *dom.Listener
}

// buildOverlay creates the container and scrub control for a video and wires
// their behavior: playback events resync the control, control input seeks the
// video, and capture-phase click/pointerdown interception keeps host page
// handlers (click-to-pause and friends) from reacting to control use. The
// returned unbind releases every listener registered here; removing the
// container from the tree is the caller's job.
func buildOverlay(doc *dom.Document, video *dom.Video, id string) (container, control *dom.Element, unbind func()) {
	container = doc.CreateElement("div")
	container.SetDataset(DatasetContainerKey, id)
	container.SetStyle("position", "absolute")

	control = doc.CreateElement("input")
	control.SetAttr("type", "range")
	control.SetAttr("min", "0")
	control.SetAttr("value", "0")
	container.AppendChild(control)

	var bindings []binding
	listen := func(el *dom.Element, typ string, fn dom.Handler, capture bool) {
		bindings = append(bindings, binding{el, el.AddEventListener(typ, fn, capture)})
	}

	sync := func(*dom.Event) { SyncProgress(video, control) }
	listen(video.Elem(), dom.EventTimeUpdate, sync, false)
	listen(video.Elem(), dom.EventSeeked, sync, false)
	listen(video.Elem(), dom.EventLoadedMetadata, sync, false)

	listen(control, dom.EventInput, func(*dom.Event) {
		target, err := strconv.ParseFloat(control.Attr("value"), 64)
		if err != nil {
			return
		}
		// An unseekable pipeline rejects the write; the control snaps back
		// on the next timeupdate.
		_ = video.SetCurrentTime(target)
		SyncProgress(video, control)
	}, false)

	swallow := func(ev *dom.Event) { ev.StopPropagation() }
	for _, el := range []*dom.Element{container, control} {
		listen(el, dom.EventClick, swallow, true)
		listen(el, dom.EventPointerDown, swallow, true)
	}

	unbind = func() {
		for _, b := range bindings {
			b.el.RemoveEventListener(b.l)
		}
	}
	return container, control, unbind
}
