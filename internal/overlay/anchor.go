package overlay

import "seekbar/internal/dom"

// Anchor resolves the element an overlay container should be inserted under:
// the video's offset parent, else the nearest positioned ancestor below the
// body, else the video's immediate parent, else the document body. A nil
// result means the document offers nowhere to mount a control.
func Anchor(video *dom.Video) *dom.Element {
	if video == nil {
		return nil
	}
	if op := video.OffsetParent(); op != nil {
		return op
	}

	var body *dom.Element
	if doc := video.Document(); doc != nil {
		body = doc.Body()
	}
	for p := video.Parent(); p != nil && p != body; p = p.Parent() {
		if pos := p.Style("position"); pos != "" && pos != "static" {
			return p
		}
	}

	if parent := video.Parent(); parent != nil {
		return parent
	}
	return body
}
