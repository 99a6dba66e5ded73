package overlay

import "seekbar/internal/dom"

// minActiveDimension is the strict lower bound on width and height for a
// video to count as a primary player rather than a thumbnail or preview.
const minActiveDimension = 100

// ActiveVideo picks the video a command should target. With a single
// candidate there is nothing to rank and it wins outright. With several, the
// first one in document order that is near the viewport and bigger than a
// thumbnail wins; when none qualifies, the largest video on the page does.
// Returns nil only when the document has no videos at all.
func ActiveVideo(doc *dom.Document) *dom.Video {
	videos := doc.Videos()
	if len(videos) == 0 {
		return nil
	}
	if len(videos) == 1 {
		return videos[0]
	}

	vp := doc.Viewport()
	for _, v := range videos {
		r := v.Rect()
		if nearViewport(r, vp) && r.W > minActiveDimension && r.H > minActiveDimension {
			return v
		}
	}

	largest := videos[0]
	for _, v := range videos[1:] {
		if v.Rect().Area() > largest.Rect().Area() {
			largest = v
		}
	}
	return largest
}

// nearViewport tests the rect against the viewport expanded by the rect's
// own width and height on every side. The one-box-size margin keeps players
// that are mid-transition or partially scrolled out selectable.
func nearViewport(r, vp dom.Rect) bool {
	return r.X > -r.W && r.X < vp.W+r.W && r.Y > -r.H && r.Y < vp.H+r.H
}
