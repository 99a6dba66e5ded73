package overlay_test

import (
	"testing"

	"seekbar/internal/dom"
	"seekbar/internal/overlay"
)

func TestAnchorPrefersOffsetParent(t *testing.T) {
	doc := dom.NewDocument()
	wrapper := doc.CreateElement("div")
	wrapper.SetStyle("position", "relative")
	doc.Body().AppendChild(wrapper)
	video := doc.CreateVideo()
	wrapper.AppendChild(video)

	if got := overlay.Anchor(video); got != wrapper {
		t.Fatalf("Anchor = %v, want the positioned wrapper", got)
	}
}

func TestAnchorWalksPositionedAncestors(t *testing.T) {
	doc := dom.NewDocument()
	wrapper := doc.CreateElement("div")
	wrapper.SetStyle("position", "relative")
	doc.Body().AppendChild(wrapper)
	inner := doc.CreateElement("div")
	wrapper.AppendChild(inner)
	video := doc.CreateVideo()
	// Fixed positioning defeats offsetParent; the explicit walk still
	// finds the positioned wrapper.
	video.SetStyle("position", "fixed")
	inner.AppendChild(video)

	if video.OffsetParent() != nil {
		t.Fatal("fixed element should have no offset parent")
	}
	if got := overlay.Anchor(video); got != wrapper {
		t.Fatalf("Anchor = %v, want the positioned wrapper", got)
	}
}

func TestAnchorFallsBackToParent(t *testing.T) {
	doc := dom.NewDocument()
	wrapper := doc.CreateElement("div")
	doc.Body().AppendChild(wrapper)
	video := doc.CreateVideo()
	video.SetStyle("position", "fixed")
	wrapper.AppendChild(video)

	if got := overlay.Anchor(video); got != wrapper {
		t.Fatalf("Anchor = %v, want the immediate parent", got)
	}
}

func TestAnchorBodyForDetachedVideo(t *testing.T) {
	doc := dom.NewDocument()
	video := doc.CreateVideo()

	if got := overlay.Anchor(video); got != doc.Body() {
		t.Fatalf("Anchor = %v, want the document body", got)
	}
}

func TestAnchorNilInRestrictedDocument(t *testing.T) {
	doc := &dom.Document{}
	video := doc.CreateVideo()

	if got := overlay.Anchor(video); got != nil {
		t.Fatalf("Anchor = %v, want nil without a body", got)
	}
}
