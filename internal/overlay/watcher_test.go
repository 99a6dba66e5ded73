package overlay_test

import (
	"testing"

	"seekbar/internal/dom"
	"seekbar/internal/logging"
	"seekbar/internal/overlay"
)

type countingAttacher struct {
	attaches int
	detaches int
}

func (c *countingAttacher) Attach(dom.Node) bool { c.attaches++; return true }
func (c *countingAttacher) Detach(dom.Node) bool { c.detaches++; return true }

// faultyAttacher panics on its first attach, then delegates. It stands in for
// a video whose wiring blows up mid-batch.
type faultyAttacher struct {
	inner *overlay.Tracker
	calls int
}

func (f *faultyAttacher) Attach(n dom.Node) bool {
	f.calls++
	if f.calls == 1 {
		panic("wiring exploded")
	}
	return f.inner.Attach(n)
}

func (f *faultyAttacher) Detach(n dom.Node) bool { return f.inner.Detach(n) }

func TestWatcherAttachesInsertedVideos(t *testing.T) {
	doc := dom.NewDocument()
	tracker := overlay.NewTracker(doc, logging.NewNop())
	watcher := overlay.NewWatcher(doc, tracker, logging.NewNop())
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !watcher.Running() {
		t.Fatal("watcher should be running")
	}

	// One video arrives directly, one nested inside a late wrapper.
	direct := doc.CreateVideo()
	doc.Body().AppendChild(direct)
	wrapper := doc.CreateElement("div")
	nested := doc.CreateVideo()
	wrapper.AppendChild(nested)
	doc.Body().AppendChild(wrapper)
	doc.Flush()

	if !tracker.IsEnhanced(direct) {
		t.Fatal("directly inserted video was not enhanced")
	}
	if !tracker.IsEnhanced(nested) {
		t.Fatal("nested video was not enhanced")
	}
}

func TestWatcherDetachesRemovedVideos(t *testing.T) {
	doc := dom.NewDocument()
	tracker := overlay.NewTracker(doc, logging.NewNop())
	watcher := overlay.NewWatcher(doc, tracker, logging.NewNop())
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	wrapper := doc.CreateElement("div")
	video := doc.CreateVideo()
	wrapper.AppendChild(video)
	doc.Body().AppendChild(wrapper)
	doc.Flush()
	if tracker.Count() != 1 {
		t.Fatalf("Count = %d, want 1 after insertion", tracker.Count())
	}

	wrapper.Remove()
	doc.Flush()
	if tracker.Count() != 0 {
		t.Fatalf("Count = %d, want 0 after removal", tracker.Count())
	}
	if tracker.IsEnhanced(video) {
		t.Fatal("removed video should be released")
	}
}

func TestWatcherIsolatesFaultyVideo(t *testing.T) {
	doc := dom.NewDocument()
	tracker := overlay.NewTracker(doc, logging.NewNop())
	faulty := &faultyAttacher{inner: tracker}
	watcher := overlay.NewWatcher(doc, faulty, logging.NewNop())
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	first := doc.CreateVideo()
	second := doc.CreateVideo()
	doc.Body().AppendChild(first)
	doc.Body().AppendChild(second)
	doc.Flush()

	if faulty.calls != 2 {
		t.Fatalf("attach calls = %d, want both videos visited", faulty.calls)
	}
	if tracker.IsEnhanced(first) {
		t.Fatal("the faulty video should be skipped")
	}
	if !tracker.IsEnhanced(second) {
		t.Fatal("the second video should still be enhanced")
	}
}

func TestWatcherDegradesWithoutBody(t *testing.T) {
	doc := &dom.Document{}
	watcher := overlay.NewWatcher(doc, &countingAttacher{}, logging.NewNop())

	if err := watcher.Start(); err != nil {
		t.Fatalf("Start should degrade, not fail: %v", err)
	}
	if !watcher.Degraded() {
		t.Fatal("watcher should report degraded")
	}
	if watcher.Running() {
		t.Fatal("degraded watcher should not report running")
	}
}

func TestWatcherStopHaltsDelivery(t *testing.T) {
	doc := dom.NewDocument()
	attacher := &countingAttacher{}
	watcher := overlay.NewWatcher(doc, attacher, logging.NewNop())
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	watcher.Stop()
	if watcher.Running() {
		t.Fatal("watcher should be stopped")
	}

	doc.Body().AppendChild(doc.CreateVideo())
	doc.Flush()
	if attacher.attaches != 0 {
		t.Fatalf("attaches = %d, want 0 after Stop", attacher.attaches)
	}
}

func TestWatcherStartIsIdempotent(t *testing.T) {
	doc := dom.NewDocument()
	attacher := &countingAttacher{}
	watcher := overlay.NewWatcher(doc, attacher, logging.NewNop())
	if err := watcher.Start(); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if err := watcher.Start(); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	doc.Body().AppendChild(doc.CreateVideo())
	doc.Flush()
	if attacher.attaches != 1 {
		t.Fatalf("attaches = %d, want exactly 1", attacher.attaches)
	}
}
