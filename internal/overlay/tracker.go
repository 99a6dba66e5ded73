package overlay

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"seekbar/internal/dom"
	"seekbar/internal/logging"
	"seekbar/internal/metrics"
)

// Tracker owns all enhancement state: which videos carry a control and how to
// tear each one down. Videos are correlated by a generated id stamped on
// their dataset; the id-keyed maps never hold the nodes themselves, so a
// video the page discards is not kept alive by tracking.
type Tracker struct {
	doc      *dom.Document
	log      *slog.Logger
	enhanced map[string]struct{}
	teardown map[string]func()
}

// NewTracker returns a tracker for doc. A nil logger falls back to no-op.
func NewTracker(doc *dom.Document, logger *slog.Logger) *Tracker {
	return &Tracker{
		doc:      doc,
		log:      logging.NewComponentLogger(logger, "tracker"),
		enhanced: make(map[string]struct{}),
		teardown: make(map[string]func()),
	}
}

// Attach enhances a video with an overlay seek control. It reports false
// without touching anything when the node is not a genuine video, is already
// enhanced, or offers no anchor to mount the control under. A container left
// behind by an earlier incarnation is adopted instead of duplicated.
func (t *Tracker) Attach(n dom.Node) bool {
	video, ok := n.(*dom.Video)
	if !ok || video == nil {
		return false
	}

	id := video.Dataset(DatasetVideoKey)
	if id != "" {
		if _, done := t.enhanced[id]; done {
			return false
		}
	}

	anchor := Anchor(video)
	if anchor == nil {
		t.log.Debug("no anchor for video", logging.String(logging.FieldVideoID, id))
		return false
	}

	if id == "" {
		id = uuid.NewString()
	}
	video.SetDataset(DatasetVideoKey, id)

	if existing := findContainer(anchor, id); existing != nil {
		t.enhanced[id] = struct{}{}
		t.teardown[id] = existing.Remove
		metrics.AttachTotal.Inc()
		metrics.EnhancedVideos.Set(float64(len(t.enhanced)))
		t.log.Info("adopted existing overlay", logging.String(logging.FieldVideoID, id))
		return true
	}

	container, control, unbind := buildOverlay(t.doc, video, id)
	anchor.AppendChild(container)
	SyncProgress(video, control)

	t.enhanced[id] = struct{}{}
	t.teardown[id] = func() {
		unbind()
		container.Remove()
	}
	metrics.AttachTotal.Inc()
	metrics.EnhancedVideos.Set(float64(len(t.enhanced)))
	t.log.Info("video enhanced", logging.String(logging.FieldVideoID, id))
	return true
}

// Detach tears down a video's enhancement: listeners unbound, container
// removed, tracking cleared. Safe to call at any time; repeated calls and
// calls for untracked videos report false and do nothing.
func (t *Tracker) Detach(n dom.Node) bool {
	video, ok := n.(*dom.Video)
	if !ok || video == nil {
		return false
	}
	id := video.Dataset(DatasetVideoKey)
	if id == "" {
		return false
	}
	if _, member := t.enhanced[id]; !member {
		return false
	}
	t.remove(id)
	return true
}

func (t *Tracker) remove(id string) {
	td := t.teardown[id]
	delete(t.teardown, id)
	delete(t.enhanced, id)
	if td != nil {
		td()
	}
	metrics.DetachTotal.Inc()
	metrics.EnhancedVideos.Set(float64(len(t.enhanced)))
	t.log.Info("video released", logging.String(logging.FieldVideoID, id))
}

// EnhanceAll sweeps the whole document and enhances every video found.
// Faults on one video are logged and do not stop the sweep. Returns the
// number of videos newly enhanced.
func (t *Tracker) EnhanceAll() int {
	attached := 0
	for _, video := range t.doc.Videos() {
		if t.safeAttach(video) {
			attached++
		}
	}
	return attached
}

func (t *Tracker) safeAttach(video *dom.Video) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			metrics.AttachErrorsTotal.Inc()
			t.log.Warn("video enhancement failed",
				logging.String(logging.FieldEventType, "video_enhance_failed"),
				logging.String(logging.FieldErrorHint, fmt.Sprint(r)),
				logging.String(logging.FieldImpact, "video left unenhanced"),
			)
		}
	}()
	return t.Attach(video)
}

// DetachAll tears down every tracked enhancement, including those whose
// videos have already left the document. Returns the number torn down.
func (t *Tracker) DetachAll() int {
	ids := make([]string, 0, len(t.enhanced))
	for id := range t.enhanced {
		ids = append(ids, id)
	}
	for _, id := range ids {
		t.safeRemove(id)
	}
	return len(ids)
}

func (t *Tracker) safeRemove(id string) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Warn("overlay teardown failed",
				logging.String(logging.FieldEventType, "overlay_teardown_failed"),
				logging.String(logging.FieldVideoID, id),
				logging.String(logging.FieldErrorHint, fmt.Sprint(r)),
				logging.String(logging.FieldImpact, "container may remain in the page"),
			)
		}
	}()
	t.remove(id)
}

// Count returns the number of currently enhanced videos.
func (t *Tracker) Count() int { return len(t.enhanced) }

// IsEnhanced reports whether the video currently carries a control.
func (t *Tracker) IsEnhanced(video *dom.Video) bool {
	if video == nil {
		return false
	}
	id := video.Dataset(DatasetVideoKey)
	if id == "" {
		return false
	}
	_, ok := t.enhanced[id]
	return ok
}

func findContainer(anchor *dom.Element, id string) *dom.Element {
	for _, child := range anchor.Children() {
		if el := child.Elem(); el.Dataset(DatasetContainerKey) == id {
			return el
		}
	}
	return nil
}
