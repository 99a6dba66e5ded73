package overlay

import (
	"fmt"
	"log/slog"

	"seekbar/internal/dom"
	"seekbar/internal/logging"
	"seekbar/internal/metrics"
)

// Attacher is the enhancement surface the watcher drives as nodes come and
// go. *Tracker satisfies it.
type Attacher interface {
	Attach(dom.Node) bool
	Detach(dom.Node) bool
}

// Watcher follows childList mutations under the document body, enhancing
// videos as views swap them in and releasing them as they leave.
type Watcher struct {
	doc      *dom.Document
	attacher Attacher
	log      *slog.Logger
	obs      *dom.Observer
	degraded bool
}

// NewWatcher returns a stopped watcher. A nil logger falls back to no-op.
func NewWatcher(doc *dom.Document, attacher Attacher, logger *slog.Logger) *Watcher {
	return &Watcher{
		doc:      doc,
		attacher: attacher,
		log:      logging.NewComponentLogger(logger, "watcher"),
	}
}

// Start begins observing the document body subtree. A document without a
// usable body leaves the watcher degraded instead of failing: existing
// enhancements keep working, later arrivals just go unnoticed.
func (w *Watcher) Start() error {
	if w.obs != nil {
		return nil
	}
	obs := w.doc.NewObserver(w.handle)
	if err := obs.Observe(w.doc.Body(), dom.ObserveOptions{Subtree: true}); err != nil {
		w.degraded = true
		w.log.Warn("mutation observation unavailable",
			logging.String(logging.FieldEventType, "watcher_degraded"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "document has no observable body"),
			logging.String(logging.FieldImpact, "videos added after load will not be enhanced"),
		)
		return nil // Non-fatal: restricted documents cannot be observed.
	}
	w.obs = obs
	w.degraded = false
	return nil
}

// Stop disconnects the observer; undelivered records are dropped.
func (w *Watcher) Stop() {
	if w.obs != nil {
		w.obs.Disconnect()
		w.obs = nil
	}
}

// Running reports whether the watcher is actively observing.
func (w *Watcher) Running() bool { return w.obs != nil }

// Degraded reports whether the last Start fell back to doing nothing.
func (w *Watcher) Degraded() bool { return w.degraded }

func (w *Watcher) handle(records []dom.MutationRecord) {
	for _, rec := range records {
		for _, n := range rec.Added {
			for _, video := range dom.VideosUnder(n) {
				w.apply(w.attacher.Attach, video, "attach")
			}
		}
		for _, n := range rec.Removed {
			for _, video := range dom.VideosUnder(n) {
				w.apply(w.attacher.Detach, video, "detach")
			}
		}
	}
}

// apply isolates one node: a panic while handling it is logged and the rest
// of the batch continues.
func (w *Watcher) apply(fn func(dom.Node) bool, video *dom.Video, action string) {
	defer func() {
		if r := recover(); r != nil {
			if action == "attach" {
				metrics.AttachErrorsTotal.Inc()
			}
			w.log.Warn("mutation handling failed",
				logging.String(logging.FieldEventType, "mutation_apply_failed"),
				logging.String("action", action),
				logging.String(logging.FieldErrorHint, fmt.Sprint(r)),
				logging.String(logging.FieldImpact, "one video skipped; others continue"),
			)
		}
	}()
	metrics.MutationNodesTotal.WithLabelValues(action).Inc()
	fn(video)
}
