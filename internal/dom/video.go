package dom

import (
	"errors"
	"math"
)

// ErrNotSeekable reports a rejected time write on a video whose pipeline does
// not accept seeking.
var ErrNotSeekable = errors.New("video: not seekable")

// PlaybackState is a snapshot of a video's playback fields. Duration is NaN
// until the media reports one.
type PlaybackState struct {
	CurrentTime  float64 `json:"currentTime"`
	Duration     float64 `json:"duration"`
	Paused       bool    `json:"paused"`
	Volume       float64 `json:"volume"`
	PlaybackRate float64 `json:"playbackRate"`
	Seekable     bool    `json:"seekable"`
}

// PlaybackOpKind names an engine-originated control write.
type PlaybackOpKind string

// Playback op kinds reported to the document's playback sink.
const (
	OpSeek   PlaybackOpKind = "seek"
	OpPlay   PlaybackOpKind = "play"
	OpPause  PlaybackOpKind = "pause"
	OpVolume PlaybackOpKind = "volume"
	OpRate   PlaybackOpKind = "rate"
)

// PlaybackOp is one engine-originated control write, reported to the
// document's playback sink so it can be forwarded to the live page.
type PlaybackOp struct {
	Video *Video
	Op    PlaybackOpKind
	Value float64
}

// Video is an Element carrying playback state. Videos are always created by
// the page mirror or by tests; the enhancement engine only observes them and
// issues control writes through the methods below.
type Video struct {
	Element
	state PlaybackState
}

// CreateVideo returns a detached video element: unknown duration, paused,
// full volume, normal rate, seekable.
func (d *Document) CreateVideo() *Video {
	v := &Video{state: PlaybackState{
		Duration:     math.NaN(),
		Paused:       true,
		Volume:       1,
		PlaybackRate: 1,
		Seekable:     true,
	}}
	initElement(&v.Element, d, "video")
	v.Element.self = v
	return v
}

// State returns a copy of the playback fields.
func (v *Video) State() PlaybackState { return v.state }

// CurrentTime returns the playback clock in seconds.
func (v *Video) CurrentTime() float64 { return v.state.CurrentTime }

// Duration returns the media length in seconds, NaN when unknown.
func (v *Video) Duration() float64 { return v.state.Duration }

// Paused reports whether playback is paused.
func (v *Video) Paused() bool { return v.state.Paused }

// Volume returns the volume in [0, 1].
func (v *Video) Volume() float64 { return v.state.Volume }

// PlaybackRate returns the playback rate multiplier.
func (v *Video) PlaybackRate() float64 { return v.state.PlaybackRate }

// Seekable reports whether the pipeline accepts time writes.
func (v *Video) Seekable() bool { return v.state.Seekable }

// SetSeekable flips the seekable flag. Used by the page mirror and tests.
func (v *Video) SetSeekable(ok bool) { v.state.Seekable = ok }

// SetCurrentTime is an engine write. It fails with ErrNotSeekable when the
// video refuses seeking; otherwise it moves the clock, notifies the playback
// sink, and fires "seeked". Clamping is the caller's job.
func (v *Video) SetCurrentTime(t float64) error {
	if !v.state.Seekable {
		return ErrNotSeekable
	}
	v.state.CurrentTime = t
	v.notify(PlaybackOp{Op: OpSeek, Value: t})
	v.Dispatch(EventSeeked)
	return nil
}

// AdvanceTime moves the clock forward as playback would and fires
// "timeupdate". It does not notify the playback sink.
func (v *Video) AdvanceTime(dt float64) {
	v.state.CurrentTime += dt
	v.Dispatch(EventTimeUpdate)
}

// SetDuration records the known media length and fires "loadedmetadata".
func (v *Video) SetDuration(d float64) {
	v.state.Duration = d
	v.Dispatch(EventLoadedMetadata)
}

// Play clears the paused flag and notifies the playback sink.
func (v *Video) Play() {
	v.state.Paused = false
	v.notify(PlaybackOp{Op: OpPlay})
}

// Pause sets the paused flag and notifies the playback sink.
func (v *Video) Pause() {
	v.state.Paused = true
	v.notify(PlaybackOp{Op: OpPause})
}

// SetVolume sets the volume and notifies the playback sink. Clamping is the
// caller's job.
func (v *Video) SetVolume(vol float64) {
	v.state.Volume = vol
	v.notify(PlaybackOp{Op: OpVolume, Value: vol})
}

// SetPlaybackRate sets the rate multiplier and notifies the playback sink.
func (v *Video) SetPlaybackRate(rate float64) {
	v.state.PlaybackRate = rate
	v.notify(PlaybackOp{Op: OpRate, Value: rate})
}

// ApplyState replaces the playback fields from a page-side report. The
// playback sink is not notified, so mirrored state never echoes back to the
// page; events still fire so renderers resync.
func (v *Video) ApplyState(s PlaybackState) {
	prev := v.state
	v.state = s
	durationChanged := s.Duration != prev.Duration &&
		!(math.IsNaN(s.Duration) && math.IsNaN(prev.Duration))
	if durationChanged {
		v.Dispatch(EventLoadedMetadata)
	}
	if s.CurrentTime != prev.CurrentTime {
		v.Dispatch(EventTimeUpdate)
	}
}

func (v *Video) notify(op PlaybackOp) {
	if v.doc != nil && v.doc.playbackSink != nil {
		op.Video = v
		v.doc.playbackSink(op)
	}
}
