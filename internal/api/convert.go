package api

import (
	"math"

	"seekbar/internal/dom"
)

// FromPlaybackState converts dom playback state to its wire form. An unknown
// (NaN) duration becomes 0.
func FromPlaybackState(state dom.PlaybackState) VideoState {
	duration := state.Duration
	if math.IsNaN(duration) {
		duration = 0
	}
	return VideoState{
		CurrentTime:  state.CurrentTime,
		Duration:     duration,
		Paused:       state.Paused,
		Volume:       state.Volume,
		PlaybackRate: state.PlaybackRate,
		Seekable:     state.Seekable,
	}
}

// ToPlaybackState converts a wire video state back to the dom form. A zero
// or negative duration is treated as unknown.
func ToPlaybackState(state VideoState) dom.PlaybackState {
	duration := state.Duration
	if duration <= 0 {
		duration = math.NaN()
	}
	return dom.PlaybackState{
		CurrentTime:  state.CurrentTime,
		Duration:     duration,
		Paused:       state.Paused,
		Volume:       state.Volume,
		PlaybackRate: state.PlaybackRate,
		Seekable:     state.Seekable,
	}
}

// FromRect converts a dom rect to its wire form.
func FromRect(r dom.Rect) RectSpec {
	return RectSpec{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// ToRect converts a wire rect to the dom form.
func ToRect(r RectSpec) dom.Rect {
	return dom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// FromVideo converts a video to its API representation.
func FromVideo(video *dom.Video, enhanced bool) VideoSummary {
	if video == nil {
		return VideoSummary{}
	}
	return VideoSummary{
		ID:       video.ID(),
		Enhanced: enhanced,
		State:    FromPlaybackState(video.State()),
		Rect:     FromRect(video.Rect()),
	}
}
