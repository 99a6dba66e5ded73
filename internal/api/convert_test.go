package api_test

import (
	"math"
	"testing"

	"seekbar/internal/api"
	"seekbar/internal/dom"
)

func TestPlaybackStateDurationConvention(t *testing.T) {
	doc := dom.NewDocument()
	video := doc.CreateVideo()

	wire := api.FromPlaybackState(video.State())
	if wire.Duration != 0 {
		t.Fatalf("unknown duration should be 0 on the wire, got %v", wire.Duration)
	}

	restored := api.ToPlaybackState(wire)
	if !math.IsNaN(restored.Duration) {
		t.Fatalf("zero wire duration should restore to NaN, got %v", restored.Duration)
	}

	video.SetDuration(90)
	wire = api.FromPlaybackState(video.State())
	if wire.Duration != 90 {
		t.Fatalf("Duration = %v, want 90", wire.Duration)
	}
	if got := api.ToPlaybackState(wire).Duration; got != 90 {
		t.Fatalf("restored Duration = %v, want 90", got)
	}
}

func TestFromVideo(t *testing.T) {
	doc := dom.NewDocument()
	video := doc.CreateVideo()
	video.SetRect(dom.Rect{X: 5, Y: 6, W: 640, H: 360})
	video.SetDuration(120)
	if err := video.SetCurrentTime(30); err != nil {
		t.Fatalf("SetCurrentTime failed: %v", err)
	}

	summary := api.FromVideo(video, true)
	if summary.ID != video.ID() {
		t.Fatalf("ID = %q, want %q", summary.ID, video.ID())
	}
	if !summary.Enhanced {
		t.Fatal("summary should report enhanced")
	}
	if summary.State.CurrentTime != 30 || summary.State.Duration != 120 {
		t.Fatalf("unexpected state: %+v", summary.State)
	}
	if summary.Rect.W != 640 || summary.Rect.H != 360 {
		t.Fatalf("unexpected rect: %+v", summary.Rect)
	}

	if got := api.FromVideo(nil, false); got.ID != "" {
		t.Fatalf("nil video should yield a zero summary, got %+v", got)
	}
}
