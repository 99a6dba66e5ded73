package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"seekbar/internal/api"
)

// WritePageFixture serializes node specs into a JSON file the CLI page
// commands accept, returning the written path.
func WritePageFixture(t testing.TB, path string, specs []api.NodeSpec) string {
	t.Helper()

	data, err := json.MarshalIndent(specs, "", "  ")
	if err != nil {
		t.Fatalf("marshal page fixture: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// SampleVideo returns one enhanceable video spec with known playback state.
func SampleVideo(id string) api.NodeSpec {
	return api.NodeSpec{
		ID:  id,
		Tag: "video",
		Video: &api.VideoState{
			CurrentTime:  10,
			Duration:     100,
			Paused:       true,
			Volume:       1,
			PlaybackRate: 1,
			Seekable:     true,
		},
		Rect: &api.RectSpec{X: 0, Y: 0, W: 640, H: 360},
	}
}

// SamplePage returns a minimal page fragment: a positioned wrapper holding
// one enhanceable video.
func SamplePage(videoID string) []api.NodeSpec {
	return []api.NodeSpec{{
		ID:       "wrap-" + videoID,
		Tag:      "div",
		Style:    map[string]string{"position": "relative"},
		Children: []api.NodeSpec{SampleVideo(videoID)},
	}}
}
