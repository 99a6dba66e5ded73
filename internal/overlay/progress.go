package overlay

import (
	"fmt"
	"strconv"

	"seekbar/internal/dom"
)

const (
	progressFillColor  = "#e53935"
	progressTrackColor = "rgba(255,255,255,0.35)"
)

// SyncProgress paints the control to match the video: the background gradient
// reflects the played fraction, the control max follows the known duration,
// and the thumb value follows the clock unless the user is mid-interaction
// with the control. Nil inputs are ignored.
func SyncProgress(video *dom.Video, control *dom.Element) {
	if video == nil || control == nil {
		return
	}

	// A NaN or non-positive duration renders as 0% played.
	fraction := 0.0
	if duration := video.Duration(); duration > 0 {
		fraction = video.CurrentTime() / duration
		if fraction < 0 {
			fraction = 0
		}
		if fraction > 1 {
			fraction = 1
		}
		control.SetAttr("max", formatFloat(duration))
	}

	pct := formatFloat(fraction * 100)
	control.SetStyle("background", fmt.Sprintf(
		"linear-gradient(to right, %s %s%%, %s %s%%)",
		progressFillColor, pct, progressTrackColor, pct,
	))

	doc := control.Document()
	if doc == nil || !doc.IsActive(control) {
		control.SetAttr("value", formatFloat(video.CurrentTime()))
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
