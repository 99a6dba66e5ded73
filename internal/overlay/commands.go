package overlay

import (
	"log/slog"

	"seekbar/internal/dom"
	"seekbar/internal/logging"
	"seekbar/internal/metrics"
)

// Command tokens accepted by Execute.
const (
	CmdPlayPause    = "play-pause"
	CmdSeekForward  = "seek-forward"
	CmdSeekBackward = "seek-backward"
	CmdVolumeUp     = "volume-up"
	CmdVolumeDown   = "volume-down"
	CmdSpeedUp      = "speed-up"
	CmdSpeedDown    = "speed-down"
	CmdSpeedReset   = "speed-reset"
)

// Commands lists every accepted command token in a stable order.
func Commands() []string {
	return []string{
		CmdPlayPause,
		CmdSeekForward,
		CmdSeekBackward,
		CmdVolumeUp,
		CmdVolumeDown,
		CmdSpeedUp,
		CmdSpeedDown,
		CmdSpeedReset,
	}
}

// speedLadder is the fixed set of selectable playback rates.
var speedLadder = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}

const rateEpsilon = 1e-9

// DispatcherOptions tunes command behavior. Zero or negative values fall
// back to the defaults: 5 second seeks and 0.1 volume steps.
type DispatcherOptions struct {
	SeekStep   float64
	VolumeStep float64
}

// Dispatcher executes playback commands against the document's current
// active video. Every operation reports false and leaves all state untouched
// when no video qualifies as active.
type Dispatcher struct {
	doc        *dom.Document
	log        *slog.Logger
	seekStep   float64
	volumeStep float64
}

// NewDispatcher returns a dispatcher for doc. A nil logger falls back to
// no-op.
func NewDispatcher(doc *dom.Document, logger *slog.Logger, opts DispatcherOptions) *Dispatcher {
	if opts.SeekStep <= 0 {
		opts.SeekStep = 5
	}
	if opts.VolumeStep <= 0 {
		opts.VolumeStep = 0.1
	}
	return &Dispatcher{
		doc:        doc,
		log:        logging.NewComponentLogger(logger, "dispatcher"),
		seekStep:   opts.SeekStep,
		volumeStep: opts.VolumeStep,
	}
}

// TogglePlayback plays a paused video and pauses a playing one.
func (d *Dispatcher) TogglePlayback() bool {
	v := ActiveVideo(d.doc)
	if v == nil {
		return false
	}
	if v.Paused() {
		v.Play()
	} else {
		v.Pause()
	}
	return true
}

// SeekBy moves the clock by delta seconds, clamped to the known media range.
// A video that refuses seeking keeps its clock; the command still counts as
// handled because it found its target.
func (d *Dispatcher) SeekBy(delta float64) bool {
	v := ActiveVideo(d.doc)
	if v == nil {
		return false
	}
	target := v.CurrentTime() + delta
	if target < 0 {
		target = 0
	}
	// An unknown (NaN) duration leaves the upper bound open.
	if duration := v.Duration(); duration > 0 && target > duration {
		target = duration
	}
	if err := v.SetCurrentTime(target); err != nil {
		d.log.Debug("seek rejected",
			logging.String(logging.FieldVideoID, v.Dataset(DatasetVideoKey)),
			logging.Error(err),
		)
	}
	return true
}

// AdjustVolume shifts the volume by delta, clamped to [0, 1].
func (d *Dispatcher) AdjustVolume(delta float64) bool {
	v := ActiveVideo(d.doc)
	if v == nil {
		return false
	}
	vol := v.Volume() + delta
	if vol < 0 {
		vol = 0
	}
	if vol > 1 {
		vol = 1
	}
	v.SetVolume(vol)
	return true
}

// CycleSpeed steps the playback rate to the next ladder entry above or below
// the current rate. Rates at the ladder's end stay put; there is no
// wraparound.
func (d *Dispatcher) CycleSpeed(up bool) bool {
	v := ActiveVideo(d.doc)
	if v == nil {
		return false
	}
	v.SetPlaybackRate(nextRate(v.PlaybackRate(), up))
	return true
}

// ResetSpeed returns the playback rate to normal.
func (d *Dispatcher) ResetSpeed() bool {
	v := ActiveVideo(d.doc)
	if v == nil {
		return false
	}
	v.SetPlaybackRate(1)
	return true
}

func nextRate(current float64, up bool) float64 {
	if up {
		for _, r := range speedLadder {
			if r > current+rateEpsilon {
				return r
			}
		}
		return current
	}
	for i := len(speedLadder) - 1; i >= 0; i-- {
		if speedLadder[i] < current-rateEpsilon {
			return speedLadder[i]
		}
	}
	return current
}

// Execute runs the command named by token. Unknown tokens and commands that
// find no active video report false; neither mutates any state.
func (d *Dispatcher) Execute(token string) bool {
	var ok bool
	switch token {
	case CmdPlayPause:
		ok = d.TogglePlayback()
	case CmdSeekForward:
		ok = d.SeekBy(d.seekStep)
	case CmdSeekBackward:
		ok = d.SeekBy(-d.seekStep)
	case CmdVolumeUp:
		ok = d.AdjustVolume(d.volumeStep)
	case CmdVolumeDown:
		ok = d.AdjustVolume(-d.volumeStep)
	case CmdSpeedUp:
		ok = d.CycleSpeed(true)
	case CmdSpeedDown:
		ok = d.CycleSpeed(false)
	case CmdSpeedReset:
		ok = d.ResetSpeed()
	default:
		d.log.Debug("unknown command token", logging.String(logging.FieldCommand, token))
		metrics.CommandsTotal.WithLabelValues("unknown", "rejected").Inc()
		return false
	}

	outcome := "ok"
	if !ok {
		outcome = "no_target"
	}
	metrics.CommandsTotal.WithLabelValues(token, outcome).Inc()
	d.log.Debug("command executed",
		logging.String(logging.FieldCommand, token),
		logging.Bool("handled", ok),
	)
	return ok
}
