// Package overlay implements the video enhancement engine: selecting the
// video a command should target, resolving where its seek control belongs,
// keeping the control's fill in step with playback, and tracking every
// enhancement so it can be torn down without leaving stray nodes behind.
//
// The Tracker is the single owner of enhancement state. The Watcher feeds it
// from childList mutations as single-page applications swap views; the
// Dispatcher executes playback command tokens against the geometry selector's
// active video. Faults while handling one video are contained to that video:
// batch operations recover, log, and continue with the rest.
//
// Everything here assumes the single-threaded document model in internal/dom
// and must run on the owning session loop.
package overlay
