// Package dom is the in-process document model the enhancement engine runs
// against.
//
// It mirrors the handful of page facilities the engine needs: an element tree
// under a single body, inline style and dataset maps, layout rectangles,
// synchronous capture/bubble event dispatch, childList mutation observation
// with batched delivery, and video elements carrying playback state. Live
// pages are projected into a Document by the bridge; tests build documents
// directly. The zero Document value is a restricted context with no body,
// which is how pages that refuse scripting access are represented.
//
// The model is single-threaded. All reads and writes must happen on the
// owning session loop, matching the run-to-completion execution model the
// engine assumes. Engine-originated playback writes are reported to the
// document's playback sink so a bridge can forward them to the real page;
// page-side state reports applied through ApplyState skip the sink to avoid
// echo loops.
package dom
