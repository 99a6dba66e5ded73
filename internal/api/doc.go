// Package api defines wire-format types and converters for the IPC and HTTP
// API layer. It translates internal document and session models into
// transport-friendly DTOs that clients can render without coupling to
// internal types.
//
// # Key Types
//
// VideoSummary: transport representation of a tracked video with playback
// state, layout rect, and enhancement status.
//
// SessionStatus: session running state, enhancement counts, watcher health,
// and per-video summaries.
//
// DaemonStatus: aggregated runtime information including lock and socket
// paths and bridge connectivity.
//
// NodeSpec/VideoState: declarative document fragments used by the page
// bridge snapshot/insert messages and the manual page debug surface.
//
// # Converters
//
// FromVideo: *dom.Video -> VideoSummary. FromPlaybackState/ToPlaybackState
// translate between dom playback state and its wire form.
//
// # Design Notes
//
// DTOs use camelCase JSON tags for JavaScript/TypeScript consumers. An
// unknown media duration is NaN internally but 0 on the wire, since JSON has
// no NaN; converters apply the mapping in both directions.
package api
