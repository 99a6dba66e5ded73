// Package bridge mirrors one live page into the session document over a
// websocket and streams overlay state back out.
//
// The in-page adapter script connects to the daemon's /bridge endpoint and
// sends JSON messages: a full body snapshot on load, then incremental
// insert/remove/video/focus/viewport deltas. Each message is applied on the
// session loop and flushed so the mutation watcher reacts exactly as it
// would to native DOM changes.
//
// Outbound traffic has two shapes: seq-numbered "overlay" payloads carrying
// the full overlay state (sent only when the serialized form changes), and
// "playback" ops forwarded from the document's playback sink whenever the
// engine writes to a video. A dropped connection resets the mirrored
// document to empty, which releases every overlay through the normal
// removal path.
//
// One page connection is served at a time; a newer connection replaces the
// current one, matching the single embedding document model.
package bridge
