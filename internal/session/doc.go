// Package session hosts the enhancement engine behind a single serialized
// loop. The document model is not safe for concurrent use, so every caller
// (IPC service, HTTP handlers, page bridge) posts closures that run to
// completion, in post order, on one goroutine.
//
// Session owns the document plus the tracker, watcher, and dispatcher bound
// to it. Starting a session starts the watcher and runs one full enhancement
// pass; stopping it releases every overlay before the loop exits.
//
// The Env operations (LoadPage, InsertNode, RemoveNode, UpdateVideo,
// SetFocus, SetViewport) apply declarative page fragments and are shared by
// the bridge ingest path and the manual page debug surface.
package session
