// Package ipc exposes the daemon over JSON-RPC Unix sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management and the request/response DTOs for the
// command channel: playback command dispatch, status introspection, batch
// enhance/teardown, daemon start/stop, and the manual page debug surface
// (load/insert/remove/video). The server embeds the daemon; the client keeps
// call sites typed so CLI commands stay thin.
//
// Reuse these types when adding new RPC endpoints to keep the protocol stable
// and compatible with existing command implementations.
package ipc
