// Package daemon coordinates the long-running seekbard process and system
// integration points.
//
// It wires configuration, the enhancement session, and the page bridge into a
// single lifecycle with flock-based locking to prevent multiple instances.
// The daemon exposes the session operations the IPC service delegates to and
// serves the HTTP API (status, videos, command dispatch, health, metrics, and
// the bridge websocket endpoint).
//
// Keep orchestration logic here: enhancement behavior lives in the overlay
// and session packages while the daemon focuses on startup, shutdown, and
// high level coordination.
package daemon
