package ipc

import "seekbar/internal/api"

// StartRequest triggers daemon enhancement startup.
type StartRequest struct{}

// StartResponse indicates whether the daemon was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops enhancement and releases all overlays.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// VideoSummary mirrors the HTTP API video DTO for IPC callers.
type VideoSummary = api.VideoSummary

// SessionStatus mirrors the HTTP API session DTO for IPC callers.
type SessionStatus = api.SessionStatus

// BridgeStatus mirrors the HTTP API bridge DTO for IPC callers.
type BridgeStatus = api.BridgeStatus

// StatusResponse represents combined daemon/session status information.
// SystemChecks is filled in client-side by daemonctl rather than by the
// daemon service.
type StatusResponse struct {
	Running      bool             `json:"running"`
	PID          int              `json:"pid"`
	LockPath     string           `json:"lock_path"`
	SocketPath   string           `json:"socket_path"`
	Session      SessionStatus    `json:"session"`
	Bridge       BridgeStatus     `json:"bridge"`
	SystemChecks []api.StatusLine `json:"system_checks,omitempty"`
}

// CommandRequest dispatches one playback command token.
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResponse reports whether the command was handled.
type CommandResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// EnhanceAllRequest forces a full-document enhancement pass.
type EnhanceAllRequest struct{}

// EnhanceAllResponse reports how many videos gained overlays.
type EnhanceAllResponse struct {
	Attached int `json:"attached"`
}

// DetachAllRequest forces teardown of every overlay.
type DetachAllRequest struct{}

// DetachAllResponse reports how many overlays were released.
type DetachAllResponse struct {
	Detached int `json:"detached"`
}

// PageLoadRequest replaces the document body with the given fragments.
type PageLoadRequest struct {
	Nodes []api.NodeSpec `json:"nodes"`
}

// PageLoadResponse reports the post-load video population.
type PageLoadResponse struct {
	Videos   int `json:"videos"`
	Enhanced int `json:"enhanced"`
}

// PageInsertRequest inserts one fragment under a parent node.
type PageInsertRequest struct {
	Parent string       `json:"parent"`
	Node   api.NodeSpec `json:"node"`
}

// PageInsertResponse reports the post-insert enhancement count.
type PageInsertResponse struct {
	Enhanced int `json:"enhanced"`
}

// PageRemoveRequest removes one node by id.
type PageRemoveRequest struct {
	ID string `json:"id"`
}

// PageRemoveResponse reports the post-removal enhancement count.
type PageRemoveResponse struct {
	Enhanced int `json:"enhanced"`
}

// PageVideoRequest applies playback state to one video by id.
type PageVideoRequest struct {
	ID    string         `json:"id"`
	State api.VideoState `json:"state"`
}

// PageVideoResponse acknowledges the state application.
type PageVideoResponse struct {
	Applied bool `json:"applied"`
}
