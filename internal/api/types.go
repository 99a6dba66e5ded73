package api

// RectSpec is the wire form of a layout rectangle.
type RectSpec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// VideoState is the wire form of video playback state. A zero Duration means
// the duration is not yet known.
type VideoState struct {
	CurrentTime  float64 `json:"currentTime"`
	Duration     float64 `json:"duration,omitempty"`
	Paused       bool    `json:"paused"`
	Volume       float64 `json:"volume"`
	PlaybackRate float64 `json:"playbackRate"`
	Seekable     bool    `json:"seekable"`
}

// NodeSpec describes a document fragment declaratively. It is used by the
// bridge snapshot/insert messages and by the manual page debug commands.
type NodeSpec struct {
	ID       string            `json:"id,omitempty"`
	Tag      string            `json:"tag"`
	Video    *VideoState       `json:"video,omitempty"`
	Dataset  map[string]string `json:"dataset,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Rect     *RectSpec         `json:"rect,omitempty"`
	Children []NodeSpec        `json:"children,omitempty"`
}

// VideoSummary describes a tracked video in a transport-friendly format.
type VideoSummary struct {
	ID       string     `json:"id"`
	Enhanced bool       `json:"enhanced"`
	State    VideoState `json:"state"`
	Rect     RectSpec   `json:"rect"`
}

// SessionStatus summarizes the enhancement session.
type SessionStatus struct {
	Running         bool           `json:"running"`
	SessionID       string         `json:"sessionId,omitempty"`
	Enhanced        int            `json:"enhanced"`
	Videos          []VideoSummary `json:"videos"`
	WatcherRunning  bool           `json:"watcherRunning"`
	WatcherDegraded bool           `json:"watcherDegraded"`
	LastError       string         `json:"lastError,omitempty"`
}

// BridgeStatus reports page bridge connectivity.
type BridgeStatus struct {
	Enabled   bool  `json:"enabled"`
	Connected bool  `json:"connected"`
	LastSeq   int64 `json:"lastSeq"`
}

// StatusLine is one labeled row in a human-readable status report.
type StatusLine struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
	Detail   string `json:"detail"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running    bool          `json:"running"`
	PID        int           `json:"pid"`
	LockPath   string        `json:"lockPath"`
	SocketPath string        `json:"socketPath"`
	Session    SessionStatus `json:"session"`
	Bridge     BridgeStatus  `json:"bridge"`
}

// CommandRequest names a playback command token to execute.
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResult reports the outcome of one command dispatch.
type CommandResult struct {
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// VideoListResponse wraps the tracked-video collection for API responses.
type VideoListResponse struct {
	Videos []VideoSummary `json:"videos"`
}
