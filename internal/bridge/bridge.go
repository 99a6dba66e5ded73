package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"seekbar/internal/api"
	"seekbar/internal/dom"
	"seekbar/internal/logging"
	"seekbar/internal/metrics"
	"seekbar/internal/overlay"
	"seekbar/internal/session"
)

// writeTimeout bounds one websocket send to the page.
const writeTimeout = 5 * time.Second

// Message types accepted from the page adapter.
const (
	msgSnapshot = "snapshot"
	msgInsert   = "insert"
	msgRemove   = "remove"
	msgVideo    = "video"
	msgFocus    = "focus"
	msgViewport = "viewport"
)

// Message types sent to the page adapter.
const (
	msgOverlay  = "overlay"
	msgPlayback = "playback"
)

// inboundMessage is the envelope for every adapter-to-daemon message. Fields
// beyond Type are populated per message type.
type inboundMessage struct {
	Type     string          `json:"type"`
	Nodes    []api.NodeSpec  `json:"nodes,omitempty"`
	Parent   string          `json:"parent,omitempty"`
	Node     *api.NodeSpec   `json:"node,omitempty"`
	ID       string          `json:"id,omitempty"`
	State    *api.VideoState `json:"state,omitempty"`
	Viewport *api.RectSpec   `json:"viewport,omitempty"`
}

// OverlayState is the rendered form of one seek control, enough for the page
// adapter to position and paint it without knowing the enhancement engine.
type OverlayState struct {
	ID         string `json:"id"`
	Parent     string `json:"parent,omitempty"`
	Video      string `json:"video,omitempty"`
	Value      string `json:"value"`
	Max        string `json:"max,omitempty"`
	Background string `json:"background"`
}

// PlaybackOp is one control write the page adapter must replay against the
// real media element.
type PlaybackOp struct {
	Video string  `json:"video"`
	Op    string  `json:"op"`
	Value float64 `json:"value,omitempty"`
}

type overlayMessage struct {
	Type     string         `json:"type"`
	Seq      int64          `json:"seq"`
	Overlays []OverlayState `json:"overlays"`
}

type playbackMessage struct {
	Type string     `json:"type"`
	Op   PlaybackOp `json:"op"`
}

// Bridge relays page state between a browser adapter and the session's
// mirrored document over a single websocket connection.
type Bridge struct {
	session *session.Session
	logger  *slog.Logger
	enabled bool

	mu       sync.Mutex
	conn     *websocket.Conn
	seq      int64
	lastSent string
}

// New creates a bridge bound to the session. A disabled bridge still serves
// its endpoint but rejects connections.
func New(sess *session.Session, logger *slog.Logger, enabled bool) *Bridge {
	return &Bridge{
		session: sess,
		logger:  logging.NewComponentLogger(logger, "bridge"),
		enabled: enabled,
	}
}

// Enabled reports whether the bridge accepts page connections.
func (b *Bridge) Enabled() bool {
	if b == nil {
		return false
	}
	return b.enabled
}

// Status reports bridge connectivity for the status surfaces.
func (b *Bridge) Status() api.BridgeStatus {
	if b == nil {
		return api.BridgeStatus{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return api.BridgeStatus{
		Enabled:   b.enabled,
		Connected: b.conn != nil,
		LastSeq:   b.seq,
	}
}

// Handler returns the websocket endpoint for page adapters.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(b.handleSocket)
}

func (b *Bridge) handleSocket(w http.ResponseWriter, r *http.Request) {
	if !b.enabled {
		http.Error(w, "bridge disabled", http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		logging.WarnWithContext(b.logger, "websocket accept failed", "bridge_accept_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "page adapter not connected"),
			logging.String(logging.FieldErrorHint, "check the adapter's bridge URL and token"))
		return
	}

	b.adopt(conn)
	defer b.release(conn)

	// The request context is tied to the handler, which stays on this read
	// loop for the connection's lifetime; reads use an independent context
	// so a slow page cannot be cut off by unrelated request plumbing.
	for {
		_, data, err := conn.Read(context.Background())
		if err != nil {
			return
		}
		b.handleMessage(data)
	}
}

// adopt installs conn as the active page connection, displacing any previous
// one, and wires the playback sink so control writes reach the page.
func (b *Bridge) adopt(conn *websocket.Conn) {
	b.mu.Lock()
	prev := b.conn
	b.conn = conn
	b.lastSent = ""
	b.mu.Unlock()

	if prev != nil {
		prev.Close(websocket.StatusPolicyViolation, "replaced by a newer page connection")
		b.logger.Info("previous page connection replaced",
			logging.String(logging.FieldEventType, "bridge_replaced"))
	}
	metrics.BridgeConnected.Set(1)
	b.logger.Info("page connected",
		logging.String(logging.FieldEventType, "bridge_connected"))

	err := b.session.Do(func(env *session.Env) error {
		// The sink fires on the session loop while commands execute, so it
		// must write to the socket inline rather than schedule a task.
		env.Doc.SetPlaybackSink(func(op dom.PlaybackOp) {
			b.forwardPlayback(op)
		})
		b.publishLocked(env)
		return nil
	})
	if err != nil {
		logging.WarnWithContext(b.logger, "page connected without a running session", "bridge_no_session",
			logging.Error(err),
			logging.String(logging.FieldImpact, "page state will not be mirrored"),
			logging.String(logging.FieldErrorHint, "run 'seekbar start' to start the session"))
	}
}

// release tears down conn's wiring. When conn is still the active connection
// the mirrored document is reset so stale page state cannot linger.
func (b *Bridge) release(conn *websocket.Conn) {
	conn.Close(websocket.StatusNormalClosure, "")

	b.mu.Lock()
	current := b.conn == conn
	if current {
		b.conn = nil
		b.lastSent = ""
	}
	b.mu.Unlock()
	if !current {
		return
	}

	metrics.BridgeConnected.Set(0)
	b.logger.Info("page disconnected",
		logging.String(logging.FieldEventType, "bridge_disconnected"))

	// Clearing the body walks the same removal path as real page mutations,
	// so the watcher tears down every overlay for the vanished page.
	_ = b.session.Do(func(env *session.Env) error {
		env.Doc.SetPlaybackSink(nil)
		body := env.Doc.Body()
		if body == nil {
			return nil
		}
		for _, child := range body.Children() {
			child.Elem().Remove()
		}
		env.Doc.Flush()
		return nil
	})
}

func (b *Bridge) handleMessage(data []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logging.WarnWithContext(b.logger, "malformed bridge message", "bridge_bad_message",
			logging.Error(err),
			logging.String(logging.FieldImpact, "page mutation dropped"),
			logging.String(logging.FieldErrorHint, "update the page adapter to a matching version"))
		return
	}
	if err := b.apply(msg); err != nil {
		logging.WarnWithContext(b.logger, "bridge message rejected", "bridge_message_rejected",
			logging.String("message_type", msg.Type),
			logging.Error(err),
			logging.String(logging.FieldImpact, "page mutation dropped"),
			logging.String(logging.FieldErrorHint, "reload the page to resend a full snapshot"))
		return
	}
	b.Publish()
}

// apply routes one adapter message onto the session loop.
func (b *Bridge) apply(msg inboundMessage) error {
	switch msg.Type {
	case msgSnapshot:
		return b.session.Do(func(env *session.Env) error {
			return env.LoadPage(msg.Nodes)
		})
	case msgInsert:
		if msg.Node == nil {
			return errors.New("insert requires a node")
		}
		return b.session.Do(func(env *session.Env) error {
			return env.InsertNode(msg.Parent, *msg.Node)
		})
	case msgRemove:
		if msg.ID == "" {
			return errors.New("remove requires an id")
		}
		return b.session.Do(func(env *session.Env) error {
			return env.RemoveNode(msg.ID)
		})
	case msgVideo:
		if msg.ID == "" {
			return errors.New("video update requires an id")
		}
		if msg.State == nil {
			return errors.New("video update requires state")
		}
		return b.session.Do(func(env *session.Env) error {
			return env.UpdateVideo(msg.ID, *msg.State)
		})
	case msgFocus:
		return b.session.Do(func(env *session.Env) error {
			return env.SetFocus(msg.ID)
		})
	case msgViewport:
		if msg.Viewport == nil {
			return errors.New("viewport requires dimensions")
		}
		return b.session.Do(func(env *session.Env) error {
			env.SetViewport(msg.Viewport.W, msg.Viewport.H)
			return nil
		})
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

// Publish pushes the current overlay state to the page when it changed since
// the last send. Safe to call with no page connected.
func (b *Bridge) Publish() {
	if b == nil {
		return
	}
	b.mu.Lock()
	connected := b.conn != nil
	b.mu.Unlock()
	if !connected {
		return
	}
	_ = b.session.Do(func(env *session.Env) error {
		b.publishLocked(env)
		return nil
	})
}

// publishLocked collects and sends overlay state. It must run on the session
// loop, which also serializes all socket writes.
func (b *Bridge) publishLocked(env *session.Env) {
	overlays := collectOverlays(env)
	data, err := json.Marshal(overlayMessage{Type: msgOverlay, Overlays: overlays})
	if err != nil {
		b.logger.Warn("overlay state marshal failed", logging.Error(err))
		return
	}
	seq, send := b.nextSeq(string(data))
	if !send {
		return
	}
	b.send(overlayMessage{Type: msgOverlay, Seq: seq, Overlays: overlays})
}

// nextSeq records the serialized payload and allocates its sequence number,
// or reports false when the payload matches the last one sent.
func (b *Bridge) nextSeq(serialized string) (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if serialized == b.lastSent {
		return 0, false
	}
	b.lastSent = serialized
	b.seq++
	return b.seq, true
}

// forwardPlayback relays one engine control write to the page. Runs on the
// session loop via the document's playback sink.
func (b *Bridge) forwardPlayback(op dom.PlaybackOp) {
	if op.Video == nil {
		return
	}
	b.send(playbackMessage{
		Type: msgPlayback,
		Op: PlaybackOp{
			Video: op.Video.ID(),
			Op:    string(op.Op),
			Value: op.Value,
		},
	})
}

func (b *Bridge) send(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Warn("bridge payload marshal failed", logging.Error(err))
		return
	}
	b.mu.Lock()
	conn := b.conn
	b.mu.Unlock()
	if conn == nil {
		return
	}
	// Sends run on the session loop; a stalled page must not block it.
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		b.logger.Debug("bridge write failed", logging.Error(err))
	}
}

// Shutdown closes the active page connection, if any. The read loop observes
// the close and resets the mirrored document.
func (b *Bridge) Shutdown() {
	if b == nil {
		return
	}
	b.mu.Lock()
	conn := b.conn
	b.mu.Unlock()
	if conn != nil {
		conn.Close(websocket.StatusGoingAway, "daemon shutting down")
	}
}

// collectOverlays walks the document for overlay containers and captures what
// the page adapter needs to render each one.
func collectOverlays(env *session.Env) []OverlayState {
	body := env.Doc.Body()
	if body == nil {
		return nil
	}
	var out []OverlayState
	var walk func(el *dom.Element)
	walk = func(el *dom.Element) {
		for _, child := range el.Children() {
			cel := child.Elem()
			if cel == nil {
				continue
			}
			if id := cel.Dataset(overlay.DatasetContainerKey); id != "" {
				out = append(out, overlayState(env, cel, id))
				// A container subtree holds only the control.
				continue
			}
			walk(cel)
		}
	}
	walk(body)
	return out
}

func overlayState(env *session.Env, container *dom.Element, id string) OverlayState {
	state := OverlayState{ID: id}
	if parent := container.Parent(); parent != nil {
		state.Parent = parent.ID()
	}
	for _, video := range env.Doc.Videos() {
		if video.Dataset(overlay.DatasetVideoKey) == id {
			state.Video = video.ID()
			break
		}
	}
	for _, child := range container.Children() {
		cel := child.Elem()
		if cel == nil || cel.Attr("type") != "range" {
			continue
		}
		state.Value = cel.Attr("value")
		state.Max = cel.Attr("max")
		state.Background = cel.Style("background")
		break
	}
	return state
}
