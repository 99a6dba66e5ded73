package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"seekbar/internal/api"
	"seekbar/internal/bridge"
	"seekbar/internal/config"
	"seekbar/internal/logging"
	"seekbar/internal/session"
)

// Daemon coordinates the enhancement session and its transports and enforces
// single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	session *session.Session
	bridge  *bridge.Bridge

	lockPath string
	lock     *flock.Flock

	api *apiServer

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running    bool
	PID        int
	LockPath   string
	SocketPath string
	Session    api.SessionStatus
	Bridge     api.BridgeStatus
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, sess *session.Session, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || sess == nil || logger == nil {
		return nil, errors.New("daemon requires config, session, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "seekbard.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		session:  sess,
		bridge:   bridge.New(sess, logger, cfg.Bridge.Enabled),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the single-instance lock and brings up the session and its
// transports. A failing HTTP API degrades the daemon instead of aborting it;
// the control socket keeps working.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another seekbar daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.session.Start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start session: %w", err)
	}

	srv, err := newAPIServer(d.cfg, d, d.logger)
	if err == nil && srv != nil {
		err = srv.start(d.ctx)
	}
	if err != nil {
		logging.WarnWithContext(d.logger, "http api unavailable", "api_start_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "status endpoints and the page bridge are offline"),
			logging.String(logging.FieldErrorHint, "adjust paths.api_bind or free the address, then restart"))
		srv = nil
	}
	d.api = srv

	d.running.Store(true)
	d.logger.Info("seekbar daemon started",
		logging.String("lock", d.lockPath),
		logging.String(logging.FieldEventType, "daemon_start"))
	return nil
}

// Stop stops the transports and session and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.bridge.Shutdown()
	d.api.stop()
	d.api = nil
	d.session.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("seekbar daemon stopped",
		logging.String(logging.FieldEventType, "daemon_stop"))
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	return Status{
		Running:    d.running.Load(),
		PID:        os.Getpid(),
		LockPath:   d.lockPath,
		SocketPath: d.cfg.SocketPath(),
		Session:    d.session.Status(),
		Bridge:     d.bridge.Status(),
	}
}

// Videos lists the mirrored document's videos with enhancement state. A
// stopped session yields an empty list.
func (d *Daemon) Videos() []api.VideoSummary {
	return d.session.Status().Videos
}

// ExecuteCommand dispatches one playback command token through the session.
func (d *Daemon) ExecuteCommand(token string) (bool, error) {
	handled, err := d.session.ExecuteCommand(token)
	if err != nil {
		return false, err
	}
	d.bridge.Publish()
	return handled, nil
}

// EnhanceAll runs a full enhancement pass over the mirrored document.
func (d *Daemon) EnhanceAll() (int, error) {
	attached, err := d.session.EnhanceAll()
	if err != nil {
		return 0, err
	}
	d.bridge.Publish()
	return attached, nil
}

// DetachAll releases every overlay in the mirrored document.
func (d *Daemon) DetachAll() (int, error) {
	detached, err := d.session.DetachAll()
	if err != nil {
		return 0, err
	}
	d.bridge.Publish()
	return detached, nil
}

// LoadPage replaces the mirrored document contents with the given fragments
// and reports the resulting video and enhancement counts.
func (d *Daemon) LoadPage(nodes []api.NodeSpec) (int, int, error) {
	var videos, enhanced int
	err := d.session.Do(func(env *session.Env) error {
		if err := env.LoadPage(nodes); err != nil {
			return err
		}
		videos = len(env.Doc.Videos())
		enhanced = env.Tracker.Count()
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	d.bridge.Publish()
	return videos, enhanced, nil
}

// InsertNode mirrors one inserted subtree and reports the enhanced count.
func (d *Daemon) InsertNode(parentID string, node api.NodeSpec) (int, error) {
	var enhanced int
	err := d.session.Do(func(env *session.Env) error {
		if err := env.InsertNode(parentID, node); err != nil {
			return err
		}
		enhanced = env.Tracker.Count()
		return nil
	})
	if err != nil {
		return 0, err
	}
	d.bridge.Publish()
	return enhanced, nil
}

// RemoveNode mirrors one removal and reports the enhanced count.
func (d *Daemon) RemoveNode(id string) (int, error) {
	var enhanced int
	err := d.session.Do(func(env *session.Env) error {
		if err := env.RemoveNode(id); err != nil {
			return err
		}
		enhanced = env.Tracker.Count()
		return nil
	})
	if err != nil {
		return 0, err
	}
	d.bridge.Publish()
	return enhanced, nil
}

// UpdateVideo applies page-reported playback state to a mirrored video.
func (d *Daemon) UpdateVideo(id string, state api.VideoState) error {
	if err := d.session.Do(func(env *session.Env) error {
		return env.UpdateVideo(id, state)
	}); err != nil {
		return err
	}
	d.bridge.Publish()
	return nil
}
