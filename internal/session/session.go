package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"log/slog"

	"github.com/google/uuid"

	"seekbar/internal/api"
	"seekbar/internal/config"
	"seekbar/internal/dom"
	"seekbar/internal/logging"
	"seekbar/internal/overlay"
)

// ErrNotRunning is returned when work is posted to a stopped session.
var ErrNotRunning = errors.New("session not running")

// Env is the machinery handed to a posted task. Tasks run on the session
// loop, so they may touch the document freely.
type Env struct {
	Doc        *dom.Document
	Tracker    *overlay.Tracker
	Watcher    *overlay.Watcher
	Dispatcher *overlay.Dispatcher
}

type task struct {
	fn   func(*Env) error
	done chan error
}

// Session serializes all access to one document and its enhancement
// machinery onto a single loop goroutine.
type Session struct {
	logger *slog.Logger
	env    *Env
	id     string

	tasks chan task

	mu       sync.Mutex
	running  bool
	quit     chan struct{}
	loopDone chan struct{}
	lastErr  string
}

// New constructs a stopped session with a fresh document.
func New(cfg *config.Config, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	doc := dom.NewDocument()
	tracker := overlay.NewTracker(doc, logger)
	opts := overlay.DispatcherOptions{}
	if cfg != nil {
		opts.SeekStep = cfg.Player.SeekStepSeconds
		opts.VolumeStep = cfg.Player.VolumeStep
	}
	return &Session{
		logger: logging.NewComponentLogger(logger, "session"),
		env: &Env{
			Doc:        doc,
			Tracker:    tracker,
			Watcher:    overlay.NewWatcher(doc, tracker, logger),
			Dispatcher: overlay.NewDispatcher(doc, logger, opts),
		},
		id:    uuid.NewString(),
		tasks: make(chan task),
	}
}

// ID returns the stable session identifier.
func (s *Session) ID() string { return s.id }

// Start launches the loop, starts the mutation watcher, and runs one full
// enhancement pass. The session stops itself when ctx is canceled.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("session already running")
	}
	s.running = true
	s.quit = make(chan struct{})
	s.loopDone = make(chan struct{})
	quit, loopDone := s.quit, s.loopDone
	s.mu.Unlock()

	go s.loop(quit, loopDone)
	if ctx != nil {
		go func() {
			select {
			case <-ctx.Done():
				s.Stop()
			case <-quit:
			}
		}()
	}

	return s.post(quit, func(env *Env) error {
		if err := env.Watcher.Start(); err != nil {
			return err
		}
		if attached := env.Tracker.EnhanceAll(); attached > 0 {
			s.logger.Info("initial enhancement pass",
				logging.Int("attached", attached))
		}
		return nil
	})
}

// Stop releases every overlay, stops the watcher, and halts the loop. It is
// safe to call more than once; a stopped session can be started again.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	quit, loopDone := s.quit, s.loopDone
	s.mu.Unlock()

	_ = s.post(quit, func(env *Env) error {
		env.Watcher.Stop()
		if detached := env.Tracker.DetachAll(); detached > 0 {
			s.logger.Info("session teardown released overlays",
				logging.Int("detached", detached))
		}
		return nil
	})
	close(quit)
	<-loopDone
	s.logger.Debug("session loop stopped")
}

// Do posts fn to the session loop and waits for it to complete.
func (s *Session) Do(fn func(*Env) error) error {
	if fn == nil {
		return errors.New("session: nil task")
	}
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	quit := s.quit
	s.mu.Unlock()
	return s.post(quit, fn)
}

func (s *Session) post(quit chan struct{}, fn func(*Env) error) error {
	t := task{fn: fn, done: make(chan error, 1)}
	select {
	case s.tasks <- t:
	case <-quit:
		return ErrNotRunning
	}
	select {
	case err := <-t.done:
		return err
	case <-quit:
		return ErrNotRunning
	}
}

func (s *Session) loop(quit, done chan struct{}) {
	defer close(done)
	for {
		select {
		case t := <-s.tasks:
			t.done <- s.run(t.fn)
		case <-quit:
			return
		}
	}
}

func (s *Session) run(fn func(*Env) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session task panic: %v", r)
			s.logger.Warn("session task panicked",
				logging.String(logging.FieldEventType, "session_task_panic"),
				logging.String(logging.FieldErrorHint, fmt.Sprint(r)),
				logging.String(logging.FieldImpact, "one posted task aborted; the session continues"))
		}
		if err != nil {
			s.recordError(err)
		}
	}()
	return fn(s.env)
}

func (s *Session) recordError(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}

func (s *Session) lastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Status returns a point-in-time snapshot taken on the session loop. A
// stopped session reports only its identity and last error.
func (s *Session) Status() api.SessionStatus {
	var snap api.SessionStatus
	err := s.Do(func(env *Env) error {
		snap = s.snapshot(env)
		return nil
	})
	if err != nil {
		return api.SessionStatus{
			Running:   false,
			SessionID: s.id,
			LastError: s.lastError(),
		}
	}
	return snap
}

func (s *Session) snapshot(env *Env) api.SessionStatus {
	videos := env.Doc.Videos()
	summaries := make([]api.VideoSummary, 0, len(videos))
	for _, v := range videos {
		summaries = append(summaries, api.FromVideo(v, env.Tracker.IsEnhanced(v)))
	}
	return api.SessionStatus{
		Running:         true,
		SessionID:       s.id,
		Enhanced:        env.Tracker.Count(),
		Videos:          summaries,
		WatcherRunning:  env.Watcher.Running(),
		WatcherDegraded: env.Watcher.Degraded(),
		LastError:       s.lastError(),
	}
}

// ExecuteCommand dispatches one playback command token on the loop.
func (s *Session) ExecuteCommand(token string) (bool, error) {
	var handled bool
	err := s.Do(func(env *Env) error {
		handled = env.Dispatcher.Execute(token)
		return nil
	})
	return handled, err
}

// EnhanceAll runs a full-document enhancement pass on the loop.
func (s *Session) EnhanceAll() (int, error) {
	var attached int
	err := s.Do(func(env *Env) error {
		attached = env.Tracker.EnhanceAll()
		return nil
	})
	return attached, err
}

// DetachAll releases every overlay on the loop.
func (s *Session) DetachAll() (int, error) {
	var detached int
	err := s.Do(func(env *Env) error {
		detached = env.Tracker.DetachAll()
		return nil
	})
	return detached, err
}
