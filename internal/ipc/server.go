package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"strings"
	"sync"

	"log/slog"

	"seekbar/internal/daemon"
	"seekbar/internal/logging"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Seekbar", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"),
					logging.String(logging.FieldImpact, "IPC clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "Check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldEventType, "ipc_socket_cleanup_failed"),
			logging.String(logging.FieldImpact, "stale IPC socket may block future starts"),
			logging.String(logging.FieldErrorHint, "Remove the socket file manually or rerun seekbar stop"))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Start(_ StartRequest, resp *StartResponse) error {
	s.log().Debug("daemon start requested")
	if err := s.daemon.Start(s.ctx); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	resp.Started = true
	resp.Message = "daemon started"
	s.log().Info("daemon started via IPC",
		logging.String(logging.FieldEventType, "daemon_start"))
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.log().Debug("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	s.log().Info("daemon stopped via IPC",
		logging.String(logging.FieldEventType, "daemon_stop"))
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.LockPath = status.LockPath
	resp.SocketPath = status.SocketPath
	resp.Session = status.Session
	resp.Bridge = status.Bridge
	return nil
}

func (s *service) Command(req CommandRequest, resp *CommandResponse) error {
	token := strings.TrimSpace(req.Command)
	if token == "" {
		return errors.New("command token is required")
	}
	handled, err := s.daemon.ExecuteCommand(token)
	if err != nil {
		return err
	}
	resp.OK = handled
	if handled {
		resp.Message = "command executed"
	} else {
		resp.Message = "command not handled (unknown token or no active video)"
	}
	s.log().Debug("command dispatched",
		logging.String(logging.FieldCommand, token),
		logging.Bool("handled", handled))
	return nil
}

func (s *service) EnhanceAll(_ EnhanceAllRequest, resp *EnhanceAllResponse) error {
	attached, err := s.daemon.EnhanceAll()
	if err != nil {
		return err
	}
	resp.Attached = attached
	s.log().Info("enhancement pass requested via IPC",
		logging.String(logging.FieldEventType, "enhance_all"),
		logging.Int("attached", attached))
	return nil
}

func (s *service) DetachAll(_ DetachAllRequest, resp *DetachAllResponse) error {
	detached, err := s.daemon.DetachAll()
	if err != nil {
		return err
	}
	resp.Detached = detached
	s.log().Info("overlay teardown requested via IPC",
		logging.String(logging.FieldEventType, "detach_all"),
		logging.Int("detached", detached))
	return nil
}

func (s *service) PageLoad(req PageLoadRequest, resp *PageLoadResponse) error {
	videos, enhanced, err := s.daemon.LoadPage(req.Nodes)
	if err != nil {
		return err
	}
	resp.Videos = videos
	resp.Enhanced = enhanced
	s.log().Info("page loaded via IPC",
		logging.String(logging.FieldEventType, "page_load"),
		logging.Int("videos", videos),
		logging.Int("enhanced", enhanced))
	return nil
}

func (s *service) PageInsert(req PageInsertRequest, resp *PageInsertResponse) error {
	enhanced, err := s.daemon.InsertNode(req.Parent, req.Node)
	if err != nil {
		return err
	}
	resp.Enhanced = enhanced
	return nil
}

func (s *service) PageRemove(req PageRemoveRequest, resp *PageRemoveResponse) error {
	if strings.TrimSpace(req.ID) == "" {
		return errors.New("node id is required")
	}
	enhanced, err := s.daemon.RemoveNode(req.ID)
	if err != nil {
		return err
	}
	resp.Enhanced = enhanced
	return nil
}

func (s *service) PageVideo(req PageVideoRequest, resp *PageVideoResponse) error {
	if strings.TrimSpace(req.ID) == "" {
		return errors.New("video id is required")
	}
	if err := s.daemon.UpdateVideo(req.ID, req.State); err != nil {
		return err
	}
	resp.Applied = true
	return nil
}
