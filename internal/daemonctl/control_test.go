package daemonctl_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"seekbar/internal/api"
	"seekbar/internal/config"
	"seekbar/internal/daemon"
	"seekbar/internal/daemonctl"
	"seekbar/internal/ipc"
	"seekbar/internal/logging"
	"seekbar/internal/testsupport"
)

func findLine(t *testing.T, lines []api.StatusLine, label string) api.StatusLine {
	t.Helper()
	for _, line := range lines {
		if line.Label == label {
			return line
		}
	}
	t.Fatalf("no status line labeled %q in %+v", label, lines)
	return api.StatusLine{}
}

func TestBuildStatusSnapshotOffline(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	socket := cfg.SocketPath()

	status, err := daemonctl.BuildStatusSnapshot(socket, cfg)
	if err != nil {
		t.Fatalf("BuildStatusSnapshot: %v", err)
	}
	if status.Running {
		t.Fatal("no daemon is listening, status should be offline")
	}
	if status.SocketPath != socket {
		t.Fatalf("SocketPath = %q, want %q", status.SocketPath, socket)
	}
	wantLock := filepath.Join(cfg.Paths.LogDir, "seekbard.lock")
	if status.LockPath != wantLock {
		t.Fatalf("LockPath = %q, want %q", status.LockPath, wantLock)
	}
	if len(status.SystemChecks) == 0 {
		t.Fatal("expected system check lines")
	}

	seekbar := findLine(t, status.SystemChecks, "Seekbar")
	if seekbar.Severity != "warn" || !strings.Contains(seekbar.Detail, "seekbar start") {
		t.Fatalf("offline Seekbar line = %+v", seekbar)
	}
}

func TestBuildStatusSnapshotRequiresConfig(t *testing.T) {
	if _, err := daemonctl.BuildStatusSnapshot("/tmp/none.sock", nil); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestBuildSystemChecksRunning(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutAPI())
	status := &ipc.StatusResponse{
		Running: true,
		Session: ipc.SessionStatus{
			Running:        true,
			Enhanced:       2,
			Videos:         make([]ipc.VideoSummary, 3),
			WatcherRunning: true,
		},
		Bridge: ipc.BridgeStatus{Enabled: true, Connected: true, LastSeq: 7},
	}

	lines := daemonctl.BuildSystemChecks(cfg, status)

	if line := findLine(t, lines, "Seekbar"); line.Severity != "ok" || line.Detail != "Running" {
		t.Fatalf("Seekbar line = %+v", line)
	}
	if line := findLine(t, lines, "Session"); line.Severity != "ok" || !strings.Contains(line.Detail, "2 of 3") {
		t.Fatalf("Session line = %+v", line)
	}
	if line := findLine(t, lines, "Page Bridge"); line.Severity != "ok" || !strings.Contains(line.Detail, "7") {
		t.Fatalf("Page Bridge line = %+v", line)
	}
	if line := findLine(t, lines, "HTTP API"); line.Severity != "info" || line.Detail != "Disabled" {
		t.Fatalf("HTTP API line = %+v", line)
	}
	if line := findLine(t, lines, "Log Directory"); line.Severity != "ok" {
		t.Fatalf("Log Directory line = %+v", line)
	}
}

func TestBuildSystemChecksDegradedWatcher(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutAPI())
	status := &ipc.StatusResponse{
		Running: true,
		Session: ipc.SessionStatus{
			Running:         true,
			Enhanced:        1,
			Videos:          make([]ipc.VideoSummary, 1),
			WatcherRunning:  true,
			WatcherDegraded: true,
		},
	}

	lines := daemonctl.BuildSystemChecks(cfg, status)
	session := findLine(t, lines, "Session")
	if session.Severity != "warn" || !strings.Contains(session.Detail, "degraded") {
		t.Fatalf("Session line = %+v", session)
	}
}

func TestBuildSystemChecksStopped(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutAPI())
	lines := daemonctl.BuildSystemChecks(cfg, &ipc.StatusResponse{})

	if line := findLine(t, lines, "Seekbar"); line.Severity != "warn" {
		t.Fatalf("Seekbar line = %+v", line)
	}
	// Bridge is enabled by default, so the stopped report still mentions it.
	if line := findLine(t, lines, "Page Bridge"); line.Severity != "info" || !strings.Contains(line.Detail, "daemon not running") {
		t.Fatalf("Page Bridge line = %+v", line)
	}
}

func TestDeriveLogDir(t *testing.T) {
	if got := daemonctl.DeriveLogDir("/var/log/seekbar/seekbard.lock", nil); got != "/var/log/seekbar" {
		t.Fatalf("lock-derived dir = %q", got)
	}

	cfg := config.Default()
	cfg.Paths.LogDir = "/tmp/seekbar-logs"
	if got := daemonctl.DeriveLogDir("", &cfg); got != "/tmp/seekbar-logs" {
		t.Fatalf("config-derived dir = %q", got)
	}

	if got := daemonctl.DeriveLogDir("", nil); got != "" {
		t.Fatalf("expected empty dir, got %q", got)
	}
}

func TestForceKillProcessGuards(t *testing.T) {
	dir := t.TempDir()
	pidPath := filepath.Join(dir, "seekbard.pid")

	if _, err := daemonctl.ForceKillProcess(pidPath, "", 0); err == nil {
		t.Fatal("expected error when pid is unknown")
	}

	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}
	if _, err := daemonctl.ForceKillProcess(pidPath, "", 0); err == nil || !strings.Contains(err.Error(), "refusing") {
		t.Fatalf("expected current-process refusal, got %v", err)
	}
}

func TestStopAndTerminateWhenNotRunning(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_, err := daemonctl.StopAndTerminate(cfg.SocketPath(), cfg, time.Second)
	if !errors.Is(err, daemonctl.ErrDaemonNotRunning) {
		t.Fatalf("want ErrDaemonNotRunning, got %v", err)
	}
}

func TestEnsureStartedAgainstLiveSocket(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutAPI())
	sess := testsupport.NewSession(t, cfg)

	d, err := daemon.New(cfg, sess, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv, err := ipc.NewServer(ctx, cfg.SocketPath(), d, logging.NewNop())
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("unix sockets unavailable in sandbox: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	t.Cleanup(srv.Close)
	srv.Serve()
	time.Sleep(50 * time.Millisecond)

	// The socket is reachable but the daemon is idle, so EnsureStarted
	// should start it over IPC without launching a process.
	result, err := daemonctl.EnsureStarted(cfg.SocketPath(), "/nonexistent/seekbar", daemonctl.LaunchOptions{}, time.Second)
	if err != nil {
		t.Fatalf("EnsureStarted: %v", err)
	}
	if result.State != daemonctl.StartStateStarted {
		t.Fatalf("state = %q, want %q", result.State, daemonctl.StartStateStarted)
	}
	if result.Launched {
		t.Fatal("no process launch should be needed")
	}

	result, err = daemonctl.EnsureStarted(cfg.SocketPath(), "/nonexistent/seekbar", daemonctl.LaunchOptions{}, time.Second)
	if err != nil {
		t.Fatalf("EnsureStarted second call: %v", err)
	}
	if result.State != daemonctl.StartStateAlreadyRunning {
		t.Fatalf("state = %q, want %q", result.State, daemonctl.StartStateAlreadyRunning)
	}

	alive, pid, err := daemonctl.ProcessInfo(cfg.SocketPath())
	if err != nil {
		t.Fatalf("ProcessInfo: %v", err)
	}
	if !alive || pid != os.Getpid() {
		t.Fatalf("ProcessInfo = (%v, %d), want live pid %d", alive, pid, os.Getpid())
	}

	snapshot, err := daemonctl.BuildStatusSnapshot(cfg.SocketPath(), cfg)
	if err != nil {
		t.Fatalf("BuildStatusSnapshot: %v", err)
	}
	if !snapshot.Running {
		t.Fatal("snapshot should report the running daemon")
	}
	if line := findLine(t, snapshot.SystemChecks, "Seekbar"); line.Severity != "ok" {
		t.Fatalf("Seekbar line = %+v", line)
	}
}
