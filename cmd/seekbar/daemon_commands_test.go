package main

import (
	"path/filepath"
	"testing"

	"seekbar/internal/testsupport"
)

func TestStartCommandStartsIdleDaemon(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, err := runCLI(t, []string{"start"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("start failed: %v (stderr: %s)", err, stderr)
	}
	requireContains(t, stdout, "Daemon started")

	stdout, _, err = runCLI(t, []string{"start"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	requireContains(t, stdout, "Daemon already running")
}

func TestStatusCommandRendersSystemReport(t *testing.T) {
	env := setupCLITestEnv(t)
	startDaemonViaCLI(t, env)

	if _, _, err := env.daemon.LoadPage(testsupport.SamplePage("vid1")); err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	stdout, stderr, err := runCLI(t, []string{"status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status failed: %v (stderr: %s)", err, stderr)
	}
	requireContains(t, stdout, "System Status")
	requireContains(t, stdout, "Seekbar")
	requireContains(t, stdout, "Running")
	requireContains(t, stdout, "1 of 1 videos enhanced")
	requireContains(t, stdout, "Videos")
	requireContains(t, stdout, "vid1")
}

func TestStatusCommandOffline(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, filepath.Join(base, "logs"))

	stdout, stderr, err := runCLI(t, []string{"status"}, filepath.Join(base, "missing.sock"), configPath)
	if err != nil {
		t.Fatalf("status failed: %v (stderr: %s)", err, stderr)
	}
	requireContains(t, stdout, "Not running")
	requireContains(t, stdout, "No videos tracked")
}

func TestStopCommandWhenDaemonNotRunning(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, filepath.Join(base, "logs"))

	stdout, stderr, err := runCLI(t, []string{"stop"}, filepath.Join(base, "missing.sock"), configPath)
	if err != nil {
		t.Fatalf("stop failed: %v (stderr: %s)", err, stderr)
	}
	requireContains(t, stdout, "Daemon is not running")
}
