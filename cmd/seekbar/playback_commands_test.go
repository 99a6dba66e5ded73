package main

import (
	"testing"

	"seekbar/internal/overlay"
	"seekbar/internal/testsupport"
)

func TestCommandDispatchesToActiveVideo(t *testing.T) {
	env := setupCLITestEnv(t)
	startDaemonViaCLI(t, env)

	if _, _, err := env.daemon.LoadPage(testsupport.SamplePage("vid1")); err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	stdout, stderr, err := runCLI(t, []string{"command", "play-pause"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("command failed: %v (stderr: %s)", err, stderr)
	}
	requireContains(t, stdout, "Command executed")
}

func TestCommandUnknownTokenReportsNotHandled(t *testing.T) {
	env := setupCLITestEnv(t)
	startDaemonViaCLI(t, env)

	if _, _, err := env.daemon.LoadPage(testsupport.SamplePage("vid1")); err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"command", "warp-speed"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	requireContains(t, stdout, "not handled")
}

func TestPlaybackVerbsDispatchTokens(t *testing.T) {
	env := setupCLITestEnv(t)
	startDaemonViaCLI(t, env)

	if _, _, err := env.daemon.LoadPage(testsupport.SamplePage("vid1")); err != nil {
		t.Fatalf("LoadPage: %v", err)
	}

	verbs := [][]string{
		{"play-pause"},
		{"seek", "forward"},
		{"seek", "back"},
		{"volume", "up"},
		{"volume", "down"},
		{"speed", "up"},
		{"speed", "reset"},
	}
	for _, verb := range verbs {
		stdout, stderr, err := runCLI(t, verb, env.socketPath, env.configPath)
		if err != nil {
			t.Fatalf("%v failed: %v (stderr: %s)", verb, err, stderr)
		}
		requireContains(t, stdout, "Command executed")
	}
}

func TestCommandsListsEveryToken(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", base)

	stdout, _, err := runCLI(t, []string{"commands"}, "/nonexistent.sock", "")
	if err != nil {
		t.Fatalf("commands failed: %v", err)
	}
	for _, token := range overlay.Commands() {
		requireContains(t, stdout, token)
	}
	requireContains(t, stdout, "Play Pause")
	requireContains(t, stdout, "speed ladder")
}
