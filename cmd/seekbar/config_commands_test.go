package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", base)
	target := filepath.Join(base, "seekbar", "config.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "/nonexistent.sock", "")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	requireContains(t, stdout, "Wrote sample configuration to")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[player]") {
		t.Fatalf("sample missing player section:\n%s", data)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "/nonexistent.sock", "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already-exists error, got %v", err)
	}

	stdout, _, err = runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "/nonexistent.sock", "")
	if err != nil {
		t.Fatalf("config init --overwrite failed: %v", err)
	}
	requireContains(t, stdout, "Wrote sample configuration to")
}

func TestConfigShowRendersSettings(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	configPath := filepath.Join(base, "config.toml")
	logDir := filepath.Join(base, "logs")
	writeTestConfig(t, configPath, logDir)

	stdout, _, err := runCLI(t, []string{"config", "show"}, "/nonexistent.sock", configPath)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	requireContains(t, stdout, "Config path: "+configPath)
	requireContains(t, stdout, logDir)
	requireContains(t, stdout, "bridge enabled")
	requireContains(t, stdout, "disabled")
}

func TestConfigShowJSON(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	configPath := filepath.Join(base, "config.toml")
	logDir := filepath.Join(base, "logs")
	writeTestConfig(t, configPath, logDir)

	stdout, _, err := runCLI(t, []string{"config", "show", "--json"}, "/nonexistent.sock", configPath)
	if err != nil {
		t.Fatalf("config show --json failed: %v", err)
	}

	var report struct {
		Path     string  `json:"path"`
		Exists   bool    `json:"exists"`
		LogDir   string  `json:"log_dir"`
		Bridge   bool    `json:"bridge_enabled"`
		SeekStep float64 `json:"seek_step_seconds"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("parse output: %v\n%s", err, stdout)
	}
	if !report.Exists || report.Path != configPath {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.LogDir != logDir {
		t.Fatalf("log dir = %q, want %q", report.LogDir, logDir)
	}
	if report.Bridge {
		t.Fatal("expected bridge disabled")
	}
	if report.SeekStep != 5 {
		t.Fatalf("seek step = %v, want default 5", report.SeekStep)
	}
}

func TestConfigShowMissingFileUsesDefaults(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", base)

	stdout, _, err := runCLI(t, []string{"config", "show"}, "/nonexistent.sock", "")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	requireContains(t, stdout, "defaults are in effect")
}
