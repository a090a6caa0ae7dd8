package main

import (
	"os"
	"path/filepath"
	"testing"

	"depviz/internal/compression"
	"depviz/internal/config"
)

func TestResolveRoot(t *testing.T) {
	t.Run("defaults to current directory", func(t *testing.T) {
		got, err := resolveRoot(nil)
		if err != nil {
			t.Fatalf("resolveRoot() error: %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("resolveRoot() = %q, want absolute path", got)
		}
	})

	t.Run("absolutizes the argument", func(t *testing.T) {
		dir := t.TempDir()
		got, err := resolveRoot([]string{dir})
		if err != nil {
			t.Fatalf("resolveRoot() error: %v", err)
		}
		if got != dir {
			t.Errorf("resolveRoot(%q) = %q", dir, got)
		}
	})
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("deps.json", false); got != "deps.json" {
		t.Errorf("outputPath = %q, want deps.json", got)
	}
	if got := outputPath("deps.json", true); got != "deps.json"+compression.GzipSuffix {
		t.Errorf("outputPath = %q, want gz suffix", got)
	}
}

func TestEmit(t *testing.T) {
	t.Run("writes plain file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		if err := emit("hello", path, false); err != nil {
			t.Fatalf("emit() error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "hello" {
			t.Errorf("file content = %q, want hello", data)
		}
	})

	t.Run("writes gzipped file with suffix", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		if err := emit(`{"nodes":[]}`, path, true); err != nil {
			t.Fatalf("emit() error: %v", err)
		}
		if _, err := os.Stat(path + compression.GzipSuffix); err != nil {
			t.Errorf("gzipped file missing: %v", err)
		}
	})
}

func TestLoadConfigFallsBackOnInvalid(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".depviz"), 0755); err != nil {
		t.Fatal(err)
	}
	bad := `{"version": 99, "discovery": {"extensions": [".py"]}}`
	if err := os.WriteFile(filepath.Join(root, ".depviz", "config.json"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := loadConfig(root, newLogger(config.DefaultConfig()))
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want default 1 after rejecting invalid config", cfg.Version)
	}
}

func TestNewLoggerOverrides(t *testing.T) {
	origLevel, origFormat := logLevelFlag, logFormatFlag
	defer func() { logLevelFlag, logFormatFlag = origLevel, origFormat }()

	logLevelFlag = "debug"
	logFormatFlag = "json"
	if l := newLogger(config.DefaultConfig()); l == nil {
		t.Fatal("newLogger returned nil")
	}
}
