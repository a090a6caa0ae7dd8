package main

import (
	"fmt"
	"os"
	"path/filepath"

	"depviz/internal/config"
	"depviz/internal/logging"
)

// resolveRoot turns the optional positional path argument into an absolute
// analysis root (default: current directory)
func resolveRoot(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", path, err)
	}
	return abs, nil
}

// loadConfig reads the root's config, falling back to defaults when no
// config file exists, and merges pyproject.toml excludes on top.
func loadConfig(root string, logger *logging.Logger) *config.Config {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		logger.Warn("config load failed, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		cfg = config.DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		cfg = config.DefaultConfig()
	}
	if err := cfg.ApplyPyproject(root); err != nil {
		logger.Warn("pyproject.toml not applied", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return cfg
}

// newLogger builds the run logger from config, letting the persistent
// CLI flags override
func newLogger(cfg *config.Config) *logging.Logger {
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.ParseLevel(level),
	})
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
