// Package discovery walks the analysis root and produces the module set:
// every source file that passes the configured filters, named by its
// root-relative dotted path.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"depviz/internal/config"
	"depviz/internal/depgraph"
	"depviz/internal/errors"
	"depviz/internal/logging"
	"depviz/internal/paths"
)

// Scanner discovers Python modules under a root directory
type Scanner struct {
	root   string
	cfg    config.DiscoveryConfig
	logger *logging.Logger
}

// NewScanner creates a scanner for an absolute root path
func NewScanner(root string, cfg config.DiscoveryConfig, logger *logging.Logger) *Scanner {
	return &Scanner{root: root, cfg: cfg, logger: logger}
}

// Scan walks the root and returns the module set in walk order, plus
// non-fatal diagnostics (unreadable subtrees, name collisions). A missing
// or unreadable root is the only fatal condition.
func (s *Scanner) Scan() (*depgraph.ModuleSet, []errors.Diagnostic, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, nil, errors.New(errors.RootMissing,
			"analysis root does not exist", err).WithDetails(s.root)
	}
	if !info.IsDir() {
		return nil, nil, errors.New(errors.RootMissing,
			"analysis root is not a directory", nil).WithDetails(s.root)
	}

	excluded := make(map[string]bool, len(s.cfg.ExcludeDirs))
	for _, d := range s.cfg.ExcludeDirs {
		excluded[d] = true
	}

	modules := depgraph.NewModuleSet()
	var diags []errors.Diagnostic
	truncated := false

	walkErr := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// record the unreadable entry and keep walking siblings
			rel := s.relOrRaw(path)
			diags = append(diags, errors.NewDiagnostic(errors.DiscoveryPath, rel, err.Error()))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if path != s.root && excluded[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.matchesExtension(info.Name()) {
			return nil
		}
		if s.cfg.MaxFileSizeBytes > 0 && info.Size() > int64(s.cfg.MaxFileSizeBytes) {
			s.logger.Debug("skipping oversized file", map[string]interface{}{
				"path": s.relOrRaw(path),
				"size": info.Size(),
			})
			return nil
		}

		if !paths.IsWithinRoot(path, s.root) {
			// escapes the root after symlink resolution; contributes no module
			return nil
		}
		rel, err := paths.Canonicalize(path, s.root)
		if err != nil {
			return nil
		}

		if s.cfg.MaxFiles > 0 && modules.Len() >= s.cfg.MaxFiles {
			truncated = true
			return filepath.SkipAll
		}

		name := ModuleNameFromPath(rel)
		if name == "" {
			// root-level package initializer; names the root itself
			return nil
		}
		mod := depgraph.NewModule(name, rel)
		if prev := modules.Add(mod); prev != nil {
			diags = append(diags, errors.NewDiagnostic(errors.NameCollision, rel,
				fmt.Sprintf("module name %q already provided by %s; keeping this file", name, prev.Path)))
		}
		return nil
	})
	if walkErr != nil {
		// partial results are still usable; the caller decides fatality
		return modules, diags, errors.New(errors.DiscoveryPath, "walking analysis root failed", walkErr)
	}

	if truncated {
		s.logger.Warn("file limit reached, discovery truncated", map[string]interface{}{
			"maxFiles": s.cfg.MaxFiles,
		})
	}
	s.logger.Debug("discovery complete", map[string]interface{}{
		"modules": modules.Len(),
	})
	return modules, diags, nil
}

func (s *Scanner) matchesExtension(name string) bool {
	for _, ext := range s.cfg.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (s *Scanner) relOrRaw(path string) string {
	if rel, err := filepath.Rel(s.root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// ModuleNameFromPath converts a root-relative slash path to a dotted module
// name: the extension is stripped, a trailing __init__ segment is dropped so
// a package is named by its directory, and the remaining segments join with
// dots. A bare top-level __init__.py yields "" and is skipped by Scan.
func ModuleNameFromPath(rel string) string {
	trimmed := strings.TrimSuffix(rel, filepath.Ext(rel))
	parts := strings.Split(trimmed, "/")
	if len(parts) > 0 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}
