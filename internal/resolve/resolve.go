// Package resolve turns raw import statements into internal module
// references and external dependency names.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"depviz/internal/errors"
	"depviz/internal/pyast"
)

// Classifier decides whether a dotted name belongs to the analyzed tree
type Classifier interface {
	IsInternal(name string) bool
}

// PathClassifier classifies by probing the filesystem under the analysis
// root: a name is internal when every segment, walked in order, is either a
// module file or a package directory (holding __init__.py). Names starting
// with a dot are always internal.
//
// Safe for concurrent use; the lookup cache is shared across workers.
type PathClassifier struct {
	root string

	mu    sync.RWMutex
	cache map[string]bool
}

// NewPathClassifier creates a classifier rooted at an absolute directory
func NewPathClassifier(root string) *PathClassifier {
	return &PathClassifier{root: root, cache: make(map[string]bool)}
}

// IsInternal reports whether the dotted name resolves inside the root
func (c *PathClassifier) IsInternal(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	c.mu.RLock()
	v, ok := c.cache[name]
	c.mu.RUnlock()
	if ok {
		return v
	}

	// every segment must hold: pkg.util.deep is external when only
	// pkg/util.py exists, because nothing answers for "deep"
	internal := true
	current := c.root
	for _, part := range strings.Split(name, ".") {
		current = filepath.Join(current, part)
		if fileExists(current + ".py") {
			continue
		}
		if dirExists(current) && fileExists(filepath.Join(current, "__init__.py")) {
			continue
		}
		internal = false
		break
	}

	c.mu.Lock()
	c.cache[name] = internal
	c.mu.Unlock()
	return internal
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Resolution is the per-module outcome of import resolution
type Resolution struct {
	// Module is the importing module's name
	Module string

	// Internal holds resolved internal module names, duplicate-free, in
	// statement order
	Internal []string

	// External holds external dependency names, duplicate-free, in
	// statement order
	External []string

	// ImportNames maps each internal target to the literal names its
	// import statements bound
	ImportNames map[string][]string

	// Diagnostics are non-fatal findings (unresolvable relative imports)
	Diagnostics []errors.Diagnostic
}

// Resolver applies classification and relative-import arithmetic
type Resolver struct {
	classifier Classifier
}

// NewResolver creates a resolver over a classifier
func NewResolver(classifier Classifier) *Resolver {
	return &Resolver{classifier: classifier}
}

// Resolve processes one module's import statements. modulePath is the
// root-relative file path, used only in diagnostics.
func (r *Resolver) Resolve(moduleName, modulePath string, imports []pyast.ImportStatement) *Resolution {
	res := &Resolution{
		Module:      moduleName,
		ImportNames: make(map[string][]string),
	}
	internalSeen := make(map[string]bool)
	externalSeen := make(map[string]bool)

	addInternal := func(target string, names []string) {
		if !internalSeen[target] {
			internalSeen[target] = true
			res.Internal = append(res.Internal, target)
		}
		nameSeen := make(map[string]bool, len(res.ImportNames[target]))
		for _, n := range res.ImportNames[target] {
			nameSeen[n] = true
		}
		for _, n := range names {
			if !nameSeen[n] {
				nameSeen[n] = true
				res.ImportNames[target] = append(res.ImportNames[target], n)
			}
		}
	}
	addExternal := func(target string) {
		if !externalSeen[target] {
			externalSeen[target] = true
			res.External = append(res.External, target)
		}
	}

	for _, stmt := range imports {
		target := stmt.Module
		if stmt.Level > 0 {
			resolved, ok := resolveRelative(moduleName, stmt.Module, stmt.Level)
			if !ok || resolved == "" {
				res.Diagnostics = append(res.Diagnostics,
					errors.NewDiagnostic(errors.ResolutionAmbiguity, modulePath,
						fmt.Sprintf("relative import (level %d) at line %d cannot be resolved within the tree", stmt.Level, stmt.Line)))
				if stmt.Module != "" {
					// best effort: classify the written module name as if it
					// were absolute, so an edge can still be attempted
					resolved = stmt.Module
				} else {
					// nothing was written; keep the dots, which stay
					// internal but can never match a discovered module
					resolved = strings.Repeat(".", stmt.Level)
				}
			}
			target = resolved
		}
		if target == "" {
			continue
		}

		if r.classifier.IsInternal(target) {
			if stmt.Wildcard {
				addInternal(target, nil)
			} else {
				addInternal(target, stmt.Names)
			}
		} else {
			addExternal(target)
		}
	}

	return res
}

// resolveRelative computes the absolute dotted target of a relative import:
// level segments are dropped from the importing module's name, then the
// written module (if any) is appended. ok is false when level exceeds the
// importing module's depth.
func resolveRelative(moduleName, written string, level int) (string, bool) {
	parts := []string{}
	if moduleName != "" {
		parts = strings.Split(moduleName, ".")
	}
	if level > len(parts) {
		return "", false
	}
	base := parts[:len(parts)-level]
	if written != "" {
		base = append(append([]string{}, base...), strings.Split(written, ".")...)
	}
	return strings.Join(base, "."), true
}
