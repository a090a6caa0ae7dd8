// Package depgraph holds the dependency-graph model: modules, edges, cycle
// detection, and the complexity score derived from graph topology.
package depgraph

import (
	"sort"

	"depviz/internal/errors"
)

// Module represents one source file treated as a unit of the dependency graph
type Module struct {
	// Name is the canonical dotted identifier derived from the file path
	Name string `json:"name"`

	// Path is the root-relative file location
	Path string `json:"path"`

	// Imports are internal module names this module depends on, in
	// resolution order, duplicate-free. Names may reference modules absent
	// from the graph (excluded by filters); edges never do.
	Imports []string `json:"imports"`

	// ImportedBy are internal module names that depend on this module,
	// maintained as the inverse of Imports for graph edges
	ImportedBy []string `json:"importedBy"`

	// ExternalImports are opaque dependency names never resolved further
	ExternalImports []string `json:"externalImports"`

	// ComplexityScore is derived from graph topology; valid only after the
	// scoring pass over the finished graph
	ComplexityScore float64 `json:"complexityScore"`

	importSet   map[string]bool
	importedSet map[string]bool
	externalSet map[string]bool
}

// NewModule creates a Module for a discovered file
func NewModule(name, path string) *Module {
	return &Module{
		Name:            name,
		Path:            path,
		Imports:         []string{},
		ImportedBy:      []string{},
		ExternalImports: []string{},
		importSet:       make(map[string]bool),
		importedSet:     make(map[string]bool),
		externalSet:     make(map[string]bool),
	}
}

// AddImport records an internal import, keeping the set duplicate-free
func (m *Module) AddImport(name string) {
	if !m.importSet[name] {
		m.importSet[name] = true
		m.Imports = append(m.Imports, name)
	}
}

// AddImportedBy records a reverse edge from an importing module
func (m *Module) AddImportedBy(name string) {
	if !m.importedSet[name] {
		m.importedSet[name] = true
		m.ImportedBy = append(m.ImportedBy, name)
	}
}

// AddExternalImport records an external dependency name
func (m *Module) AddExternalImport(name string) {
	if !m.externalSet[name] {
		m.externalSet[name] = true
		m.ExternalImports = append(m.ExternalImports, name)
	}
}

// Edge is a directed source -> target dependency between two internal modules
type Edge struct {
	// Source and Target are module names
	Source string `json:"source"`
	Target string `json:"target"`

	// ImportNames are the literal names bound by the import statements,
	// for diagnostic display; empty for wildcard imports
	ImportNames []string `json:"importNames,omitempty"`

	// IsCircular is true iff this (source, target) pair lies on at least
	// one detected cycle. Set once by cycle detection, never reset.
	IsCircular bool `json:"isCircular"`
}

// ModuleSet is the discovered module collection. It preserves discovery
// order so that every later pass iterates deterministically.
type ModuleSet struct {
	byName map[string]*Module
	order  []string
}

// NewModuleSet creates an empty module set
func NewModuleSet() *ModuleSet {
	return &ModuleSet{byName: make(map[string]*Module)}
}

// Add inserts a module. If the name is already present the new module
// replaces it (last-discovered wins) and the previous module is returned so
// the caller can surface the collision.
func (s *ModuleSet) Add(m *Module) *Module {
	if prev, ok := s.byName[m.Name]; ok {
		s.byName[m.Name] = m
		return prev
	}
	s.byName[m.Name] = m
	s.order = append(s.order, m.Name)
	return nil
}

// Get returns the module for a name, or nil
func (s *ModuleSet) Get(name string) *Module {
	return s.byName[name]
}

// Contains reports whether a name was discovered
func (s *ModuleSet) Contains(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Remove drops a module, e.g. when its file failed to parse
func (s *ModuleSet) Remove(name string) {
	if _, ok := s.byName[name]; !ok {
		return
	}
	delete(s.byName, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Names returns module names in discovery order
func (s *ModuleSet) Names() []string {
	return s.order
}

// Len returns the number of modules
func (s *ModuleSet) Len() int {
	return len(s.byName)
}

// Meta describes one analysis run (pyscn-style response metadata)
type Meta struct {
	RunID       string `json:"runId"`
	GeneratedAt string `json:"generatedAt"`
	Version     string `json:"version"`
	ModuleCount int    `json:"moduleCount"`
	EdgeCount   int    `json:"edgeCount"`
	CycleCount  int    `json:"cycleCount"`
}

// Result is the externally consumed outcome of one analysis run. All data
// is owned by the run and discarded after projection.
type Result struct {
	// Modules maps module name -> Module
	Modules map[string]*Module `json:"modules"`

	// Order is the deterministic module iteration order (discovery order)
	Order []string `json:"-"`

	// Edges is the flat edge list in creation order
	Edges []*Edge `json:"edges"`

	// Cycles are ordered walks [m0, m1, ..., mk, m0], one per DFS back-edge
	Cycles [][]string `json:"cycles"`

	// Diagnostics are the per-file, non-fatal findings of the run
	Diagnostics []errors.Diagnostic `json:"diagnostics,omitempty"`

	Meta Meta `json:"meta"`
}

// InCycle reports whether a module name appears in any recorded cycle
func (r *Result) InCycle(name string) bool {
	for _, cycle := range r.Cycles {
		for _, n := range cycle {
			if n == name {
				return true
			}
		}
	}
	return false
}

// ModulesByScore returns modules sorted by complexity score descending,
// name ascending as tiebreak.
func (r *Result) ModulesByScore() []*Module {
	mods := make([]*Module, 0, len(r.Order))
	for _, name := range r.Order {
		mods = append(mods, r.Modules[name])
	}
	sort.SliceStable(mods, func(i, j int) bool {
		if mods[i].ComplexityScore != mods[j].ComplexityScore {
			return mods[i].ComplexityScore > mods[j].ComplexityScore
		}
		return mods[i].Name < mods[j].Name
	})
	return mods
}

// CircularEdges returns the edges flagged circular, in edge-list order
func (r *Result) CircularEdges() []*Edge {
	var out []*Edge
	for _, e := range r.Edges {
		if e.IsCircular {
			out = append(out, e)
		}
	}
	return out
}

// PackageCount pairs a leading external package segment with its import count
type PackageCount struct {
	Package string `json:"package"`
	Count   int    `json:"count"`
}

// ExternalByPackage groups external dependency names by their leading
// segment, sorted by package name.
func (r *Result) ExternalByPackage() []PackageCount {
	counts := make(map[string]int)
	for _, name := range r.Order {
		for _, ext := range r.Modules[name].ExternalImports {
			pkg := ext
			for i := 0; i < len(ext); i++ {
				if ext[i] == '.' {
					pkg = ext[:i]
					break
				}
			}
			counts[pkg]++
		}
	}

	out := make([]PackageCount, 0, len(counts))
	for pkg, n := range counts {
		out = append(out, PackageCount{Package: pkg, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Package < out[j].Package })
	return out
}
