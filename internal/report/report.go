// Package report projects an analysis result into its output formats:
// a text report, Mermaid and Graphviz diagrams, and machine-readable JSON.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"depviz/internal/config"
	"depviz/internal/depgraph"
	"depviz/internal/errors"
	"depviz/internal/output"
)

// Format identifies a report projection
type Format string

const (
	FormatText    Format = "text"
	FormatMermaid Format = "mermaid"
	FormatDot     Format = "dot"
	FormatJSON    Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatMermaid, FormatDot, FormatJSON:
		return Format(s), nil
	}
	return "", errors.New(errors.UnsupportedFormat,
		fmt.Sprintf("unknown output format %q (want text, mermaid, dot or json)", s), nil)
}

// Options controls projection behavior
type Options struct {
	// ShowExternal includes external dependency nodes in diagram formats
	ShowExternal bool

	// Report carries the threshold and top-N settings
	Report config.ReportConfig
}

// Render projects a result into the requested format
func Render(r *depgraph.Result, format Format, opts Options) (string, error) {
	switch format {
	case FormatText:
		return Text(r, opts.Report), nil
	case FormatMermaid:
		return Mermaid(r, opts), nil
	case FormatDot:
		return Dot(r, opts), nil
	case FormatJSON:
		return JSON(r)
	}
	return "", errors.New(errors.UnsupportedFormat, fmt.Sprintf("unknown output format %q", format), nil)
}

// Text renders the human-readable analysis report
func Text(r *depgraph.Result, cfg config.ReportConfig) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 40)

	b.WriteString(rule + "\n")
	b.WriteString("DEPENDENCY ANALYSIS REPORT\n")
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "Total modules: %d\n", len(r.Order))
	fmt.Fprintf(&b, "Total dependencies: %d\n", len(r.Edges))
	fmt.Fprintf(&b, "Circular dependency groups: %d\n\n", len(r.Cycles))

	if len(r.Cycles) > 0 {
		b.WriteString("CIRCULAR DEPENDENCIES:\n" + thin + "\n")
		for i, cycle := range r.Cycles {
			fmt.Fprintf(&b, "%d. %s\n", i+1, strings.Join(cycle, " -> "))
		}
		b.WriteString("\n")
	}

	top := cfg.TopModules
	if top <= 0 {
		top = 10
	}
	ranked := r.ModulesByScore()
	if len(ranked) > top {
		ranked = ranked[:top]
	}

	b.WriteString("MOST COMPLEX MODULES:\n" + thin + "\n")
	fmt.Fprintf(&b, "%-50s %10s %8s %8s\n", "Module", "Score", "Deps", "Used By")
	b.WriteString(strings.Repeat("-", 80) + "\n")
	for _, m := range ranked {
		if m.ComplexityScore > 0 {
			fmt.Fprintf(&b, "%-50s %10.1f %8d %8d\n",
				m.Name, m.ComplexityScore, len(m.Imports), len(m.ImportedBy))
		}
	}
	b.WriteString("\n")

	b.WriteString("TIGHTLY COUPLED COMPONENTS:\n" + thin + "\n")
	pairs := coupledPairs(r)
	for _, p := range pairs {
		fmt.Fprintf(&b, "- %s <-> %s\n", p[0], p[1])
	}
	if len(pairs) == 0 {
		b.WriteString("No tightly coupled components found.\n")
	}
	b.WriteString("\n")

	external := r.ExternalByPackage()
	fmt.Fprintf(&b, "EXTERNAL DEPENDENCIES (%d unique):\n", uniqueExternalCount(r))
	b.WriteString(thin + "\n")
	for _, pc := range external {
		fmt.Fprintf(&b, "  %s: %d imports\n", pc.Package, pc.Count)
	}

	return b.String()
}

// coupledPairs finds module pairs that import each other, each pair reported
// once in first-edge order.
func coupledPairs(r *depgraph.Result) [][2]string {
	forward := make(map[[2]string]bool, len(r.Edges))
	for _, e := range r.Edges {
		forward[[2]string{e.Source, e.Target}] = true
	}
	seen := make(map[[2]string]bool)
	var pairs [][2]string
	for _, e := range r.Edges {
		if !forward[[2]string{e.Target, e.Source}] {
			continue
		}
		if seen[[2]string{e.Target, e.Source}] || seen[[2]string{e.Source, e.Target}] {
			continue
		}
		seen[[2]string{e.Source, e.Target}] = true
		pairs = append(pairs, [2]string{e.Source, e.Target})
	}
	return pairs
}

func uniqueExternalCount(r *depgraph.Result) int {
	seen := make(map[string]bool)
	for _, name := range r.Order {
		for _, ext := range r.Modules[name].ExternalImports {
			seen[ext] = true
		}
	}
	return len(seen)
}

// sortedExternals returns every distinct external name, sorted
func sortedExternals(r *depgraph.Result) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range r.Order {
		for _, ext := range r.Modules[name].ExternalImports {
			if !seen[ext] {
				seen[ext] = true
				out = append(out, ext)
			}
		}
	}
	sort.Strings(out)
	return out
}

func nodeID(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// Mermaid renders a Mermaid flowchart. Modules on a cycle are styled
// circular, modules over the complexity threshold complex; external nodes
// appear only with ShowExternal.
func Mermaid(r *depgraph.Result, opts Options) string {
	threshold := opts.Report.ComplexityThreshold
	if threshold <= 0 {
		threshold = 10
	}

	lines := []string{"graph TD"}

	for _, name := range r.Order {
		m := r.Modules[name]
		label := nodeID(name)
		switch {
		case r.InCycle(name):
			lines = append(lines, fmt.Sprintf("    %s[%q]:::circular", label, name))
		case m.ComplexityScore > threshold:
			lines = append(lines, fmt.Sprintf("    %s[%q]:::complex", label, name))
		default:
			lines = append(lines, fmt.Sprintf("    %s[%q]", label, name))
		}
	}

	for _, e := range r.Edges {
		if e.IsCircular {
			lines = append(lines, fmt.Sprintf("    %s -->|circular| %s", nodeID(e.Source), nodeID(e.Target)))
		} else {
			lines = append(lines, fmt.Sprintf("    %s --> %s", nodeID(e.Source), nodeID(e.Target)))
		}
	}

	if opts.ShowExternal {
		for _, ext := range sortedExternals(r) {
			lines = append(lines, fmt.Sprintf("    %s(%q):::external", nodeID(ext), ext))
		}
		for _, name := range r.Order {
			for _, ext := range r.Modules[name].ExternalImports {
				lines = append(lines, fmt.Sprintf("    %s -.-> %s", nodeID(name), nodeID(ext)))
			}
		}
	}

	lines = append(lines,
		"",
		"    classDef circular fill:#ff6b6b,stroke:#c92a2a,stroke-width:2px",
		"    classDef complex fill:#ffe066,stroke:#f59f00,stroke-width:2px",
		"    classDef external fill:#e9ecef,stroke:#868e96,stroke-width:1px,stroke-dasharray: 5 5",
	)
	return strings.Join(lines, "\n")
}

// Dot renders Graphviz DOT output
func Dot(r *depgraph.Result, opts Options) string {
	threshold := opts.Report.ComplexityThreshold
	if threshold <= 0 {
		threshold = 10
	}

	lines := []string{
		"digraph dependencies {",
		"    rankdir=TB;",
		"    node [shape=box];",
		"",
	}

	for _, name := range r.Order {
		m := r.Modules[name]
		switch {
		case r.InCycle(name):
			lines = append(lines, fmt.Sprintf("    %q [fillcolor=\"#ff6b6b\", style=filled];", name))
		case m.ComplexityScore > threshold:
			lines = append(lines, fmt.Sprintf("    %q [fillcolor=\"#ffe066\", style=filled];", name))
		}
	}

	for _, e := range r.Edges {
		if e.IsCircular {
			lines = append(lines, fmt.Sprintf("    %q -> %q [color=red, penwidth=2];", e.Source, e.Target))
		} else {
			lines = append(lines, fmt.Sprintf("    %q -> %q;", e.Source, e.Target))
		}
	}

	if opts.ShowExternal {
		lines = append(lines, "", "    // External dependencies")
		for _, ext := range sortedExternals(r) {
			lines = append(lines, fmt.Sprintf("    %q [shape=ellipse, style=dashed];", ext))
		}
		for _, name := range r.Order {
			for _, ext := range r.Modules[name].ExternalImports {
				lines = append(lines, fmt.Sprintf("    %q -> %q [style=dashed];", name, ext))
			}
		}
	}

	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

type jsonNode struct {
	ID              string   `json:"id"`
	Imports         []string `json:"imports"`
	ImportedBy      []string `json:"importedBy"`
	ExternalImports []string `json:"externalImports"`
	ComplexityScore float64  `json:"complexityScore"`
	IsCircular      bool     `json:"isCircular"`
}

type jsonLink struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Imports    []string `json:"imports"`
	IsCircular bool     `json:"isCircular"`
}

type jsonReport struct {
	Nodes                []jsonNode    `json:"nodes"`
	Links                []jsonLink    `json:"links"`
	CircularDependencies [][]string    `json:"circularDependencies"`
	Meta                 depgraph.Meta `json:"meta"`
}

// JSON renders the machine-readable projection. Nodes follow module
// discovery order and links follow edge creation order, so identical inputs
// serialize identically.
func JSON(r *depgraph.Result) (string, error) {
	rep := jsonReport{
		Nodes:                make([]jsonNode, 0, len(r.Order)),
		Links:                make([]jsonLink, 0, len(r.Edges)),
		CircularDependencies: r.Cycles,
		Meta:                 r.Meta,
	}
	if rep.CircularDependencies == nil {
		rep.CircularDependencies = [][]string{}
	}

	for _, name := range r.Order {
		m := r.Modules[name]
		rep.Nodes = append(rep.Nodes, jsonNode{
			ID:              name,
			Imports:         m.Imports,
			ImportedBy:      m.ImportedBy,
			ExternalImports: m.ExternalImports,
			ComplexityScore: output.RoundScore(m.ComplexityScore),
			IsCircular:      r.InCycle(name),
		})
	}
	for _, e := range r.Edges {
		imports := e.ImportNames
		if imports == nil {
			imports = []string{}
		}
		rep.Links = append(rep.Links, jsonLink{
			Source:     e.Source,
			Target:     e.Target,
			Imports:    imports,
			IsCircular: e.IsCircular,
		})
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", errors.New(errors.InternalError, "encoding JSON report failed", err)
	}
	return string(data), nil
}
