package report

import (
	"encoding/json"
	"strings"
	"testing"

	"depviz/internal/config"
	"depviz/internal/depgraph"
)

// fixtureResult builds a small graph: a <-> b cycle, a -> numpy external
func fixtureResult() *depgraph.Result {
	s := depgraph.NewModuleSet()
	s.Add(depgraph.NewModule("a", "a.py"))
	s.Add(depgraph.NewModule("b", "b.py"))
	s.Add(depgraph.NewModule("lonely", "lonely.py"))

	b := depgraph.NewBuilder(s)
	b.Apply("a", []string{"b"}, []string{"numpy"}, map[string][]string{"b": {"helper"}})
	b.Apply("b", []string{"a"}, nil, nil)

	edges := b.Edges()
	cycles := depgraph.DetectCycles(s, edges)
	depgraph.ScoreModules(s, edges)

	byName := map[string]*depgraph.Module{}
	for _, name := range s.Names() {
		byName[name] = s.Get(name)
	}
	return &depgraph.Result{
		Modules: byName,
		Order:   s.Names(),
		Edges:   edges,
		Cycles:  cycles,
		Meta:    depgraph.Meta{ModuleCount: 3, EdgeCount: 2, CycleCount: 1},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "mermaid", "dot", "json"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", s, err)
		}
	}
	if _, err := ParseFormat("svg"); err == nil {
		t.Error("ParseFormat(svg) succeeded, want error")
	}
}

func TestText(t *testing.T) {
	got := Text(fixtureResult(), config.DefaultConfig().Report)

	for _, want := range []string{
		"DEPENDENCY ANALYSIS REPORT",
		"Total modules: 3",
		"Total dependencies: 2",
		"Circular dependency groups: 1",
		"1. a -> b -> a",
		"- a <-> b",
		"EXTERNAL DEPENDENCIES (1 unique):",
		"  numpy: 1 imports",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("text report missing %q\n%s", want, got)
		}
	}
}

func TestTextNoCoupling(t *testing.T) {
	s := depgraph.NewModuleSet()
	s.Add(depgraph.NewModule("solo", "solo.py"))
	r := &depgraph.Result{
		Modules: map[string]*depgraph.Module{"solo": s.Get("solo")},
		Order:   s.Names(),
	}
	got := Text(r, config.DefaultConfig().Report)
	if !strings.Contains(got, "No tightly coupled components found.") {
		t.Errorf("report missing coupling fallback:\n%s", got)
	}
}

func TestMermaid(t *testing.T) {
	t.Run("styles cycle members and labels circular edges", func(t *testing.T) {
		got := Mermaid(fixtureResult(), Options{Report: config.DefaultConfig().Report})
		for _, want := range []string{
			"graph TD",
			`    a["a"]:::circular`,
			`    b["b"]:::circular`,
			`    lonely["lonely"]`,
			"    a -->|circular| b",
			"classDef circular",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("mermaid output missing %q\n%s", want, got)
			}
		}
		if strings.Contains(got, "numpy") {
			t.Error("external node present without ShowExternal")
		}
	})

	t.Run("show external adds dashed edges", func(t *testing.T) {
		got := Mermaid(fixtureResult(), Options{ShowExternal: true, Report: config.DefaultConfig().Report})
		for _, want := range []string{
			`    numpy("numpy"):::external`,
			"    a -.-> numpy",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("mermaid output missing %q\n%s", want, got)
			}
		}
	})
}

func TestDot(t *testing.T) {
	got := Dot(fixtureResult(), Options{ShowExternal: true, Report: config.DefaultConfig().Report})
	for _, want := range []string{
		"digraph dependencies {",
		"    rankdir=TB;",
		"    node [shape=box];",
		`    "a" [fillcolor="#ff6b6b", style=filled];`,
		`    "a" -> "b" [color=red, penwidth=2];`,
		`    "numpy" [shape=ellipse, style=dashed];`,
		`    "a" -> "numpy" [style=dashed];`,
		"}",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dot output missing %q\n%s", want, got)
		}
	}
}

func TestJSON(t *testing.T) {
	raw, err := JSON(fixtureResult())
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var rep struct {
		Nodes []struct {
			ID         string  `json:"id"`
			Score      float64 `json:"complexityScore"`
			IsCircular bool    `json:"isCircular"`
		} `json:"nodes"`
		Links []struct {
			Source     string   `json:"source"`
			Imports    []string `json:"imports"`
			IsCircular bool     `json:"isCircular"`
		} `json:"links"`
		CircularDependencies [][]string `json:"circularDependencies"`
	}
	if err := json.Unmarshal([]byte(raw), &rep); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(rep.Nodes) != 3 || rep.Nodes[0].ID != "a" {
		t.Errorf("nodes = %v, want a first of 3", rep.Nodes)
	}
	if !rep.Nodes[0].IsCircular {
		t.Error("node a not marked circular")
	}
	if len(rep.Links) != 2 || rep.Links[0].Imports[0] != "helper" {
		t.Errorf("links = %v, want import names carried", rep.Links)
	}
	if len(rep.CircularDependencies) != 1 {
		t.Errorf("circularDependencies = %v, want 1 cycle", rep.CircularDependencies)
	}
}

func TestJSONDeterministic(t *testing.T) {
	a, err := JSON(fixtureResult())
	if err != nil {
		t.Fatal(err)
	}
	b, err := JSON(fixtureResult())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("identical results serialized differently")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render(fixtureResult(), Format("svg"), Options{}); err == nil {
		t.Error("Render(svg) succeeded, want error")
	}
}
