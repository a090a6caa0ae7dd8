package depgraph

// Score weights. Circular involvement dominates because a cycle is the
// costliest structure to untangle; fan-in is cheapest since being depended
// on is not the module's own doing.
const (
	weightImports    = 1.0
	weightImportedBy = 0.5
	weightExternal   = 2.0
	weightCircular   = 5.0
)

// ScoreModules assigns every module its complexity score from the finished
// graph. The circular term counts the module's outgoing edges that lie on a
// cycle, so each module in a two-cycle pays for exactly one edge.
func ScoreModules(modules *ModuleSet, edges []*Edge) {
	circularOut := make(map[string]int)
	for _, e := range edges {
		if e.IsCircular {
			circularOut[e.Source]++
		}
	}

	for _, name := range modules.Names() {
		m := modules.Get(name)
		m.ComplexityScore = weightImports*float64(len(m.Imports)) +
			weightImportedBy*float64(len(m.ImportedBy)) +
			weightExternal*float64(len(m.ExternalImports)) +
			weightCircular*float64(circularOut[name])
	}
}
