package depgraph

// Builder assembles edges from per-module resolution output. It owns the
// module set for the duration of one run and is not safe for concurrent use;
// the caller applies resolutions sequentially in discovery order.
type Builder struct {
	modules *ModuleSet
	edges   []*Edge
	seen    map[[2]string]*Edge
}

// NewBuilder creates a builder over a discovered module set
func NewBuilder(modules *ModuleSet) *Builder {
	return &Builder{
		modules: modules,
		seen:    make(map[[2]string]*Edge),
	}
}

// Apply merges one module's resolved imports into the graph. Internal names
// absent from the module set (filtered or missing files) are recorded on the
// module but produce no edge. importNames carries the literal bound names
// per internal target, for edge annotation.
func (b *Builder) Apply(source string, internal, external []string, importNames map[string][]string) {
	mod := b.modules.Get(source)
	if mod == nil {
		return
	}

	for _, target := range internal {
		mod.AddImport(target)

		tgt := b.modules.Get(target)
		if tgt == nil {
			continue
		}
		tgt.AddImportedBy(source)

		key := [2]string{source, target}
		if _, ok := b.seen[key]; !ok {
			e := &Edge{
				Source:      source,
				Target:      target,
				ImportNames: importNames[target],
			}
			b.seen[key] = e
			b.edges = append(b.edges, e)
		}
	}

	for _, ext := range external {
		mod.AddExternalImport(ext)
	}
}

// Edges returns the accumulated edge list in creation order
func (b *Builder) Edges() []*Edge {
	return b.edges
}
