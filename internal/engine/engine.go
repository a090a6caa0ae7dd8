// Package engine orchestrates one analysis run: discovery, parallel parse
// and resolve, graph assembly, cycle detection and scoring.
package engine

import (
	"context"
	stderrors "errors"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"depviz/internal/config"
	"depviz/internal/depgraph"
	"depviz/internal/discovery"
	"depviz/internal/errors"
	"depviz/internal/logging"
	"depviz/internal/paths"
	"depviz/internal/pyast"
	"depviz/internal/resolve"
	"depviz/internal/version"
)

// Engine runs analyses over a fixed root with a fixed configuration
type Engine struct {
	root   string
	cfg    *config.Config
	logger *logging.Logger
}

// New creates an engine for an absolute root directory
func New(root string, cfg *config.Config, logger *logging.Logger) *Engine {
	return &Engine{root: root, cfg: cfg, logger: logger}
}

// fileOutcome is one worker's result for one module, merged in discovery order
type fileOutcome struct {
	resolution *resolve.Resolution
	parseErr   error
}

// Analyze performs a full run. All state lives in the returned Result; the
// engine itself holds nothing between runs.
func (e *Engine) Analyze(ctx context.Context) (*depgraph.Result, error) {
	if !pyast.IsAvailable() {
		return nil, errors.New(errors.InternalError,
			"source parser unavailable (built without cgo)", nil)
	}

	started := time.Now()

	scanner := discovery.NewScanner(e.root, e.cfg.Discovery, e.logger)
	modules, diags, err := scanner.Scan()
	if err != nil {
		var ae *errors.AnalyzerError
		if !stderrors.As(err, &ae) || errors.IsFatal(ae.Code) {
			return nil, err
		}
		// non-fatal discovery failure: keep whatever was found
		diags = append(diags, errors.NewDiagnostic(ae.Code, "", ae.Message))
	}

	e.logger.Info("discovery complete", map[string]interface{}{
		"modules": modules.Len(),
	})

	outcomes, err := e.resolveAll(ctx, modules)
	if err != nil {
		return nil, err
	}

	// drop unparseable files before building edges, so nothing links to a
	// module that is about to disappear
	for _, name := range append([]string{}, modules.Names()...) {
		if out, ok := outcomes[name]; ok && out.parseErr != nil {
			diags = append(diags, errors.NewDiagnostic(errors.ParseFailure,
				modules.Get(name).Path, out.parseErr.Error()))
			modules.Remove(name)
		}
	}

	builder := depgraph.NewBuilder(modules)
	for _, name := range modules.Names() {
		out, ok := outcomes[name]
		if !ok || out.resolution == nil {
			continue
		}
		builder.Apply(name, out.resolution.Internal, out.resolution.External, out.resolution.ImportNames)
		diags = append(diags, out.resolution.Diagnostics...)
	}

	edges := builder.Edges()
	cycles := depgraph.DetectCycles(modules, edges)
	depgraph.ScoreModules(modules, edges)

	byName := make(map[string]*depgraph.Module, modules.Len())
	for _, name := range modules.Names() {
		byName[name] = modules.Get(name)
	}

	result := &depgraph.Result{
		Modules:     byName,
		Order:       modules.Names(),
		Edges:       edges,
		Cycles:      cycles,
		Diagnostics: diags,
		Meta: depgraph.Meta{
			RunID:       uuid.New().String(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Version:     version.Version,
			ModuleCount: modules.Len(),
			EdgeCount:   len(edges),
			CycleCount:  len(cycles),
		},
	}

	for _, d := range result.Diagnostics {
		e.logger.Warn(d.String(), nil)
	}
	e.logger.Info("analysis complete", map[string]interface{}{
		"modules":  result.Meta.ModuleCount,
		"edges":    result.Meta.EdgeCount,
		"cycles":   result.Meta.CycleCount,
		"duration": time.Since(started).String(),
	})
	return result, nil
}

// resolveAll parses and resolves every module on a bounded worker pool.
// Results are keyed by module name; the caller merges them in discovery
// order so parallelism never changes the output.
func (e *Engine) resolveAll(ctx context.Context, modules *depgraph.ModuleSet) (map[string]fileOutcome, error) {
	workers := e.cfg.Resolve.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	timeout := time.Duration(e.cfg.Resolve.ParseTimeoutMs) * time.Millisecond

	classifier := resolve.NewPathClassifier(e.root)
	resolver := resolve.NewResolver(classifier)

	names := modules.Names()
	jobs := make(chan string)
	outcomes := make(map[string]fileOutcome, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser := pyast.NewParser()
			for name := range jobs {
				out := e.resolveOne(ctx, parser, resolver, modules.Get(name), timeout)
				mu.Lock()
				outcomes[name] = out
				mu.Unlock()
			}
		}()
	}

	var cancelled error
feed:
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break feed
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- name:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}
	return outcomes, nil
}

func (e *Engine) resolveOne(ctx context.Context, parser *pyast.Parser, resolver *resolve.Resolver, mod *depgraph.Module, timeout time.Duration) fileOutcome {
	source, err := os.ReadFile(paths.JoinRoot(e.root, mod.Path))
	if err != nil {
		return fileOutcome{parseErr: err}
	}

	parseCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		parseCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	imports, err := parser.ParseImports(parseCtx, source)
	if err != nil {
		return fileOutcome{parseErr: err}
	}
	return fileOutcome{resolution: resolver.Resolve(mod.Name, mod.Path, imports)}
}
