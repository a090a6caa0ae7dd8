package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"depviz/internal/compression"
	"depviz/internal/config"
	"depviz/internal/engine"
	"depviz/internal/report"
)

var (
	analyzeFormat       string
	analyzeOutput       string
	analyzeShowExternal bool
	analyzeExclude      []string
	analyzeCompress     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a Python tree and render its dependency graph",
	Long: `Analyze builds the full dependency graph for a Python source tree and
renders it in the requested format.

Examples:
  depviz analyze                          # text report for the current directory
  depviz analyze --format mermaid src/    # Mermaid diagram (renders on GitHub)
  depviz analyze --format dot -o deps.dot # Graphviz DOT file
  depviz analyze --format json --compress -o deps.json.gz
  depviz analyze --show-external          # include external packages in diagrams
  depviz analyze --exclude migrations     # extra directory name to skip

Output formats:
  text     - Human-readable analysis report
  mermaid  - Mermaid diagram
  dot      - DOT format for Graphviz
  json     - Machine-readable JSON data`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "Output format (text, mermaid, dot, json)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Output file (default: stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeShowExternal, "show-external", false, "Include external dependencies in visualization")
	analyzeCmd.Flags().StringArrayVar(&analyzeExclude, "exclude", nil, "Additional directory names to exclude (repeatable)")
	analyzeCmd.Flags().BoolVar(&analyzeCompress, "compress", false, "Gzip the output file (requires --output)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	format, err := report.ParseFormat(analyzeFormat)
	if err != nil {
		fatalf("%v", err)
	}
	if analyzeCompress && analyzeOutput == "" {
		fatalf("--compress requires --output")
	}

	root, err := resolveRoot(args)
	if err != nil {
		fatalf("%v", err)
	}

	cfg := loadConfigWithExcludes(root)
	logger := newLogger(cfg)

	logger.Info("analyzing dependencies", map[string]interface{}{"root": root})

	result, err := engine.New(root, cfg, logger).Analyze(context.Background())
	if err != nil {
		fatalf("%v", err)
	}
	if len(result.Order) == 0 {
		logger.Info("no Python modules found", map[string]interface{}{"root": root})
		os.Exit(0)
	}

	content, err := report.Render(result, format, report.Options{
		ShowExternal: analyzeShowExternal,
		Report:       cfg.Report,
	})
	if err != nil {
		fatalf("%v", err)
	}

	if err := emit(content, analyzeOutput, analyzeCompress); err != nil {
		fatalf("%v", err)
	}
	if analyzeOutput != "" {
		logger.Info("output saved", map[string]interface{}{"path": outputPath(analyzeOutput, analyzeCompress)})
	}
}

func loadConfigWithExcludes(root string) *config.Config {
	bootstrap := newLogger(config.DefaultConfig())
	cfg := loadConfig(root, bootstrap)
	cfg.Discovery.ExcludeDirs = append(cfg.Discovery.ExcludeDirs, analyzeExclude...)
	return cfg
}

func outputPath(path string, compress bool) string {
	if compress {
		return path + compression.GzipSuffix
	}
	return path
}

// emit writes rendered content to the output file (optionally gzipped) or
// to stdout
func emit(content, path string, compress bool) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}

	f, err := os.Create(outputPath(path, compress))
	if err != nil {
		return err
	}
	defer f.Close()

	if compress {
		return compression.WriteGzip(f, []byte(content))
	}
	_, err = f.WriteString(content)
	return err
}
