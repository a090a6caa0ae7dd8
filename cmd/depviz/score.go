package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"depviz/internal/config"
	"depviz/internal/engine"
	"depviz/internal/output"
)

var (
	scoreFormat string
	scoreLimit  int
)

var scoreCmd = &cobra.Command{
	Use:   "score [path]",
	Short: "Rank modules by complexity score",
	Long: `Score runs the analysis and prints modules ranked by complexity score,
highest first. The score weighs outgoing imports, fan-in, external
dependencies, and participation in circular dependencies.

Examples:
  depviz score
  depviz score --format=json
  depviz score --limit 5 src/`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "human", "Output format (json, human)")
	scoreCmd.Flags().IntVar(&scoreLimit, "limit", 0, "Limit number of modules shown (0 uses the config top-N)")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) {
	root, err := resolveRoot(args)
	if err != nil {
		fatalf("%v", err)
	}

	cfg := loadConfig(root, newLogger(config.DefaultConfig()))
	logger := newLogger(cfg)

	result, err := engine.New(root, cfg, logger).Analyze(context.Background())
	if err != nil {
		fatalf("%v", err)
	}

	limit := scoreLimit
	if limit <= 0 {
		limit = cfg.Report.TopModules
	}

	ranked := result.ModulesByScore()
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	resp := &ScoreResponseCLI{Modules: make([]ScoreEntryCLI, 0, len(ranked))}
	for _, m := range ranked {
		resp.Modules = append(resp.Modules, ScoreEntryCLI{
			Module:     m.Name,
			Score:      output.RoundScore(m.ComplexityScore),
			Imports:    len(m.Imports),
			ImportedBy: len(m.ImportedBy),
		})
	}

	out, err := FormatResponse(resp, OutputFormat(scoreFormat))
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Print(out)
}
