package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"depviz/internal/config"
	"depviz/internal/engine"
)

var (
	cyclesFormat  string
	cyclesExclude []string
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles [path]",
	Short: "List circular dependencies in a Python tree",
	Long: `Cycles runs the analysis and prints only the circular dependency walks
as module chains. Exits with status 1 when any cycle exists, so the command
can gate CI.

Examples:
  depviz cycles
  depviz cycles --format=json src/
  depviz cycles src/ --exclude migrations`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCycles,
}

func init() {
	cyclesCmd.Flags().StringVar(&cyclesFormat, "format", "human", "Output format (json, human)")
	cyclesCmd.Flags().StringArrayVar(&cyclesExclude, "exclude", nil, "Additional directory names to exclude (repeatable)")
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) {
	root, err := resolveRoot(args)
	if err != nil {
		fatalf("%v", err)
	}

	cfg := loadConfig(root, newLogger(config.DefaultConfig()))
	cfg.Discovery.ExcludeDirs = append(cfg.Discovery.ExcludeDirs, cyclesExclude...)
	logger := newLogger(cfg)

	result, err := engine.New(root, cfg, logger).Analyze(context.Background())
	if err != nil {
		fatalf("%v", err)
	}

	resp := &CyclesResponseCLI{
		Cycles: result.Cycles,
		Count:  len(result.Cycles),
	}
	if resp.Cycles == nil {
		resp.Cycles = [][]string{}
	}

	out, err := FormatResponse(resp, OutputFormat(cyclesFormat))
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Print(out)

	if resp.Count > 0 {
		os.Exit(1)
	}
}
