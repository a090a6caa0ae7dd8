package main

import (
	"github.com/spf13/cobra"

	"depviz/internal/version"
)

var (
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "depviz",
	Short: "depviz - Python dependency graph analyzer",
	Long: `depviz statically analyzes a Python source tree and builds its module
dependency graph: internal imports become edges, external packages are
tracked separately, circular dependencies are detected, and every module
gets a complexity score derived from the graph topology.`,
	Version: version.Info(),
}

func init() {
	rootCmd.SetVersionTemplate("depviz version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: json or human (default from config)")
}
