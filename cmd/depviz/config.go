package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"depviz/internal/config"
)

var configShowFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage depviz configuration",
	Long:  "View and manage depviz configuration stored in .depviz/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Show the effective configuration",
	Long: `Display the configuration the analysis commands would run with,
including pyproject.toml excludes.

Examples:
  depviz config show
  depviz config show --format=human src/`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long: `Write the default configuration to .depviz/config.json under the
given path so it can be edited. Refuses to overwrite an existing file.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "json", "Output format (json, human)")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	root, err := resolveRoot(args)
	if err != nil {
		fatalf("%v", err)
	}

	cfg := loadConfig(root, newLogger(config.DefaultConfig()))
	out, err := FormatResponse(cfg, OutputFormat(configShowFormat))
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Print(out)
	if configShowFormat == "json" {
		fmt.Println()
	}
}

func runConfigInit(cmd *cobra.Command, args []string) {
	root, err := resolveRoot(args)
	if err != nil {
		fatalf("%v", err)
	}

	path := filepath.Join(root, ".depviz", "config.json")
	if _, err := os.Stat(path); err == nil {
		fatalf("config file already exists: %s", path)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	if err := cfg.Save(root); err != nil {
		fatalf("writing config: %v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}
