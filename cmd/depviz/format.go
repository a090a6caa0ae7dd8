package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"depviz/internal/output"
)

// OutputFormat represents the output format type for cycles/score responses
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// CyclesResponseCLI is the cycles command response
type CyclesResponseCLI struct {
	Cycles [][]string `json:"cycles"`
	Count  int        `json:"count"`
}

// ScoreEntryCLI is one ranked module in the score command response
type ScoreEntryCLI struct {
	Module     string  `json:"module"`
	Score      float64 `json:"score"`
	Imports    int     `json:"imports"`
	ImportedBy int     `json:"importedBy"`
}

// ScoreResponseCLI is the score command response
type ScoreResponseCLI struct {
	Modules []ScoreEntryCLI `json:"modules"`
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *CyclesResponseCLI:
		return formatCyclesHuman(v)
	case *ScoreResponseCLI:
		return formatScoreHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatCyclesHuman(resp *CyclesResponseCLI) (string, error) {
	if resp.Count == 0 {
		return "No circular dependencies found.\n", nil
	}
	var b strings.Builder
	for i, cycle := range resp.Cycles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.Join(cycle, " -> "))
	}
	return b.String(), nil
}

func formatScoreHuman(resp *ScoreResponseCLI) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%-50s %10s %8s %8s\n", "Module", "Score", "Deps", "Used By")
	for _, m := range resp.Modules {
		fmt.Fprintf(&b, "%-50s %10s %8d %8d\n",
			m.Module, output.FormatScore(m.Score), m.Imports, m.ImportedBy)
	}
	return b.String(), nil
}
