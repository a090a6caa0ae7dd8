package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// PyprojectFile is the conventional location for tool configuration in
// Python projects. Only the [tool.depviz] table is read.
const PyprojectFile = "pyproject.toml"

// pyprojectTool is the [tool.depviz] table of pyproject.toml
type pyprojectTool struct {
	// Exclude lists additional directory names to exclude from discovery
	Exclude []string `toml:"exclude"`
}

type pyprojectFile struct {
	Tool struct {
		Depviz pyprojectTool `toml:"depviz"`
	} `toml:"tool"`
}

// LoadPyprojectExcludes reads extra exclusion directories from
// pyproject.toml [tool.depviz] if the file exists. A missing file yields
// no excludes; a malformed file is an error the caller may downgrade.
func LoadPyprojectExcludes(root string) ([]string, error) {
	path := filepath.Join(root, PyprojectFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var pf pyprojectFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", PyprojectFile, err)
	}

	return pf.Tool.Depviz.Exclude, nil
}

// ApplyPyproject merges pyproject.toml excludes into the discovery config,
// skipping duplicates.
func (c *Config) ApplyPyproject(root string) error {
	extra, err := LoadPyprojectExcludes(root)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Discovery.ExcludeDirs))
	for _, dir := range c.Discovery.ExcludeDirs {
		seen[dir] = true
	}
	for _, dir := range extra {
		if !seen[dir] {
			c.Discovery.ExcludeDirs = append(c.Discovery.ExcludeDirs, dir)
			seen[dir] = true
		}
	}

	return nil
}
