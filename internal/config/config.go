package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete depviz configuration
type Config struct {
	Version int    `json:"version" mapstructure:"version"`
	Root    string `json:"root" mapstructure:"root"`

	Discovery DiscoveryConfig `json:"discovery" mapstructure:"discovery"`
	Resolve   ResolveConfig   `json:"resolve" mapstructure:"resolve"`
	Report    ReportConfig    `json:"report" mapstructure:"report"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// DiscoveryConfig contains module discovery configuration
type DiscoveryConfig struct {
	// ExcludeDirs are directory names skipped anywhere in the tree
	ExcludeDirs []string `json:"excludeDirs" mapstructure:"excludeDirs"`

	// Extensions lists eligible source-file extensions
	Extensions []string `json:"extensions" mapstructure:"extensions"`

	// MaxFileSizeBytes skips files larger than this
	MaxFileSizeBytes int `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`

	// MaxFiles bounds the walk on pathological trees
	MaxFiles int `json:"maxFiles" mapstructure:"maxFiles"`
}

// ResolveConfig contains per-file resolution configuration
type ResolveConfig struct {
	// Workers is the resolution worker count; 0 means GOMAXPROCS
	Workers int `json:"workers" mapstructure:"workers"`

	// ParseTimeoutMs guards a single file parse against pathological input
	ParseTimeoutMs int `json:"parseTimeoutMs" mapstructure:"parseTimeoutMs"`
}

// ReportConfig contains report projection configuration
type ReportConfig struct {
	// ComplexityThreshold marks a module as complex in diagram projections
	ComplexityThreshold float64 `json:"complexityThreshold" mapstructure:"complexityThreshold"`

	// TopModules is how many modules the text report ranks by score
	TopModules int `json:"topModules" mapstructure:"topModules"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Root:    ".",
		Discovery: DiscoveryConfig{
			ExcludeDirs: []string{
				".venv", "venv", "env", "__pycache__", ".git",
				"build", "dist", ".tox", "node_modules",
			},
			Extensions:       []string{".py", ".pyw"},
			MaxFileSizeBytes: 1000000,
			MaxFiles:         10000,
		},
		Resolve: ResolveConfig{
			Workers:        0,
			ParseTimeoutMs: 10000,
		},
		Report: ReportConfig{
			ComplexityThreshold: 10,
			TopModules:          10,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .depviz/config.json under root.
// A missing config file is not an error; defaults are returned.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("root", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".depviz"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .depviz/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".depviz")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if len(c.Discovery.Extensions) == 0 {
		return &ConfigError{Field: "discovery.extensions", Message: "at least one extension required"}
	}
	if c.Resolve.Workers < 0 {
		return &ConfigError{Field: "resolve.workers", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
