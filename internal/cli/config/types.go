// Package config provides configuration management for the jlq CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Questions is the question file compiled by commands that take no
	// explicit file argument.
	Questions      string `koanf:"questions"`
	Fallback       string `koanf:"fallback"`
	Strict         bool   `koanf:"strict"`
	TolerateQuirks bool   `koanf:"tolerate_quirks"`
	Workers        int    `koanf:"workers"`
	Verbose        bool   `koanf:"verbose"`
	OutputFormat   string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultFallback = "none"
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix       = "JLQ_"
)

// configFileNames are searched in order.
var configFileNames = []string{"jlq.yaml", "jlq.yml"}
