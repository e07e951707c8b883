package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

type loggerKey struct{}

// maxUpwardSearchLevels bounds the search for jlq.yaml above the working directory.
const maxUpwardSearchLevels = 10

var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

func configExistsIn(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigFile returns explicit when set, otherwise the nearest jlq.yaml or
// jlq.yml at or above the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for range maxUpwardSearchLevels {
		if found := configExistsIn(dir); found != "" {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// ResetConfig clears loaded state between tests.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig merges defaults, the config file, JLQ_ environment variables and
// explicitly set flags, each layer overriding the one before.
//
// A relative questions path read from the config file is resolved against
// the file's directory. Paths from env vars and flags are left as given.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	if err := loadDefaults(); err != nil {
		return nil, err
	}

	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := loadFile(configFileUsed); err != nil {
			return nil, err
		}
	}

	// JLQ_TOLERATE_QUIRKS -> tolerate_quirks
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := loadFlags(flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	currentConfig = &cfg
	return &cfg, nil
}

func loadDefaults() error {
	if err := k.Load(confmap.Provider(map[string]any{
		"questions":       "",
		"fallback":        DefaultFallback,
		"strict":          false,
		"tolerate_quirks": false,
		"workers":         0,
		"verbose":         false,
		"output":          DefaultOutput,
	}, "."), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	return nil
}

func loadFile(path string) error {
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	q := k.String("questions")
	if q == "" || filepath.IsAbs(q) {
		return nil
	}
	if err := k.Set("questions", filepath.Join(filepath.Dir(path), q)); err != nil {
		return fmt.Errorf("failed to resolve questions path: %w", err)
	}
	return nil
}

// loadFlags applies only flags the user set, so unset flag defaults never
// mask the file or the environment. --config itself is not a config key.
func loadFlags(flags *pflag.FlagSet) error {
	err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed || f.Name == "config" {
			return "", nil
		}
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load flags: %w", err)
	}
	return nil
}

// GetConfigFileUsed returns the config file the last load read, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the last loaded configuration, nil before LoadConfig.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey is the context key the root command stores its logger under.
// It lives here so commands can read it without importing package cli.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger returns the logger stored in ctx, or one that discards.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}
