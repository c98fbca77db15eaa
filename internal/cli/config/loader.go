package config

import (
	"context"
	"fmt"
	"io"
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

// maxUpwardSearchLevels limits how far up the directory tree to search for
// config files.
const maxUpwardSearchLevels = 10

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// GetConfigFileUsed returns the path of the config file that was loaded,
// or "" when only defaults/env/flags applied.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// configExistsIn checks if a chisel config file exists in the directory,
// returning its path.
func configExistsIn(dir string) string {
	for _, name := range []string{"chisel.yaml", "chisel.yml"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigFile finds the config file to use.
// Priority: explicit path > chisel.yaml/yml in CWD or any parent.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configExistsIn(dir); found != "" {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// LoadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config file >
// defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"policy":      DefaultPolicy,
		"width":       DefaultWidth,
		"plugins_dir": DefaultPluginsDir,
		"verbose":     false,
		"output":      DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (CHISEL_ prefix)
	// Transform: CHISEL_PLUGINS_DIR -> plugins_dir
	if err := k.Load(env.Provider("CHISEL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CHISEL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.PassesSet = k.Exists("passes")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}
