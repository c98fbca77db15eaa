package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chisellabs/chisel/internal/cli/config"
	"github.com/chisellabs/chisel/internal/cli/output"
	"github.com/chisellabs/chisel/internal/engine"
	"github.com/chisellabs/chisel/pkg/pipeline"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	eng, err := createEngine(cfg, logger)
	if err != nil {
		return nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an
// engine. Useful for commands that never format files.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back
// to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	width := config.DefaultWidth
	if w, err := strconv.Atoi(os.Getenv("CHISEL_WIDTH")); err == nil && w > 0 {
		width = w
	}

	return &config.Config{
		Policy:       getEnvOrDefault("CHISEL_POLICY", config.DefaultPolicy),
		Width:        width,
		PluginsDir:   getEnvOrDefault("CHISEL_PLUGINS_DIR", config.DefaultPluginsDir),
		Verbose:      os.Getenv("CHISEL_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("CHISEL_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	var specs []engine.PassSpec
	if cfg.PassesSet {
		specs = make([]engine.PassSpec, 0, len(cfg.Passes))
		for _, p := range cfg.Passes {
			specs = append(specs, engine.PassSpec{
				Name:           p.Name,
				IgnorePrefixes: p.IgnorePrefixes,
			})
		}
	}

	passes, err := engine.ResolvePasses(specs, cfg.PluginsDir, logger)
	if err != nil {
		return nil, err
	}

	policy, err := pipeline.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	return engine.New(engine.Config{
		Passes: passes,
		Policy: policy,
		Width:  cfg.Width,
		Logger: logger,
	}), nil
}
