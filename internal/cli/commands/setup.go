package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/leapstack-labs/jlabel/internal/bank"
	"github.com/leapstack-labs/jlabel/internal/cli/config"
	"github.com/leapstack-labs/jlabel/internal/cli/output"
	"github.com/spf13/cobra"
)

// ErrNoQuestions is returned when a command needs a question file and none
// was given as an argument, flag, env var or config key.
var ErrNoQuestions = errors.New("no question file given\nHint: pass a file argument, use --questions, or set questions in jlq.yaml")

// CommandContext is what every jlq command needs: config, logger, renderer.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a renderer for the
// configured output mode.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
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

// QuestionsPath returns the question file from the first argument or the
// configuration.
func (c *CommandContext) QuestionsPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if c.Cfg.Questions != "" {
		return c.Cfg.Questions, nil
	}
	return "", ErrNoQuestions
}

// LoadBank reads and compiles the question file at path.
func (c *CommandContext) LoadBank(ctx context.Context, path string) (*bank.Bank, error) {
	sets, err := bank.LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded question file", "file", path, "sets", len(sets))
	return bank.Compile(ctx, sets, c.Cfg.BankConfig(c.Logger))
}

// getConfig returns the loaded config. Commands run outside the root command
// (tests, mostly) get one built from JLQ_ env vars.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	workers, _ := strconv.Atoi(os.Getenv(config.EnvPrefix + "WORKERS"))
	return &config.Config{
		Questions:      os.Getenv(config.EnvPrefix + "QUESTIONS"),
		Fallback:       getEnvOrDefault(config.EnvPrefix+"FALLBACK", config.DefaultFallback),
		Strict:         os.Getenv(config.EnvPrefix+"STRICT") == "true",
		TolerateQuirks: os.Getenv(config.EnvPrefix+"TOLERATE_QUIRKS") == "true",
		Workers:        workers,
		Verbose:        os.Getenv(config.EnvPrefix+"VERBOSE") == "true",
		OutputFormat:   getEnvOrDefault(config.EnvPrefix+"OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
