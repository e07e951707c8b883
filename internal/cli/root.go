// Package cli wires the jlq commands, configuration and output together.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/jlabel/internal/cli/commands"
	"github.com/leapstack-labs/jlabel/internal/cli/config"
	"github.com/leapstack-labs/jlabel/internal/cli/output"
	"github.com/spf13/cobra"
)

var cfgFile string

// Set with -ldflags at release time.
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

type configKey struct{}

type rendererKey struct{}

// NewRootCmd builds the jlq command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jlq",
		Short: "jlq - full-context label question engine",
		Long: `jlq compiles HTS question sets into structured questions about Japanese
full-context labels and evaluates labels against them.

Each pattern in a set is resolved to the one label position it asks about,
and the set's values are compiled into a range for that position.`,
		Version:           Version,
		PersistentPreRunE: prepare,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: nearest jlq.yaml)")
	flags.StringP("questions", "q", "", "Question file (HTS QS lines or YAML)")
	flags.String("fallback", "", "Fallback for rejected question sets (none|noop|regex)")
	flags.Bool("strict", false, "Fail when any question set is rejected, even with a fallback")
	flags.Bool("tolerate-quirks", false, "Accept known malformed delimiters with a warning")
	flags.Int("workers", 0, "Concurrent compile and match workers (0 = GOMAXPROCS)")
	flags.BoolP("verbose", "v", false, "Log debug details to stderr")
	flags.StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	completeFixed(rootCmd, "output", "auto", "text", "markdown", "json")
	completeFixed(rootCmd, "fallback", "none", "noop", "regex")

	rootCmd.AddCommand(
		commands.NewVersionCommand(Version),
		commands.NewCheckCommand(),
		commands.NewMatchCommand(),
		commands.NewREPLCommand(),
		commands.NewPositionsCommand(),
		NewCompletionCommand(),
	)
	return rootCmd
}

func completeFixed(cmd *cobra.Command, flag string, values ...string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	})
}

// prepare loads configuration and attaches the config, logger and renderer
// to the command context. Help and completion run without a config.
func prepare(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd:
		return nil
	}

	cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
	ctx = context.WithValue(ctx, config.LoggerKey(), logger)
	ctx = context.WithValue(ctx, rendererKey{}, renderer)
	cmd.SetContext(ctx)

	if f := config.GetConfigFileUsed(); f != "" {
		logger.Debug("using config file", "file", f)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs jlq with os.Args and prints any error to stderr.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig returns the config prepared for this command, or the defaults.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Fallback:     config.DefaultFallback,
		OutputFormat: config.DefaultOutput,
	}
}

// GetRenderer returns the renderer prepared for this command, or one on the
// process's standard streams.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand prints a shell completion script.
func NewCompletionCommand() *cobra.Command {
	generators := map[string]func(*cobra.Command, io.Writer) error{
		"bash":       func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletion(w) },
		"zsh":        func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) },
		"fish":       func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) },
		"powershell": func(c *cobra.Command, w io.Writer) error { return c.GenPowerShellCompletionWithDesc(w) },
	}

	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell.

  $ source <(jlq completion bash)
  $ jlq completion zsh > "${fpath[1]}/_jlq"
  $ jlq completion fish | source
  PS> jlq completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
