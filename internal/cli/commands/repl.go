package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/jlabel/internal/bank"
	"github.com/leapstack-labs/jlabel/internal/cli/output"
	"github.com/leapstack-labs/jlabel/pkg/label"
	"github.com/leapstack-labs/jlabel/pkg/question"
	"github.com/leapstack-labs/jlabel/pkg/question/fallback"
	"github.com/spf13/cobra"
)

const replPrompt = "jlq> "

// REPLOptions holds options for the repl command.
type REPLOptions struct {
	Label string
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	opts := &REPLOptions{}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively test patterns against a label",
		Long: `Start an interactive session that compiles comma separated patterns
and shows the resulting question and whether it matches the current label.

The configured fallback applies to patterns the structured engine rejects.`,
		Example: `  jlq repl --label 'sil^n-i+h=o/A:-3+1+7/...'

  jlq> *-i+*,*-u+*
  P3 in {i,u}
  match: true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Label, "label", "l", "", "Label line to test against")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}

func runREPL(cmd *cobra.Command, opts *REPLOptions) error {
	cmdCtx := NewCommandContext(cmd)
	s, err := newREPLSession(cmdCtx, opts.Label)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     replHistoryFile(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	cmdCtx.Renderer.Println("jlq pattern REPL (phoneme: " + phonemeOf(s.label) + ")")
	cmdCtx.Renderer.Println("Type .help for commands, .quit to exit")
	cmdCtx.Renderer.Println("")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if quit := s.handle(line); quit {
			break
		}
	}
	return nil
}

// replSession evaluates REPL input against one label.
type replSession struct {
	r        *output.Renderer
	label    *label.Label
	parse    question.ParseFunc[question.AllQuestion]
	fallback bank.Fallback
}

func newREPLSession(cmdCtx *CommandContext, line string) (*replSession, error) {
	l, err := label.Parse(line)
	if err != nil {
		return nil, err
	}

	s := &replSession{r: cmdCtx.Renderer, label: l}
	s.fallback, err = bank.ParseFallback(cmdCtx.Cfg.Fallback)
	if err != nil {
		return nil, err
	}

	var qopts []question.Option
	if cmdCtx.Cfg.TolerateQuirks {
		qopts = append(qopts, question.WithQuirkHandler(func(q question.Quirk) {
			s.r.Warning(fmt.Sprintf("tolerated %q for %s: want %q, got %q", q.Pattern, q.Position, q.Want, q.Got))
		}))
	}
	s.parse = question.NewParser(qopts...)
	return s, nil
}

// handle processes one input line and reports whether the session should end.
func (s *replSession) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ".") {
		s.eval(line)
		return false
	}

	command, arg, _ := strings.Cut(line, " ")
	switch command {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(s.r.Writer())
	case ".label":
		arg = strings.TrimSpace(arg)
		if arg == "" {
			s.r.Println(s.label.String())
			break
		}
		l, err := label.Parse(arg)
		if err != nil {
			s.r.Error(err.Error())
			break
		}
		s.label = l
		s.r.Println("phoneme: " + phonemeOf(l))
	default:
		s.r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

func (s *replSession) eval(input string) {
	styles := s.r.Styles()
	patterns := splitPatterns(input)

	q, err := s.parse(patterns)
	if err == nil {
		s.r.Println(styles.Code.Render(q.String()))
		s.printMatch(q.Test(s.label), "")
		return
	}

	s.r.Println(styles.Error.Render(question.ErrorCode(err)) + " " + styles.Muted.Render(err.Error()))
	switch s.fallback {
	case bank.FallbackNoop:
		s.printMatch(false, "noop fallback")
	case bank.FallbackRegex:
		re, rerr := fallback.ParseRegex(patterns)
		if rerr != nil {
			s.r.Error(rerr.Error())
			return
		}
		s.r.Println(styles.Code.Render(re.String()))
		s.printMatch(re.Test(s.label), "regex fallback")
	}
}

func (s *replSession) printMatch(ok bool, via string) {
	styles := s.r.Styles()
	result := styles.Error.Render("false")
	if ok {
		result = styles.Success.Render("true")
	}
	if via != "" {
		result += " " + styles.Muted.Render("("+via+")")
	}
	s.r.Println("match: " + result)
}

// splitPatterns accepts "a,b", "{a,b}" and quoted patterns.
func splitPatterns(input string) []string {
	input = strings.TrimSpace(input)
	input = strings.TrimSuffix(strings.TrimPrefix(input, "{"), "}")

	var patterns []string
	for _, p := range strings.Split(input, ",") {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func replHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "jlq")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .label [line]   Show or replace the current label
  .quit / .exit   Exit the REPL

Input:
  Comma separated patterns, optionally in braces: *-a+*,*-i+*
  Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter creates a readline completer for dot-commands.
func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".label"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
