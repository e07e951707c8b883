package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"

	"github.com/leapstack-labs/jlabel/internal/bank"
	"github.com/leapstack-labs/jlabel/internal/cli/output"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Watch bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [questions-file]",
		Short: "Compile a question file and report every set",
		Long: `Compile every question set in a question file and report its position
and range, or the reason the set was rejected.

Question files are either HTS question lines (QS "name" {pat,...}) or YAML
(.yaml/.yml). The command fails when a set is rejected and no fallback is
configured, or when --strict is set and any set is rejected.`,
		Example: `  # Check the bank named in jlq.yaml
  jlq check

  # Check a file, accepting regex fallbacks
  jlq check questions.hed --fallback regex

  # Re-check on every save
  jlq check questions.hed --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-check when the question file changes")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	path, err := cmdCtx.QuestionsPath(args)
	if err != nil {
		return err
	}

	if !opts.Watch {
		return checkOnce(cmd.Context(), cmdCtx, path)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var mu sync.Mutex
	recheck := func() {
		mu.Lock()
		defer mu.Unlock()
		if err := checkOnce(ctx, cmdCtx, path); err != nil {
			cmdCtx.Renderer.Error(err.Error())
		}
	}

	recheck()
	cmdCtx.Renderer.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", path))
	return bank.Watch(ctx, path, cmdCtx.Logger, recheck)
}

// CheckEntry is one set in the check JSON output.
type CheckEntry struct {
	Name     string `json:"name"`
	Line     int    `json:"line,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Position string `json:"position,omitempty"`
	Question string `json:"question,omitempty"`
	Code     string `json:"code,omitempty"`
	Error    string `json:"error,omitempty"`
	Fallback string `json:"fallback,omitempty"`
	Quirks   int    `json:"quirks,omitempty"`
}

// CheckOutput is the JSON output structure for the check command.
type CheckOutput struct {
	File    string       `json:"file"`
	Entries []CheckEntry `json:"entries"`
	Summary CheckSummary `json:"summary"`
}

// CheckSummary counts the outcome of a check.
type CheckSummary struct {
	Total    int `json:"total"`
	Compiled int `json:"compiled"`
	Rejected int `json:"rejected"`
	Fallback int `json:"fallback"`
}

func checkOnce(ctx context.Context, cmdCtx *CommandContext, path string) error {
	b, err := cmdCtx.LoadBank(ctx, path)
	if err != nil {
		return err
	}

	result := buildCheckOutput(path, b)

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(result); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderCheckMarkdown(r, result)
	default:
		renderCheckText(r, result)
	}

	if err := b.Err(); err != nil {
		return fmt.Errorf("%d question(s) failed to compile: %w", result.Summary.Rejected-result.Summary.Fallback, err)
	}
	if cmdCtx.Cfg.Strict && result.Summary.Rejected > 0 {
		return fmt.Errorf("%d question(s) rejected in strict mode", result.Summary.Rejected)
	}
	return nil
}

func buildCheckOutput(path string, b *bank.Bank) CheckOutput {
	result := CheckOutput{File: path, Entries: make([]CheckEntry, 0, len(b.Entries))}
	for _, e := range b.Entries {
		entry := CheckEntry{
			Name:     e.Name,
			Line:     e.Line,
			Fallback: string(e.Fallback),
			Quirks:   len(e.Quirks),
		}
		if e.OK() {
			entry.Kind = e.Question.Kind().String()
			entry.Position = e.Question.Position().String()
			entry.Question = e.Question.String()
			result.Summary.Compiled++
		} else {
			entry.Code = e.Code
			entry.Error = e.Err.Error()
			result.Summary.Rejected++
			if e.Fallback != "" {
				result.Summary.Fallback++
			}
		}
		result.Entries = append(result.Entries, entry)
	}
	result.Summary.Total = len(b.Entries)
	return result
}

func checkRows(result CheckOutput) [][]string {
	rows := make([][]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		detail := e.Question
		if e.Code != "" {
			detail = e.Code
			if e.Fallback != "" {
				detail += " (" + e.Fallback + " fallback)"
			}
		} else if e.Quirks > 0 {
			detail += " (quirk tolerated)"
		}
		rows = append(rows, []string{strconv.Itoa(e.Line), e.Name, e.Kind, e.Position, detail})
	}
	return rows
}

var checkHeader = []string{"Line", "Name", "Kind", "Position", "Question"}

func renderCheckText(r *output.Renderer, result CheckOutput) {
	styles := r.Styles()

	r.Println("")
	r.Header(1, "Questions "+styles.Muted.Render(result.File))
	r.Table(checkHeader, checkRows(result))

	s := result.Summary
	if s.Rejected == 0 {
		r.Success(fmt.Sprintf("%d question(s) compiled", s.Compiled))
		return
	}
	msg := fmt.Sprintf("%d of %d question(s) rejected", s.Rejected, s.Total)
	if s.Fallback > 0 {
		msg += fmt.Sprintf(", %d served by fallback", s.Fallback)
	}
	r.Warning(msg)
}

func renderCheckMarkdown(r *output.Renderer, result CheckOutput) {
	r.Println(output.FormatHeader(1, "Questions"))
	r.Println("")
	r.Println(output.FormatKeyValue("File", result.File))
	r.Println(output.FormatKeyValue("Compiled", strconv.Itoa(result.Summary.Compiled)))
	r.Println(output.FormatKeyValue("Rejected", strconv.Itoa(result.Summary.Rejected)))
	r.Println(output.FormatKeyValue("Fallback", strconv.Itoa(result.Summary.Fallback)))
	r.Println("")
	r.Table(checkHeader, checkRows(result))
}
