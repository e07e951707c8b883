package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/leapstack-labs/jlabel/internal/cli/output"
	"github.com/leapstack-labs/jlabel/pkg/label"
	"github.com/spf13/cobra"
)

// MatchOptions holds options for the match command.
type MatchOptions struct {
	Labels     []string // Label lines given on the command line
	LabelsFile string   // File with one label per line, "-" for stdin
}

// NewMatchCommand creates the match command.
func NewMatchCommand() *cobra.Command {
	opts := &MatchOptions{}
	cmd := &cobra.Command{
		Use:   "match [questions-file]",
		Short: "List the questions each label satisfies",
		Long: `Evaluate full-context labels against every question in a question file.

Sets the structured engine rejects are evaluated with the configured
fallback (--fallback noop|regex) or skipped when there is none.`,
		Example: `  # Match a single label
  jlq match questions.hed --label 'sil^n-i+h=o/A:-3+1+7/...'

  # Match every line of a label file
  jlq match questions.hed --labels utt.lab

  # Read labels from stdin, JSON output
  cat utt.lab | jlq match questions.hed --labels - -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Labels, "label", "l", nil, "Label line to match (repeatable)")
	cmd.Flags().StringVar(&opts.LabelsFile, "labels", "", "File with one label per line (- for stdin)")
	cmd.MarkFlagsOneRequired("label", "labels")

	return cmd
}

// MatchResult is one label in the match JSON output.
type MatchResult struct {
	Index   int      `json:"index"`
	Phoneme string   `json:"phoneme"`
	Matches []string `json:"matches"`
}

func runMatch(cmd *cobra.Command, args []string, opts *MatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	path, err := cmdCtx.QuestionsPath(args)
	if err != nil {
		return err
	}

	lines := opts.Labels
	if opts.LabelsFile != "" {
		fromFile, err := readLabelLines(cmd.InOrStdin(), opts.LabelsFile)
		if err != nil {
			return err
		}
		lines = append(lines, fromFile...)
	}

	labels, err := parseLabels(lines)
	if err != nil {
		return err
	}

	b, err := cmdCtx.LoadBank(cmd.Context(), path)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	if skipped := len(b.Rejected()); skipped > 0 && b.Err() != nil {
		r.Warning(fmt.Sprintf("%d question(s) rejected and skipped (see jlq check)", skipped))
	}

	matches, err := b.MatchAll(cmd.Context(), labels)
	if err != nil {
		return err
	}

	results := make([]MatchResult, len(labels))
	for i, l := range labels {
		results[i] = MatchResult{
			Index:   i + 1,
			Phoneme: phonemeOf(l),
			Matches: matches[i],
		}
		if results[i].Matches == nil {
			results[i].Matches = []string{}
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(results)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Matches"))
		r.Println("")
	default:
		r.Header(1, "Matches")
	}
	rows := make([][]string, len(results))
	for i, res := range results {
		rows[i] = []string{strconv.Itoa(res.Index), res.Phoneme, strings.Join(res.Matches, ", ")}
	}
	r.Table([]string{"#", "Phoneme", "Questions"}, rows)
	return nil
}

func readLabelLines(stdin io.Reader, path string) ([]string, error) {
	var in io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path) //nolint:gosec // path comes from the user
		if err != nil {
			return nil, fmt.Errorf("failed to open label file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	var lines []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	return lines, nil
}

// parseLabels parses non-empty lines. Lab files with "start end label"
// timing columns are accepted; only the last column is parsed.
func parseLabels(lines []string) ([]*label.Label, error) {
	var labels []*label.Label
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		l, err := label.Parse(fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("label %d: %w", i+1, err)
		}
		labels = append(labels, l)
	}
	if len(labels) == 0 {
		return nil, errors.New("no labels to match")
	}
	return labels, nil
}

func phonemeOf(l *label.Label) string {
	if l.Phoneme.C == nil {
		return "xx"
	}
	return *l.Phoneme.C
}
