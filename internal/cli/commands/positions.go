package commands

import (
	"fmt"

	"github.com/leapstack-labs/jlabel/internal/cli/output"
	"github.com/leapstack-labs/jlabel/pkg/question"
	"github.com/spf13/cobra"
)

// PositionsOptions holds options for the positions command.
type PositionsOptions struct {
	Check bool
}

// NewPositionsCommand creates the positions command.
func NewPositionsCommand() *cobra.Command {
	opts := &PositionsOptions{}
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "List the label positions patterns can ask about",
		Long: `List every full-context label position with its kind and the delimiters
that surround it on the wire. A pattern asks about a position when its text
sits between those delimiters.`,
		Example: `  jlq positions
  jlq positions --check
  jlq positions -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPositions(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Check, "check", false, "Verify the position resolution tables")

	return cmd
}

// PositionInfo is one position in the positions JSON output.
type PositionInfo struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
	Canonical string `json:"canonical"`
}

func runPositions(cmd *cobra.Command, opts *PositionsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if opts.Check {
		if err := question.SelfCheck(); err != nil {
			return fmt.Errorf("position tables are inconsistent: %w", err)
		}
		r.Success(fmt.Sprintf("%d positions resolve from their canonical patterns", len(question.AllPositions())))
		return nil
	}

	positions := question.AllPositions()
	infos := make([]PositionInfo, len(positions))
	for i, pos := range positions {
		prefix, suffix := question.Hint(pos)
		infos[i] = PositionInfo{
			Name:      pos.String(),
			Kind:      pos.Kind().String(),
			Prefix:    prefix,
			Suffix:    suffix,
			Canonical: question.CanonicalPattern(pos),
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(infos)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Positions"))
		r.Println("")
	default:
		r.Header(1, "Positions")
	}

	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{info.Name, info.Kind, info.Prefix, info.Suffix, info.Canonical}
	}
	r.Table([]string{"Position", "Kind", "Prefix", "Suffix", "Canonical"}, rows)
	return nil
}
