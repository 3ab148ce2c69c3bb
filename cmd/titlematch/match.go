package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/titlematch/pkg/api"
	"github.com/hazyhaar/titlematch/pkg/engine"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <title>...",
		Short: "Normalize job titles from the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMatch,
	}
	cmd.Flags().Bool("explain", false, "print the scored candidates with per-metric scores")
	cmd.Flags().Int("limit", api.DefaultExplainLimit, "number of candidates printed with --explain")
	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	e, err := cfg.BuildEngine(cmd.Context())
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	explain, _ := cmd.Flags().GetBool("explain")
	limit, _ := cmd.Flags().GetInt("limit")
	out := cmd.OutOrStdout()
	for _, input := range args {
		if m, ok := e.NormalizeDetailed(input); ok {
			fmt.Fprintf(out, "%s\t%s\t%.4f\n", input, m.Title, m.Score)
		} else {
			fmt.Fprintf(out, "%s\t-\n", input)
		}
		if explain {
			printCandidates(out, e.Rank(input, limit))
		}
	}
	return nil
}

func printCandidates(w io.Writer, cands []engine.Candidate) {
	for _, c := range cands {
		mark := " "
		if c.Accepted {
			mark = "*"
		}
		parts := make([]string, 0, len(c.Breakdown))
		for name, score := range c.Breakdown {
			parts = append(parts, fmt.Sprintf("%s=%.4f", name, score))
		}
		slices.Sort(parts)
		fmt.Fprintf(w, "  %s %-30s %.4f  %s\n", mark, c.Title, c.Score, strings.Join(parts, " "))
	}
}
