package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/ui/theme"
)

func newPresentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "present SKILL",
		Short: "Pick the best presentation of a skill for the learner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := a.svc.Present(cmd.Context(), learnerID(cmd), args[0])
			if err != nil {
				return err
			}
			w := out(cmd)
			if sel == nil {
				fmt.Fprintf(w, "No active presentation for %s. Import a rule pack with 'adaptly rules import'.\n", args[0])
				return nil
			}
			fmt.Fprintln(w, theme.Title.Render(sel.Candidate.ID))
			fmt.Fprintln(w, theme.Field("Score", fmt.Sprintf("%.1f", sel.Score)))
			if t := sel.Candidate.Target.PedagogicalApproach; t != "" {
				fmt.Fprintln(w, theme.Field("Approach", t))
			}
			if d := sel.Candidate.EstimatedDurationMinutes; d > 0 {
				fmt.Fprintln(w, theme.Field("Duration", fmt.Sprintf("%d min", d)))
			}
			fmt.Fprintln(w, theme.Field("Why", strings.Join(sel.Reasons, ", ")))
			return nil
		},
	}
}
