package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/session"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Plan and review practice sessions",
	}

	start := &cobra.Command{
		Use:   "start [EXERCISE...]",
		Short: "Plan a session over known exercises plus any new ones given",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.svc.StartSession(cmd.Context(), learnerID(cmd), args)
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintln(w, theme.Field("Session", plan.ID))
			fmt.Fprintln(w, theme.Field("Duration", plan.Duration))
			if len(plan.Slots) == 0 {
				fmt.Fprintln(w, theme.Hint.Render("Nothing to practice yet. Pass exercise ids to start with."))
				return nil
			}
			for i, slot := range plan.Slots {
				fmt.Fprintf(w, "%2d. %-24s %-9s mastery %3d  x%d\n",
					i+1, slot.ExerciseID, slot.Category, slot.MasteryLevel, session.AttemptsPerSlot)
			}
			return nil
		},
	}

	summary := &cobra.Command{
		Use:   "summary SESSION",
		Short: "Summarize the attempts recorded in a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := a.svc.SessionSummary(cmd.Context(), learnerID(cmd), args[0])
			if err != nil {
				return err
			}
			w := out(cmd)
			if sum.TotalAttempts == 0 {
				fmt.Fprintf(w, "No attempts recorded for session %s.\n", sum.SessionID)
				return nil
			}
			fmt.Fprintln(w, theme.Field("Attempts", fmt.Sprintf("%d (%d correct)", sum.TotalAttempts, sum.TotalCorrect)))
			fmt.Fprintln(w, theme.Field("Accuracy", fmt.Sprintf("%.0f%%", sum.Accuracy*100)))
			fmt.Fprintln(w, theme.Field("Hints", sum.HintsUsed))
			fmt.Fprintln(w, theme.Field("Duration", sum.Duration.Round(time.Second)))
			for _, r := range sum.ExerciseResults {
				fmt.Fprintf(w, "  %-24s %d/%d\n", r.ExerciseID, r.Correct, r.Attempted)
			}
			return nil
		},
	}

	cmd.AddCommand(start, summary)
	return cmd
}
