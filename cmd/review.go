package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/ui/theme"
)

func newReviewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect the spaced-repetition schedule",
	}

	due := &cobra.Command{
		Use:   "due",
		Short: "List exercises due for review, most urgent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			items, err := a.svc.DueReviews(cmd.Context(), learnerID(cmd), limit)
			if err != nil {
				return err
			}
			w := out(cmd)
			if len(items) == 0 {
				fmt.Fprintln(w, "Nothing due for review.")
				return nil
			}
			fmt.Fprintf(w, "%-24s  %-8s  %s\n", "Exercise", "Status", "Overdue")
			fmt.Fprintln(w, strings.Repeat("─", 44))
			for _, it := range items {
				fmt.Fprintf(w, "%-24s  %s  %d days\n", it.ExerciseID, theme.Status(fmt.Sprintf("%-8s", it.Status)), it.OverdueDays)
			}
			return nil
		},
	}
	due.Flags().Int("limit", 0, "Maximum number of exercises (0 = all)")

	cmd.AddCommand(due)
	return cmd
}

func newPracticeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "practice [exercise-id...]",
		Short: "Rank exercises for free-choice practice",
		Long:  "Ranks the learner's known exercises plus any new exercise ids given as arguments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ranked, err := a.svc.Practice(cmd.Context(), learnerID(cmd), args)
			if err != nil {
				return err
			}
			w := out(cmd)
			if len(ranked) == 0 {
				fmt.Fprintln(w, "No exercises yet. Pass exercise ids to rank new ones.")
				return nil
			}
			fmt.Fprintf(w, "%-4s  %-24s  %-5s  %-7s  %s\n", "#", "Exercise", "Score", "Mastery", "Why")
			fmt.Fprintln(w, strings.Repeat("─", 72))
			for i, s := range ranked {
				fmt.Fprintf(w, "%-4d  %-24s  %-5d  %-7d  %s\n", i+1, s.ID, s.Score, s.MasteryLevel, strings.Join(s.Reasons, ", "))
			}
			return nil
		},
	}
}
