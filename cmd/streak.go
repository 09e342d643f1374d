package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/engine"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

func newStreakCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Track daily activity streaks",
	}

	checkin := &cobra.Command{
		Use:   "checkin",
		Short: "Record activity for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.CheckIn(cmd.Context(), learnerID(cmd))
			if err != nil {
				return err
			}
			printStreak(cmd, res)
			printGems(cmd, res.Gems)
			return nil
		},
	}

	freeze := &cobra.Command{
		Use:   "freeze",
		Short: "Manage the streak freeze",
	}
	use := &cobra.Command{
		Use:   "use",
		Short: "Spend the banked freeze on today",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.UseFreeze(cmd.Context(), learnerID(cmd))
			if err != nil {
				return err
			}
			if !res.Changed {
				fmt.Fprintln(out(cmd), theme.Warn.Render("No freeze available."))
			}
			printStreak(cmd, res)
			return nil
		},
	}
	earn := &cobra.Command{
		Use:   "earn",
		Short: "Bank a streak freeze",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.EarnFreeze(cmd.Context(), learnerID(cmd))
			if err != nil {
				return err
			}
			if !res.Changed {
				fmt.Fprintln(out(cmd), theme.Warn.Render("A freeze is already banked."))
			}
			printStreak(cmd, res)
			return nil
		},
	}
	freeze.AddCommand(use, earn)

	cmd.AddCommand(checkin, freeze)
	return cmd
}

func printStreak(cmd *cobra.Command, res *engine.StreakResult) {
	w := out(cmd)
	s := res.State
	fmt.Fprintln(w, theme.Field("Current streak", fmt.Sprintf("%d days", s.CurrentStreak)))
	fmt.Fprintln(w, theme.Field("Longest streak", fmt.Sprintf("%d days", s.LongestStreak)))
	fmt.Fprintln(w, theme.Field("Freeze", freezeLabel(s.FreezeAvailable)))
	if res.Outcome != "" {
		fmt.Fprintln(w, theme.Field("Outcome", res.Outcome))
	}
}

func freezeLabel(available bool) string {
	if available {
		return "available"
	}
	return "used"
}
