package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/progression"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

func newXPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xp",
		Short: "Manage experience points",
	}

	add := &cobra.Command{
		Use:   "add AMOUNT",
		Short: "Award XP to the learner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[0])
			}
			res, err := a.svc.AddXP(cmd.Context(), learnerID(cmd), amount)
			if err != nil {
				return err
			}

			w := out(cmd)
			s := res.State
			fmt.Fprintln(w, theme.Field("Total XP", s.TotalXP))
			fmt.Fprintln(w, theme.Field("Level", s.CurrentLevel))
			fmt.Fprintln(w, theme.Field("To next level", s.XPToNextLevel))
			fmt.Fprintln(w, theme.Field("Earned today", s.XPEarnedToday))
			fmt.Fprintln(w, theme.Field("Progress", theme.Bar(progression.Progress(s), 20)))
			if res.LevelUp {
				fmt.Fprintln(w, theme.Highlight.Render(fmt.Sprintf("Level up! You reached level %d.", s.CurrentLevel)))
			}
			printGems(cmd, res.Gems)
			return nil
		},
	}

	cmd.AddCommand(add)
	return cmd
}
