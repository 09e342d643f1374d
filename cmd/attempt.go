package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/clock"
	"github.com/abhisek/adaptly/internal/engine"
	"github.com/abhisek/adaptly/internal/gems"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

func newAttemptCmd(a *app) *cobra.Command {
	var in engine.AttemptInput

	cmd := &cobra.Command{
		Use:   "attempt",
		Short: "Record an answered exercise",
		Example: `  adaptly attempt --exercise fractions-1 --correct --time-ms 8000
  adaptly attempt --exercise fractions-2 --time-ms 42000 --hints 2 --session 3f1c...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.LearnerID = learnerID(cmd)
			res, err := a.svc.RecordAttempt(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := out(cmd)
			verdict := theme.Bad.Render("incorrect")
			if in.Correct {
				verdict = theme.Good.Render("correct")
			}
			fmt.Fprintf(w, "%s %s (quality %d)\n", theme.Title.Render(in.ExerciseID), verdict, res.Quality)
			fmt.Fprintln(w, theme.Field("Next review", fmt.Sprintf("%s (in %d days)", clock.DayKey(res.Review.NextReviewDate), res.Review.Interval)))
			fmt.Fprintln(w, theme.Field("Ease factor", fmt.Sprintf("%.2f", res.Review.EaseFactor)))
			fmt.Fprintln(w, theme.Field("Mastery", fmt.Sprintf("%d (%s)", res.MasteryLevel, res.Band)))
			fmt.Fprintln(w, theme.Field("XP", fmt.Sprintf("+%d (total %d, level %d)", res.XPAwarded, res.Progression.TotalXP, res.Progression.CurrentLevel)))
			fmt.Fprintln(w, theme.Field("Streak", fmt.Sprintf("%d days (%s)", res.Streak.CurrentStreak, res.StreakOutcome)))
			if c := res.BandChange; c != nil {
				if c.Promoted() {
					fmt.Fprintln(w, theme.Good.Render(fmt.Sprintf("Moved up to %s!", c.To)))
				} else {
					fmt.Fprintln(w, theme.Warn.Render(fmt.Sprintf("Slipped back to %s.", c.To)))
				}
			}
			if res.LevelUp {
				fmt.Fprintln(w, theme.Highlight.Render(fmt.Sprintf("Level up! You reached level %d.", res.Progression.CurrentLevel)))
			}
			printGems(cmd, res.Gems)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&in.ExerciseID, "exercise", "e", "", "Exercise id")
	f.StringVar(&in.SessionID, "session", "", "Session id from 'session start'")
	f.BoolVar(&in.Correct, "correct", false, "The answer was correct")
	f.IntVar(&in.TimeMs, "time-ms", 0, "Time spent answering in milliseconds")
	f.IntVar(&in.ExpectedMs, "expected-ms", 0, "Expected answer time in milliseconds (default from config)")
	f.IntVar(&in.HintsUsed, "hints", 0, "Number of hints used")
	_ = cmd.MarkFlagRequired("exercise")
	return cmd
}

func printGems(cmd *cobra.Command, awards []gems.GemAward) {
	for _, g := range awards {
		fmt.Fprintf(out(cmd), "%s %s gem (%s): %s\n",
			g.Type.Icon(), g.Type.DisplayName(), theme.Rarity(string(g.Rarity)), g.Reason)
	}
}
