package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/clock"
	"github.com/abhisek/adaptly/internal/engine"
	"github.com/abhisek/adaptly/internal/gems"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the learner's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.svc.Stats(cmd.Context(), learnerID(cmd))
			if err != nil {
				return err
			}
			printStats(cmd, st)
			return nil
		},
	}
}

func printStats(cmd *cobra.Command, st *engine.Stats) {
	w := out(cmd)
	p := st.Progression

	fmt.Fprintln(w, theme.Title.Render("Progress for "+st.LearnerID))
	fmt.Fprintln(w, theme.Field("Level", fmt.Sprintf("%d (%d XP, %d to next)", p.CurrentLevel, p.TotalXP, p.XPToNextLevel)))
	fmt.Fprintln(w, theme.Field("", theme.Bar(st.LevelProgress, 24)))
	fmt.Fprintln(w, theme.Field("XP today", p.XPEarnedToday))
	fmt.Fprintln(w, theme.Field("Streak", fmt.Sprintf("%d days (best %d, freeze %s)",
		st.Streak.CurrentStreak, st.Streak.LongestStreak, freezeLabel(st.Streak.FreezeAvailable))))

	acc := 0.0
	if st.Attempts.Total > 0 {
		acc = float64(st.Attempts.Correct) / float64(st.Attempts.Total)
	}
	fmt.Fprintln(w, theme.Field("Attempts", fmt.Sprintf("%d in %d sessions, %.0f%% correct",
		st.Attempts.Total, st.Attempts.Sessions, acc*100)))

	fmt.Fprintln(w, theme.Field("Gems", st.TotalGems))
	for _, t := range gems.AllGemTypes() {
		if n := st.Gems[t]; n > 0 {
			fmt.Fprintf(w, "  %s %-12s %d\n", t.Icon(), t.DisplayName(), n)
		}
	}

	if len(st.Exercises) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, theme.Title.Render("Exercises"))
		for _, e := range st.Exercises {
			next := "-"
			if e.NextReviewDate != nil {
				next = fmt.Sprintf("%s (%s)", clock.DayKey(*e.NextReviewDate), untilLabel(e.DaysUntilReview))
			}
			fmt.Fprintf(w, "  %-24s %3d %-11s %3.0f%% %3d tries  %s  %s\n",
				e.ExerciseID, e.MasteryLevel, e.Band, e.Accuracy*100, e.Attempts,
				theme.Status(fmt.Sprintf("%-8s", e.ReviewStatus)), next)
		}
	}

	if len(st.RecentEmotions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, theme.Title.Render("Recent emotions"))
		for _, e := range st.RecentEmotions {
			fmt.Fprintf(w, "  %s  %s (%.2f) -> %s\n",
				e.Timestamp.Format("2006-01-02 15:04"), theme.Emotion(e.Emotion), e.Confidence, e.SuggestedAction)
		}
	}
}

func untilLabel(days int) string {
	switch days {
	case 0:
		return "due"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
