package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/emotion"
	"github.com/abhisek/adaptly/internal/engine"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

func newEmotionCmd(a *app) *cobra.Command {
	var sig emotion.Signals

	cmd := &cobra.Command{
		Use:   "emotion",
		Short: "Detect how the learner is feeling",
		Long: `Detects the learner's emotional state. With --session the signals are computed
from the session's recorded attempts and the detection is saved. Without it the
signals given as flags are classified and nothing is recorded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, _ := cmd.Flags().GetString("session")
			if sessionID != "" {
				res, err := a.svc.DetectEmotion(cmd.Context(), learnerID(cmd), sessionID)
				if err != nil {
					return err
				}
				printSignals(cmd, res.Signals)
				printDetection(cmd, res)
				return nil
			}

			name := ""
			if l, err := a.svc.Profile(cmd.Context(), learnerID(cmd)); err == nil && l != nil {
				name = l.DisplayName
			}
			d, err := a.svc.Classify(cmd.Context(), sig, name)
			if err != nil {
				return err
			}
			printDetection(cmd, &engine.EmotionResult{Detection: d, Signals: sig})
			return nil
		},
	}

	f := cmd.Flags()
	f.String("session", "", "Session id whose attempts supply the signals")
	f.Float64Var(&sig.ResponseTimeAvg, "response-time-avg", 0, "Average response time in seconds")
	f.Float64Var(&sig.ResponseTimeRatio, "ratio", 1, "Observed over expected response time")
	f.IntVar(&sig.ConsecutiveErrors, "errors", 0, "Consecutive wrong answers")
	f.IntVar(&sig.ConsecutiveCorrect, "streak", 0, "Consecutive correct answers")
	f.Float64Var(&sig.SessionDurationMinutes, "minutes", 0, "Session duration in minutes")
	f.IntVar(&sig.HintRequests, "hints", 0, "Hints requested")
	f.Float64Var(&sig.SuccessRate, "success-rate", 0.5, "Fraction answered correctly (0-1)")
	f.StringVar(&sig.EnergyLevel, "energy", "", "Energy level: low, medium, high")
	return cmd
}

func printSignals(cmd *cobra.Command, s emotion.Signals) {
	w := out(cmd)
	fmt.Fprintln(w, theme.Field("Avg response", fmt.Sprintf("%.1fs (ratio %.2f)", s.ResponseTimeAvg, s.ResponseTimeRatio)))
	fmt.Fprintln(w, theme.Field("Run", fmt.Sprintf("%d correct / %d wrong", s.ConsecutiveCorrect, s.ConsecutiveErrors)))
	fmt.Fprintln(w, theme.Field("Success rate", fmt.Sprintf("%.0f%%", s.SuccessRate*100)))
	fmt.Fprintln(w, theme.Field("Hints", s.HintRequests))
	fmt.Fprintln(w, theme.Field("Duration", fmt.Sprintf("%.0f min", s.SessionDurationMinutes)))
}

func printDetection(cmd *cobra.Command, res *engine.EmotionResult) {
	w := out(cmd)
	d := res.Detection
	fmt.Fprintln(w, theme.Field("Emotion", theme.Emotion(string(d.Emotion))))
	fmt.Fprintln(w, theme.Field("Confidence", fmt.Sprintf("%.2f", d.Confidence)))
	fmt.Fprintln(w, theme.Field("Suggested action", d.SuggestedAction))
	source := string(d.Source)
	if d.Source == emotion.SourceRule {
		source = fmt.Sprintf("rule #%d", d.Rule)
	}
	fmt.Fprintln(w, theme.Field("Source", source))
	fmt.Fprintln(w, theme.Hint.Render(d.Message))
}
