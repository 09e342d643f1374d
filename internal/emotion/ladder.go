package emotion

// LadderStep is one rung of the built-in fallback ladder.
type LadderStep struct {
	Name       string
	Emotion    Emotion
	Action     string
	Confidence float64
	Match      func(Signals) bool
}

// DefaultLadder returns the fallback rules in evaluation order. The last step always matches.
func DefaultLadder() []LadderStep {
	return []LadderStep{
		{
			Name: "repeated-slow-errors", Emotion: Frustrated, Action: ActionEasierExercise, Confidence: 0.8,
			Match: func(s Signals) bool { return s.ConsecutiveErrors >= 3 && s.ResponseTimeRatio > 1.5 },
		},
		{
			Name: "fast-and-accurate", Emotion: Bored, Action: ActionDifficultyIncrease, Confidence: 0.7,
			Match: func(s Signals) bool { return s.ResponseTimeRatio < 0.5 && s.SuccessRate > 0.9 },
		},
		{
			Name: "slowing-down", Emotion: Tired, Action: ActionBreakSuggestion, Confidence: 0.75,
			Match: func(s Signals) bool { return s.ResponseTimeRatio > 2.5 && s.SessionDurationMinutes > 20 },
		},
		{
			Name: "hot-streak", Emotion: Confident, Action: ActionCelebration, Confidence: 0.8,
			Match: func(s Signals) bool { return s.ConsecutiveCorrect >= 5 && s.ResponseTimeRatio < 1 },
		},
		{
			Name: "hint-heavy", Emotion: Struggling, Action: ActionGuidedHelp, Confidence: 0.7,
			Match: func(s Signals) bool { return s.HintRequests >= 3 && s.SuccessRate < 0.3 },
		},
		{
			Name: "steady", Emotion: Engaged, Action: ActionContinue, Confidence: 0.5,
			Match: func(Signals) bool { return true },
		},
	}
}

var defaultLadder = DefaultLadder()

// runLadder returns the first ladder step matching s.
func runLadder(s Signals) LadderStep {
	for _, step := range defaultLadder {
		if step.Match(s) {
			return step
		}
	}
	return defaultLadder[len(defaultLadder)-1]
}
