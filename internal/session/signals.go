package session

import (
	"time"

	"github.com/abhisek/adaptly/internal/emotion"
)

// DefaultExpectedResponseMs is the expected latency used when neither the
// attempt nor the caller supplies one.
const DefaultExpectedResponseMs = 30000

// Attempt is one answered exercise within a session, oldest first.
type Attempt struct {
	ExerciseID string
	Correct    bool
	TimeMs     int
	ExpectedMs int
	HintsUsed  int
	At         time.Time
}

// ComputeSignals derives the behavioral signals for emotion detection from a
// session's attempts. Attempts without an expected latency fall back to
// defaultExpectedMs. An empty session yields zero signals.
func ComputeSignals(attempts []Attempt, now time.Time, energy string, defaultExpectedMs int) emotion.Signals {
	sig := emotion.Signals{EnergyLevel: energy}
	if len(attempts) == 0 {
		return sig
	}
	if defaultExpectedMs <= 0 {
		defaultExpectedMs = DefaultExpectedResponseMs
	}

	var totalMs, expectedMs, correct int
	for _, a := range attempts {
		totalMs += a.TimeMs
		if a.ExpectedMs > 0 {
			expectedMs += a.ExpectedMs
		} else {
			expectedMs += defaultExpectedMs
		}
		if a.Correct {
			correct++
		}
		sig.HintRequests += a.HintsUsed
	}

	n := len(attempts)
	sig.ResponseTimeAvg = float64(totalMs) / float64(n) / 1000
	sig.ResponseTimeRatio = float64(totalMs) / float64(expectedMs)
	sig.SuccessRate = float64(correct) / float64(n)
	sig.ConsecutiveErrors, sig.ConsecutiveCorrect = trailingRuns(attempts)

	if elapsed := now.Sub(attempts[0].At); elapsed > 0 {
		sig.SessionDurationMinutes = elapsed.Minutes()
	}
	return sig
}

// trailingRuns counts the run of identical outcomes at the end of the session.
func trailingRuns(attempts []Attempt) (errs, correct int) {
	last := attempts[len(attempts)-1].Correct
	for i := len(attempts) - 1; i >= 0 && attempts[i].Correct == last; i-- {
		if last {
			correct++
		} else {
			errs++
		}
	}
	return errs, correct
}
