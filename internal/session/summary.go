package session

import "time"

// ExerciseResult aggregates the attempts on one exercise within a session.
type ExerciseResult struct {
	ExerciseID string
	Attempted  int
	Correct    int
}

// Accuracy returns the fraction answered correctly.
func (r ExerciseResult) Accuracy() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempted)
}

// Summary holds the data displayed at the end of a session.
type Summary struct {
	SessionID       string
	Duration        time.Duration
	TotalAttempts   int
	TotalCorrect    int
	Accuracy        float64
	HintsUsed       int
	ExerciseResults []ExerciseResult
}

// BuildSummary creates a Summary from a session's attempts, oldest first.
// Exercise results keep the order in which exercises were first attempted.
func BuildSummary(sessionID string, attempts []Attempt) *Summary {
	s := &Summary{SessionID: sessionID}
	index := make(map[string]int)
	for _, a := range attempts {
		i, ok := index[a.ExerciseID]
		if !ok {
			i = len(s.ExerciseResults)
			index[a.ExerciseID] = i
			s.ExerciseResults = append(s.ExerciseResults, ExerciseResult{ExerciseID: a.ExerciseID})
		}
		s.ExerciseResults[i].Attempted++
		s.TotalAttempts++
		s.HintsUsed += a.HintsUsed
		if a.Correct {
			s.ExerciseResults[i].Correct++
			s.TotalCorrect++
		}
	}

	if s.TotalAttempts > 0 {
		s.Accuracy = float64(s.TotalCorrect) / float64(s.TotalAttempts)
		s.Duration = attempts[len(attempts)-1].At.Sub(attempts[0].At)
	}
	return s
}
