package progression

import (
	"time"

	"github.com/abhisek/adaptly/internal/apperr"
	"github.com/abhisek/adaptly/internal/clock"
)

// State is a learner's XP and level standing.
type State struct {
	TotalXP       int       `json:"total_xp"`
	CurrentLevel  int       `json:"current_level"`
	XPToNextLevel int       `json:"xp_to_next_level"`
	XPEarnedToday int       `json:"xp_earned_today"`
	LastXPDate    time.Time `json:"last_xp_date"`
}

// NewState returns the state of a learner who has not earned any XP.
func NewState() State {
	return State{
		CurrentLevel:  1,
		XPToNextLevel: Threshold(1),
	}
}

// AddXP awards amount XP on the calendar day of today. It returns the new state and
// whether at least one level was gained. A nil state starts from NewState.
func AddXP(state *State, amount int, today time.Time) (State, bool, error) {
	if amount < 0 {
		return State{}, false, apperr.NewInvalidInput("xp amount", amount, "must not be negative")
	}

	next := NewState()
	if state != nil {
		next = *state
	}
	if next.CurrentLevel < 1 {
		next.CurrentLevel = 1
	}

	day := clock.Day(today)
	if next.LastXPDate.IsZero() || !clock.SameDay(next.LastXPDate, day) {
		next.XPEarnedToday = 0
	}
	next.XPEarnedToday += amount
	next.TotalXP += amount
	next.LastXPDate = day

	startLevel := next.CurrentLevel
	for next.TotalXP >= CumulativeXP(next.CurrentLevel)+Threshold(next.CurrentLevel) {
		next.CurrentLevel++
	}
	next.XPToNextLevel = CumulativeXP(next.CurrentLevel+1) - next.TotalXP

	return next, next.CurrentLevel > startLevel, nil
}

// Progress returns how far through the current level the learner is, in [0, 1).
func Progress(s State) float64 {
	level := s.CurrentLevel
	if level < 1 {
		level = 1
	}
	into := s.TotalXP - CumulativeXP(level)
	if into <= 0 {
		return 0
	}
	p := float64(into) / float64(Threshold(level))
	if p > 1 {
		return 1
	}
	return p
}
