// Package streak tracks consecutive days of learner activity with a single bankable freeze.
package streak

import (
	"time"

	"github.com/abhisek/adaptly/internal/clock"
)

// State is a learner's daily streak. Dates are calendar days.
type State struct {
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	FreezeAvailable  bool       `json:"freeze_available"`
	FreezeUsedAt     *time.Time `json:"freeze_used_at,omitempty"`
}

// Outcome describes what Update did to the streak.
type Outcome string

const (
	Started   Outcome = "started"
	Unchanged Outcome = "unchanged"
	Extended  Outcome = "extended"
	Frozen    Outcome = "frozen" // a missed day was covered by the freeze
	Reset     Outcome = "reset"
)

// Update records activity on today and returns the new state.
func Update(state *State, today time.Time) State {
	next, _ := Apply(state, today)
	return next
}

// Apply is Update that also reports which transition happened.
func Apply(state *State, today time.Time) (State, Outcome) {
	day := clock.Day(today)
	if state == nil || state.LastActivityDate == nil {
		s := State{
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: &day,
			FreezeAvailable:  true,
		}
		if state != nil {
			// Keep the historical best and freeze bookkeeping of a state with no activity yet.
			s.LongestStreak = max(state.LongestStreak, 1)
			s.FreezeAvailable = state.FreezeAvailable
			s.FreezeUsedAt = state.FreezeUsedAt
		}
		return s, Started
	}

	next := *state
	outcome := Reset
	switch gap := clock.DaysBetween(*state.LastActivityDate, day); {
	case gap <= 0:
		return next, Unchanged
	case gap == 1:
		next.CurrentStreak++
		outcome = Extended
	case gap == 2 && state.FreezeAvailable && !usedOn(state.FreezeUsedAt, day):
		next.CurrentStreak++
		next.FreezeAvailable = false
		next.FreezeUsedAt = &day
		outcome = Frozen
	default:
		next.CurrentStreak = 1
	}

	next.LongestStreak = max(next.LongestStreak, next.CurrentStreak)
	next.LastActivityDate = &day
	return next, outcome
}

// UseFreeze spends the banked freeze on today. It reports false, leaving the state
// untouched, when no freeze is available.
func UseFreeze(state State, today time.Time) (State, bool) {
	if !state.FreezeAvailable {
		return state, false
	}
	day := clock.Day(today)
	state.FreezeAvailable = false
	state.FreezeUsedAt = &day
	return state, true
}

// EarnFreeze banks a freeze. At most one freeze can be held.
func EarnFreeze(state State) (State, bool) {
	if state.FreezeAvailable {
		return state, false
	}
	state.FreezeAvailable = true
	return state, true
}

func usedOn(at *time.Time, day time.Time) bool {
	return at != nil && clock.SameDay(*at, day)
}
