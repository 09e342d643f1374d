// Package prioritizer orders a learner's exercise pool, either for spaced review
// or for free-choice practice.
package prioritizer

import (
	"sort"
	"time"

	"github.com/abhisek/adaptly/internal/clock"
)

// Scoring weights for free-choice practice.
const (
	MasteryGapWeight    = 2
	OverduePerDay       = 10
	MaxOverdueBonus     = 100
	NeverAttemptedBoost = 50
)

// Candidate is one exercise in the learner's pool.
type Candidate struct {
	ID             string
	MasteryLevel   int        // 0–100
	LastAttemptAt  *time.Time // nil if never attempted
	NextReviewDate *time.Time // nil if never scheduled
}

// IsOverdue reports whether the candidate has a review date on or before now.
func (c Candidate) IsOverdue(now time.Time) bool {
	return c.NextReviewDate != nil && !clock.Day(now).Before(clock.Day(*c.NextReviewDate))
}

// DueForReview returns the ids of candidates whose review date is unset or on/before now,
// most urgent first: unscheduled candidates, then by ascending review date.
// limit <= 0 means no limit.
func DueForReview(candidates []Candidate, now time.Time, limit int) []string {
	var due []Candidate
	for _, c := range candidates {
		if c.NextReviewDate == nil || c.IsOverdue(now) {
			due = append(due, c)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i].NextReviewDate, due[j].NextReviewDate
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return ids(due)
}

// Scored is a candidate with its practice priority.
type Scored struct {
	Candidate
	Score   int
	Reasons []string
}

// Rank scores every candidate for free-choice practice and sorts by descending score.
// Ties keep input order.
func Rank(candidates []Candidate, now time.Time) []Scored {
	ranked := make([]Scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = score(c, now)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Prioritize returns candidate ids ordered for free-choice practice.
func Prioritize(candidates []Candidate, now time.Time) []string {
	ranked := Rank(candidates, now)
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.ID
	}
	return out
}

func score(c Candidate, now time.Time) Scored {
	s := Scored{Candidate: c}

	gap := (100 - c.MasteryLevel) * MasteryGapWeight
	s.Score += gap
	if gap > 0 {
		s.Reasons = append(s.Reasons, "mastery gap")
	}

	if c.IsOverdue(now) {
		bonus := min(clock.DaysBetween(*c.NextReviewDate, now)*OverduePerDay, MaxOverdueBonus)
		s.Score += bonus
		s.Reasons = append(s.Reasons, "review overdue")
	}

	if c.LastAttemptAt == nil {
		s.Score += NeverAttemptedBoost
		s.Reasons = append(s.Reasons, "never attempted")
	}
	return s
}

func ids(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
