package spacedrep

import (
	"time"

	"github.com/abhisek/adaptly/internal/clock"
)

// ReviewState holds the SM-2 state for one exercise of one learner.
type ReviewState struct {
	Interval       int       `json:"interval"`
	EaseFactor     float64   `json:"ease_factor"`
	Repetitions    int       `json:"repetitions"`
	NextReviewDate time.Time `json:"next_review_date"`
}

// IsDue returns true if the exercise is due for review (on or past the review day).
func (rs *ReviewState) IsDue(now time.Time) bool {
	return !clock.Day(now).Before(clock.Day(rs.NextReviewDate))
}

// OverdueDays returns how many calendar days past due the exercise is. Returns 0 if not yet due.
func (rs *ReviewState) OverdueDays(now time.Time) int {
	d := clock.DaysBetween(rs.NextReviewDate, now)
	if d < 0 {
		return 0
	}
	return d
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (rs *ReviewState) DaysUntilReview(now time.Time) int {
	d := clock.DaysBetween(now, rs.NextReviewDate)
	if d < 0 {
		return 0
	}
	return d
}

// ReviewStatus describes an exercise's review status for display.
type ReviewStatus string

const (
	ReviewNotDue  ReviewStatus = "not_due"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
)

// Status returns the review status for display. An exercise is overdue once it has
// been due for more than half of its current interval.
func (rs *ReviewState) Status(now time.Time) ReviewStatus {
	if !rs.IsDue(now) {
		return ReviewNotDue
	}
	if float64(rs.OverdueDays(now)) > float64(rs.Interval)*0.5 {
		return ReviewOverdue
	}
	return ReviewDue
}
