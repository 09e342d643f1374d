package session

import "time"

// PlanCategory represents the reason an exercise was included in the plan.
type PlanCategory string

const (
	CategoryFrontier PlanCategory = "frontier"
	CategoryReview   PlanCategory = "review"
	CategoryBooster  PlanCategory = "booster"
)

// PlanSlot is a single slot in the session plan: an exercise that will
// receive a mini-block of attempts.
type PlanSlot struct {
	ExerciseID   string
	MasteryLevel int
	Category     PlanCategory
}

// Plan is the ordered list of exercise slots for a session.
type Plan struct {
	ID       string
	Slots    []PlanSlot
	Duration time.Duration
}

// DefaultSessionDuration is the standard session length.
const DefaultSessionDuration = 15 * time.Minute

// AttemptsPerSlot is the number of attempts served per mini-block.
const AttemptsPerSlot = 3

// DefaultTotalSlots is the default number of slots in a session plan.
const DefaultTotalSlots = 5
