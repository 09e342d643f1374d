package session

import (
	"sort"
	"time"

	"github.com/abhisek/adaptly/internal/mastery"
	"github.com/abhisek/adaptly/internal/prioritizer"
)

// Planner builds a session plan from the learner's exercise candidates.
type Planner interface {
	// BuildPlan creates a session plan.
	BuildPlan(candidates []prioritizer.Candidate, now time.Time) *Plan
}

// DefaultPlanner implements the 60/30/10 planning strategy.
type DefaultPlanner struct {
	TotalSlots int
}

// NewPlanner creates a new DefaultPlanner.
func NewPlanner() *DefaultPlanner {
	return &DefaultPlanner{TotalSlots: DefaultTotalSlots}
}

// BuildPlan creates a session plan with the 60/30/10 mix. Exercises below
// the mastered level are frontier work, ordered by the prioritizer. Mastered
// exercises feed the review and booster slots.
func (p *DefaultPlanner) BuildPlan(candidates []prioritizer.Candidate, now time.Time) *Plan {
	totalSlots := p.TotalSlots
	if totalSlots <= 0 {
		totalSlots = DefaultTotalSlots
	}

	// Calculate slot allocation (60/30/10).
	boosterCount := max(1, totalSlots/10)
	reviewCount := max(1, totalSlots*3/10)
	frontierCount := totalSlots - reviewCount - boosterCount

	var learning, mastered []prioritizer.Candidate
	for _, c := range candidates {
		if c.MasteryLevel >= mastery.MasteredLevel {
			mastered = append(mastered, c)
		} else {
			learning = append(learning, c)
		}
	}
	hasMastered := len(mastered) > 0

	// Redistribute if no mastered exercises.
	if !hasMastered {
		frontierCount = totalSlots
		reviewCount = 0
		boosterCount = 0
	}

	frontier := selectFrontier(learning, now, frontierCount)

	// If no frontier exercises available, redistribute to review/booster.
	if len(frontier) == 0 && hasMastered {
		reviewCount += frontierCount
		frontierCount = 0
		if reviewCount > len(mastered) {
			boosterCount += reviewCount - len(mastered)
			reviewCount = len(mastered)
		}
	}

	var slots []PlanSlot
	addFrontier := func(n int) {
		for i := 0; i < n && len(frontier) > 0; i++ {
			slots = append(slots, slotFor(frontier[i%len(frontier)], CategoryFrontier))
		}
	}

	addFrontier(frontierCount)

	if reviewCount > 0 && hasMastered {
		review := selectReview(mastered, now, reviewCount)
		for _, c := range review {
			slots = append(slots, slotFor(c, CategoryReview))
		}
		addFrontier(reviewCount - len(review))
	}

	if boosterCount > 0 && hasMastered {
		booster := selectBooster(mastered, boosterCount)
		for _, c := range booster {
			slots = append(slots, slotFor(c, CategoryBooster))
		}
		addFrontier(boosterCount - len(booster))
	}

	return &Plan{
		Slots:    slots,
		Duration: DefaultSessionDuration,
	}
}

func slotFor(c prioritizer.Candidate, cat PlanCategory) PlanSlot {
	return PlanSlot{ExerciseID: c.ID, MasteryLevel: c.MasteryLevel, Category: cat}
}

// selectFrontier picks unmastered exercises in prioritizer order.
func selectFrontier(learning []prioritizer.Candidate, now time.Time, count int) []prioritizer.Candidate {
	if len(learning) == 0 {
		return nil
	}
	byID := make(map[string]prioritizer.Candidate, len(learning))
	for _, c := range learning {
		byID[c.ID] = c
	}

	var result []prioritizer.Candidate
	for _, id := range prioritizer.Prioritize(learning, now) {
		if len(result) == count {
			break
		}
		result = append(result, byID[id])
	}
	return result
}

// selectReview picks mastered exercises that are due first, then the least
// recently practiced ones.
func selectReview(mastered []prioritizer.Candidate, now time.Time, count int) []prioritizer.Candidate {
	byID := make(map[string]prioritizer.Candidate, len(mastered))
	for _, c := range mastered {
		byID[c.ID] = c
	}

	var result []prioritizer.Candidate
	picked := make(map[string]bool)
	for _, id := range prioritizer.DueForReview(mastered, now, count) {
		result = append(result, byID[id])
		picked[id] = true
	}
	if len(result) == count {
		return result
	}

	var rest []prioritizer.Candidate
	for _, c := range mastered {
		if !picked[c.ID] {
			rest = append(rest, c)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return lastAttempt(rest[i]).Before(lastAttempt(rest[j]))
	})
	for i := 0; len(result) < count && i < len(rest); i++ {
		result = append(result, rest[i])
	}
	return result
}

// selectBooster picks mastered exercises with the highest mastery.
func selectBooster(mastered []prioritizer.Candidate, count int) []prioritizer.Candidate {
	sorted := append([]prioritizer.Candidate(nil), mastered...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].MasteryLevel != sorted[j].MasteryLevel {
			return sorted[i].MasteryLevel > sorted[j].MasteryLevel
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > count {
		sorted = sorted[:count]
	}
	return sorted
}

func lastAttempt(c prioritizer.Candidate) time.Time {
	if c.LastAttemptAt == nil {
		return time.Time{}
	}
	return *c.LastAttemptAt
}
