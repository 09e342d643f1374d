package presentation

import (
	"fmt"
	"sort"
	"strings"
)

// Score contributions.
const (
	AgeMatchBonus         = 30
	StyleMatchBonus       = 25
	InterestMatchBonus    = 20
	MethodMatchBonus      = 20
	EngagementWeight      = 3
	MaxEngagementBonus    = 15
	EffectivenessWeight   = 2
	MaxEffectivenessBonus = 10
	DurationFitBonus      = 10
	DurationMissPenalty   = 10
	EnergyFitBonus        = 5
	RepeatPenalty         = 20
	DefaultRescueBonus    = 15

	// DurationFitWindow and DurationMissWindow are minute differences between a
	// variant's length and the learner's available time.
	DurationFitWindow  = 5
	DurationMissWindow = 15

	// DefaultRescueThreshold is the running score below which a default variant is boosted.
	DefaultRescueThreshold = 20
)

// SelectBest returns the highest-scoring active candidate, or nil if none is active.
// Ties go to the earlier candidate.
func SelectBest(candidates []Candidate, learner LearnerContext, prior PriorContext) *Selection {
	ranked := Rank(candidates, learner, prior)
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}

// Rank scores every active candidate and sorts by descending score, keeping input order on ties.
func Rank(candidates []Candidate, learner LearnerContext, prior PriorContext) []Selection {
	var ranked []Selection
	for _, c := range candidates {
		if !c.IsActive {
			continue
		}
		ranked = append(ranked, score(c, learner, prior))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func score(c Candidate, learner LearnerContext, prior PriorContext) Selection {
	s := Selection{Candidate: c}
	add := func(points float64, reason string) {
		s.Score += points
		s.Reasons = append(s.Reasons, reason)
	}

	t := c.Target
	if learner.Age > 0 && t.AgeMax > 0 && learner.Age >= t.AgeMin && learner.Age <= t.AgeMax {
		add(AgeMatchBonus, "age fit")
	}

	if learner.LearningStyle != "" && strings.EqualFold(learner.LearningStyle, t.LearningStyle) {
		add(StyleMatchBonus, "learning style: "+t.LearningStyle)
	}

	for _, interest := range overlap(learner.Interests, t.Interests) {
		add(InterestMatchBonus, "interest: "+interest)
	}

	if learner.PreferredMethod != "" && strings.EqualFold(learner.PreferredMethod, t.PedagogicalApproach) {
		add(MethodMatchBonus, "preferred method: "+t.PedagogicalApproach)
	}

	if eng := min(c.EngagementScore*EngagementWeight, MaxEngagementBonus); eng > 0 {
		add(eng, "engaging")
	}
	if eff := min(c.EffectivenessScore*EffectivenessWeight, MaxEffectivenessBonus); eff > 0 {
		add(eff, "effective")
	}

	if learner.TimeAvailableMinutes != nil && c.EstimatedDurationMinutes > 0 {
		diff := abs(c.EstimatedDurationMinutes - *learner.TimeAvailableMinutes)
		switch {
		case diff <= DurationFitWindow:
			add(DurationFitBonus, "fits available time")
		case diff > DurationMissWindow:
			add(-DurationMissPenalty, fmt.Sprintf("duration off by %d min", diff))
		}
	}

	approach := strings.ToLower(t.PedagogicalApproach)
	switch strings.ToLower(learner.EnergyLevel) {
	case EnergyLow:
		if approach == ApproachDirect {
			add(EnergyFitBonus, "calm pace for low energy")
		}
	case EnergyHigh:
		if approach == ApproachGame || approach == ApproachDiscovery {
			add(EnergyFitBonus, "active format for high energy")
		}
	}

	if prior.LastPresentationID != "" && c.ID == prior.LastPresentationID {
		add(-RepeatPenalty, "shown last time")
	}

	if c.IsDefault && s.Score < DefaultRescueThreshold {
		add(DefaultRescueBonus, "default fallback")
	}
	return s
}

// overlap returns the tags of b that also appear in a, compared case-insensitively,
// in b's order and without duplicates.
func overlap(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	want := make(map[string]bool, len(a))
	for _, x := range a {
		want[strings.ToLower(strings.TrimSpace(x))] = true
	}
	var out []string
	seen := make(map[string]bool)
	for _, y := range b {
		key := strings.ToLower(strings.TrimSpace(y))
		if want[key] && !seen[key] {
			seen[key] = true
			out = append(out, y)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
