package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSelectBest_NoActiveCandidates(t *testing.T) {
	assert.Nil(t, SelectBest(nil, LearnerContext{Age: 8}, PriorContext{}))

	inactive := []Candidate{{ID: "a", IsDefault: true}, {ID: "b"}}
	assert.Nil(t, SelectBest(inactive, LearnerContext{Age: 8}, PriorContext{}))
}

func TestSelectBest_FullMatchScore(t *testing.T) {
	learner := LearnerContext{
		Age:                  8,
		LearningStyle:        "visual",
		Interests:            []string{"dinosaurs", "space"},
		PreferredMethod:      "game",
		EnergyLevel:          EnergyHigh,
		TimeAvailableMinutes: intPtr(10),
	}
	cand := Candidate{
		ID: "dino-count",
		Target: TargetProfile{
			AgeMin:              6,
			AgeMax:              9,
			LearningStyle:       "visual",
			Interests:           []string{"Space", "dinosaurs", "music"},
			PedagogicalApproach: "game",
		},
		EstimatedDurationMinutes: 12,
		EngagementScore:          4,
		EffectivenessScore:       8,
		IsActive:                 true,
	}

	sel := SelectBest([]Candidate{cand}, learner, PriorContext{})
	require.NotNil(t, sel)

	// 30 age + 25 style + 2×20 interests + 20 method + 12 engagement + 10 effectiveness (capped)
	// + 10 duration + 5 energy.
	assert.InDelta(t, 152.0, sel.Score, 1e-9)
	assert.Equal(t, []string{
		"age fit",
		"learning style: visual",
		"interest: Space",
		"interest: dinosaurs",
		"preferred method: game",
		"engaging",
		"effective",
		"fits available time",
		"active format for high energy",
	}, sel.Reasons)
}

func TestScore_Duration(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		want     float64
	}{
		{"within five minutes", 14, 10},
		{"dead zone", 20, 0},
		{"exactly fifteen off", 25, 0},
		{"far off", 26, -10},
		{"unknown duration", 0, 0},
	}
	learner := LearnerContext{TimeAvailableMinutes: intPtr(10)}
	for _, tt := range tests {
		c := Candidate{ID: "c", EstimatedDurationMinutes: tt.duration, IsActive: true}
		got := score(c, learner, PriorContext{})
		assert.InDelta(t, tt.want, got.Score, 1e-9, tt.name)
	}
}

func TestScore_NoTimeAvailableSkipsDuration(t *testing.T) {
	c := Candidate{ID: "c", EstimatedDurationMinutes: 45, IsActive: true}
	got := score(c, LearnerContext{}, PriorContext{})
	assert.Zero(t, got.Score)
}

func TestScore_LowEnergyPrefersDirect(t *testing.T) {
	learner := LearnerContext{EnergyLevel: EnergyLow}
	direct := score(Candidate{Target: TargetProfile{PedagogicalApproach: "direct"}}, learner, PriorContext{})
	game := score(Candidate{Target: TargetProfile{PedagogicalApproach: "game"}}, learner, PriorContext{})
	assert.InDelta(t, 5.0, direct.Score, 1e-9)
	assert.Zero(t, game.Score)
}

func TestSelectBest_AntiRepetition(t *testing.T) {
	cands := []Candidate{
		{ID: "story", EngagementScore: 3, IsActive: true},
		{ID: "puzzle", EngagementScore: 3, IsActive: true},
	}
	sel := SelectBest(cands, LearnerContext{}, PriorContext{LastPresentationID: "story"})
	require.NotNil(t, sel)
	assert.Equal(t, "puzzle", sel.Candidate.ID)

	ranked := Rank(cands, LearnerContext{}, PriorContext{LastPresentationID: "story"})
	assert.InDelta(t, -11.0, ranked[1].Score, 1e-9)
	assert.Contains(t, ranked[1].Reasons, "shown last time")
}

func TestSelectBest_DefaultRescue(t *testing.T) {
	cands := []Candidate{
		{ID: "flashy", EngagementScore: 4, IsActive: true},
		{ID: "standard", IsDefault: true, IsActive: true},
	}
	sel := SelectBest(cands, LearnerContext{Age: 12}, PriorContext{})
	require.NotNil(t, sel)
	assert.Equal(t, "standard", sel.Candidate.ID)
	assert.InDelta(t, 15.0, sel.Score, 1e-9)
	assert.Equal(t, []string{"default fallback"}, sel.Reasons)
}

func TestScore_DefaultRescueSkippedOnceInterestMatches(t *testing.T) {
	c := Candidate{
		ID:        "standard",
		Target:    TargetProfile{Interests: []string{"animals"}},
		IsDefault: true,
		IsActive:  true,
	}
	got := score(c, LearnerContext{Interests: []string{"animals"}}, PriorContext{})
	assert.InDelta(t, 20.0, got.Score, 1e-9)
	assert.NotContains(t, got.Reasons, "default fallback")
}

func TestSelectBest_TiesKeepInputOrder(t *testing.T) {
	cands := []Candidate{
		{ID: "first", EffectivenessScore: 2, IsActive: true},
		{ID: "second", EffectivenessScore: 2, IsActive: true},
	}
	sel := SelectBest(cands, LearnerContext{}, PriorContext{})
	require.NotNil(t, sel)
	assert.Equal(t, "first", sel.Candidate.ID)
}

func TestScore_UnknownAgeGetsNoAgeBonus(t *testing.T) {
	c := Candidate{Target: TargetProfile{AgeMin: 0, AgeMax: 10}}
	assert.Zero(t, score(c, LearnerContext{}, PriorContext{}).Score)
}
