package gems

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/adaptly/internal/store"
)

// Service awards gems and records them as events.
type Service struct {
	eventRepo store.EventRepo
}

// NewService creates a gem service writing through eventRepo. A nil repo keeps
// awards in memory only.
func NewService(eventRepo store.EventRepo) *Service {
	return &Service{eventRepo: eventRepo}
}

// AwardStreak awards a streak gem for a daily-streak milestone.
func (s *Service) AwardStreak(ctx context.Context, learnerID string, streakLength int, at time.Time) (*GemAward, error) {
	award := &GemAward{
		Type:      GemStreak,
		Rarity:    StreakRarity(streakLength),
		LearnerID: learnerID,
		Reason:    fmt.Sprintf("%d days in a row!", streakLength),
		AwardedAt: at,
	}
	return award, s.persist(ctx, award)
}

// AwardLevel awards a level gem for reaching level.
func (s *Service) AwardLevel(ctx context.Context, learnerID string, level int, at time.Time) (*GemAward, error) {
	award := &GemAward{
		Type:      GemLevel,
		Rarity:    LevelRarity(level),
		LearnerID: learnerID,
		Reason:    fmt.Sprintf("Reached level %d", level),
		AwardedAt: at,
	}
	return award, s.persist(ctx, award)
}

// AwardMastery awards a mastery gem for an exercise that crossed the mastery line.
func (s *Service) AwardMastery(ctx context.Context, learnerID, exerciseID string, accuracy float64, at time.Time) (*GemAward, error) {
	award := &GemAward{
		Type:      GemMastery,
		Rarity:    MasteryRarity(accuracy),
		LearnerID: learnerID,
		Reason:    fmt.Sprintf("Mastered %s (%.0f%% accuracy)", exerciseID, accuracy*100),
		AwardedAt: at,
	}
	return award, s.persist(ctx, award)
}

// Counts returns the learner's gem counts by type and the total.
func (s *Service) Counts(ctx context.Context, learnerID string) (map[GemType]int, int, error) {
	if s.eventRepo == nil {
		return map[GemType]int{}, 0, nil
	}
	raw, total, err := s.eventRepo.GemCounts(ctx, learnerID)
	if err != nil {
		return nil, 0, err
	}
	counts := make(map[GemType]int, len(raw))
	for k, v := range raw {
		counts[GemType(k)] = v
	}
	return counts, total, nil
}

func (s *Service) persist(ctx context.Context, award *GemAward) error {
	if s.eventRepo == nil {
		return nil
	}
	err := s.eventRepo.AppendGemEvent(ctx, store.GemEventData{
		Timestamp: award.AwardedAt,
		LearnerID: award.LearnerID,
		GemType:   string(award.Type),
		Rarity:    string(award.Rarity),
		Reason:    award.Reason,
	})
	if err != nil {
		return fmt.Errorf("persist %s gem: %w", award.Type, err)
	}
	return nil
}
