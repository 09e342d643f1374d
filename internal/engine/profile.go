package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/adaptly/internal/apperr"
	"github.com/abhisek/adaptly/internal/presentation"
	"github.com/abhisek/adaptly/internal/store"
)

// ProfileUpdate changes selected learner profile fields. Nil fields are kept.
type ProfileUpdate struct {
	DisplayName          *string
	Age                  *int
	LearningStyle        *string
	Interests            []string
	PreferredMethod      *string
	EnergyLevel          *string
	TimeAvailableMinutes *int // zero clears the time budget
}

func (u ProfileUpdate) validate() error {
	if u.Age != nil {
		if err := requireNonNegative("age", *u.Age); err != nil {
			return err
		}
	}
	if u.TimeAvailableMinutes != nil {
		if err := requireNonNegative("time available minutes", *u.TimeAvailableMinutes); err != nil {
			return err
		}
	}
	if u.EnergyLevel != nil {
		switch *u.EnergyLevel {
		case "", presentation.EnergyLow, presentation.EnergyMedium, presentation.EnergyHigh:
		default:
			return apperr.NewInvalidInput("energy level", *u.EnergyLevel, "must be low, medium or high")
		}
	}
	return nil
}

func (u ProfileUpdate) apply(l *store.Learner) {
	if u.DisplayName != nil {
		l.DisplayName = *u.DisplayName
	}
	if u.Age != nil {
		l.Age = *u.Age
	}
	if u.LearningStyle != nil {
		l.LearningStyle = *u.LearningStyle
	}
	if u.Interests != nil {
		l.Interests = u.Interests
	}
	if u.PreferredMethod != nil {
		l.PreferredMethod = *u.PreferredMethod
	}
	if u.EnergyLevel != nil {
		l.EnergyLevel = *u.EnergyLevel
	}
	if u.TimeAvailableMinutes != nil {
		if *u.TimeAvailableMinutes == 0 {
			l.TimeAvailableMinutes = nil
		} else {
			t := *u.TimeAvailableMinutes
			l.TimeAvailableMinutes = &t
		}
	}
}

// UpdateProfile applies u to the learner's profile, creating it if needed.
func (s *Service) UpdateProfile(ctx context.Context, learnerID string, u ProfileUpdate) (*store.Learner, error) {
	if err := u.validate(); err != nil {
		return nil, err
	}
	var learner *store.Learner
	err := s.withLearner(ctx, learnerID, func(r *store.Repo, now time.Time) error {
		var err error
		learner, err = r.Learner(ctx, learnerID)
		if err != nil {
			return err
		}
		u.apply(learner)
		learner.UpdatedAt = now
		return r.SaveLearner(ctx, learner)
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.log.Debug("profile updated", "learner", learnerID)
	return learner, nil
}

// Profile returns the learner's profile, or nil if the learner is unknown.
func (s *Service) Profile(ctx context.Context, learnerID string) (*store.Learner, error) {
	if err := requireID("learner id", learnerID); err != nil {
		return nil, err
	}
	l, err := s.store.Repo().Learner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return l, nil
}
