package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/adaptly/internal/presentation"
	"github.com/abhisek/adaptly/internal/store"
)

// Present picks the best presentation for skillID and remembers it as the
// learner's last presentation. It returns nil when the skill has no active
// candidate.
func (s *Service) Present(ctx context.Context, learnerID, skillID string) (*presentation.Selection, error) {
	if err := requireID("skill id", skillID); err != nil {
		return nil, err
	}

	var sel *presentation.Selection
	err := s.withLearner(ctx, learnerID, func(r *store.Repo, now time.Time) error {
		learner, err := r.Learner(ctx, learnerID)
		if err != nil {
			return err
		}
		cands, err := r.PresentationCandidates(ctx, skillID)
		if err != nil {
			return err
		}

		sel = presentation.SelectBest(cands, s.learnerContext(learner), presentation.PriorContext{
			LastPresentationID: learner.LastPresentationID,
		})
		if sel == nil {
			s.log.Debug("no active presentation", "learner", learnerID, "skill", skillID, "candidates", len(cands))
			return nil
		}

		s.log.Debug("presentation selected",
			"learner", learnerID, "skill", skillID, "presentation", sel.Candidate.ID,
			"score", sel.Score, "reasons", sel.Reasons)
		learner.LastPresentationID = sel.Candidate.ID
		learner.UpdatedAt = now
		return r.SaveLearner(ctx, learner)
	})
	if err != nil {
		return nil, fmt.Errorf("present: %w", err)
	}
	return sel, nil
}

func (s *Service) learnerContext(l *store.Learner) presentation.LearnerContext {
	lc := presentation.LearnerContext{
		Age:                  l.Age,
		LearningStyle:        l.LearningStyle,
		Interests:            l.Interests,
		PreferredMethod:      l.PreferredMethod,
		EnergyLevel:          l.EnergyLevel,
		TimeAvailableMinutes: l.TimeAvailableMinutes,
	}
	if lc.TimeAvailableMinutes == nil && s.opts.DefaultTimeMinutes > 0 {
		t := s.opts.DefaultTimeMinutes
		lc.TimeAvailableMinutes = &t
	}
	return lc
}
