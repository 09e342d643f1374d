package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/adaptly/internal/emotion"
	"github.com/abhisek/adaptly/internal/session"
	"github.com/abhisek/adaptly/internal/store"
)

// EmotionResult is a detection together with the signals it was based on.
type EmotionResult struct {
	Detection emotion.Detection
	Signals   emotion.Signals
}

// DetectEmotion computes signals from the session's attempts, classifies
// them with the stored rules and records the detection.
func (s *Service) DetectEmotion(ctx context.Context, learnerID, sessionID string) (*EmotionResult, error) {
	if err := requireID("session id", sessionID); err != nil {
		return nil, err
	}

	var res EmotionResult
	err := s.withLearner(ctx, learnerID, func(r *store.Repo, now time.Time) error {
		learner, err := r.Learner(ctx, learnerID)
		if err != nil {
			return err
		}
		records, err := r.SessionAttempts(ctx, learnerID, sessionID)
		if err != nil {
			return err
		}
		res.Signals = session.ComputeSignals(attemptsOf(records), now, learner.EnergyLevel, s.opts.ExpectedResponseMs)
		res.Detection, err = s.classify(ctx, r, res.Signals, learner.DisplayName)
		if err != nil {
			return err
		}

		s.log.Debug("emotion detected",
			"learner", learnerID, "session", sessionID, "emotion", res.Detection.Emotion,
			"source", res.Detection.Source, "rule", res.Detection.Rule, "confidence", res.Detection.Confidence)

		return r.AppendEmotionEvent(ctx, store.EmotionEventData{
			Timestamp:       now,
			LearnerID:       learnerID,
			SessionID:       sessionID,
			Emotion:         string(res.Detection.Emotion),
			Confidence:      res.Detection.Confidence,
			SuggestedAction: res.Detection.SuggestedAction,
			Source:          string(res.Detection.Source),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("detect emotion: %w", err)
	}
	return &res, nil
}

// Classify runs detection on caller-supplied signals without touching
// learner state.
func (s *Service) Classify(ctx context.Context, sig emotion.Signals, name string) (emotion.Detection, error) {
	return s.classify(ctx, s.store.Repo(), sig, name)
}

func (s *Service) classify(ctx context.Context, r *store.Repo, sig emotion.Signals, name string) (emotion.Detection, error) {
	rules, err := r.EmotionRules(ctx)
	if err != nil {
		return emotion.Detection{}, err
	}
	var rs *emotion.RuleSet
	if len(rules) > 0 {
		rs = emotion.Compile(rules)
		for _, p := range rs.Problems() {
			s.log.Warn("emotion rule never matches", "rule", p.Index, "priority", p.Priority, "error", p.Err)
		}
	}

	rnd, unlock := s.messageRand()
	defer unlock()
	return rs.Detect(sig, emotion.Options{Name: name, Rand: rnd}), nil
}

func attemptsOf(records []store.AttemptEventRecord) []session.Attempt {
	out := make([]session.Attempt, len(records))
	for i, rec := range records {
		out[i] = session.Attempt{
			ExerciseID: rec.ExerciseID,
			Correct:    rec.Correct,
			TimeMs:     rec.TimeMs,
			ExpectedMs: rec.ExpectedMs,
			HintsUsed:  rec.HintsUsed,
			At:         rec.Timestamp,
		}
	}
	return out
}
