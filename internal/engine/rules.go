package engine

import (
	"context"
	"fmt"

	"github.com/abhisek/adaptly/internal/rulepack"
	"github.com/abhisek/adaptly/internal/store"
)

// ImportResult counts what a rule-pack import wrote.
type ImportResult struct {
	EmotionRules  int
	Presentations int
	Problems      int // rules stored but unable to match
}

// ImportRules replaces the emotion rules with the pack's rules and upserts its
// presentation candidates. A pack without emotion rules leaves the current
// rules in place.
func (s *Service) ImportRules(ctx context.Context, pack *rulepack.Pack) (*ImportResult, error) {
	res := &ImportResult{
		EmotionRules:  len(pack.EmotionRules),
		Presentations: len(pack.Presentations),
	}
	for _, p := range pack.Problems() {
		s.log.Warn("imported emotion rule never matches", "rule", p.Index, "priority", p.Priority, "error", p.Err)
		res.Problems++
	}

	err := s.store.WithTx(ctx, func(r *store.Repo) error {
		if len(pack.EmotionRules) > 0 {
			if err := r.ReplaceEmotionRules(ctx, pack.EmotionRules); err != nil {
				return err
			}
		}
		return r.SavePresentationCandidates(ctx, pack.Candidates())
	})
	if err != nil {
		return nil, fmt.Errorf("import rules: %w", err)
	}
	s.log.Info("rule pack imported", "emotion_rules", res.EmotionRules, "presentations", res.Presentations)
	return res, nil
}
