package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/adaptly/internal/emotion"
	"github.com/abhisek/adaptly/internal/presentation"
)

// EmotionRules returns the configured rules in the order they were imported.
func (r *Repo) EmotionRules(ctx context.Context) ([]emotion.Rule, error) {
	query, args := builder.Select("conditions", "emotion", "suggested_action", "message_template", "priority", "confidence").
		From(builder.Table(EmotionRulesTable.Name)).
		OrderBy("position").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query emotion rules: %w", err)
	}
	defer rows.Close()

	var rules []emotion.Rule
	for rows.Next() {
		var (
			rule  emotion.Rule
			conds sql.NullString
			emo   string
		)
		if err := rows.Scan(&conds, &emo, &rule.SuggestedAction, &rule.MessageTemplate, &rule.Priority, &rule.Confidence); err != nil {
			return nil, fmt.Errorf("scan emotion rule: %w", err)
		}
		if err := unmarshalJSON(conds, &rule.Conditions); err != nil {
			return nil, err
		}
		rule.Emotion = emotion.Emotion(emo)
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// ReplaceEmotionRules swaps the whole rule list. Use inside WithTx so readers never
// see a partial list.
func (r *Repo) ReplaceEmotionRules(ctx context.Context, rules []emotion.Rule) error {
	query, args := builder.Delete(EmotionRulesTable.Name).Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("clear emotion rules: %w", err)
	}
	if len(rules) == 0 {
		return nil
	}

	ins := builder.Insert(EmotionRulesTable.Name).
		Columns("position", "conditions", "emotion", "suggested_action", "message_template", "priority", "confidence")
	for i, rule := range rules {
		conds, err := marshalJSON(rule.Conditions)
		if err != nil {
			return fmt.Errorf("encode rule %d conditions: %w", i, err)
		}
		ins.Values(i, conds, string(rule.Emotion), rule.SuggestedAction, rule.MessageTemplate, rule.Priority, rule.Confidence)
	}
	query, args = ins.Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("insert emotion rules: %w", err)
	}
	return nil
}

var candidateColumns = []string{
	"id", "skill_id", "target", "estimated_duration_minutes", "engagement_score",
	"effectiveness_score", "is_default", "is_active",
}

var candidateInsertColumns = slices.Concat(candidateColumns, []string{"position"})

// PresentationCandidates returns the candidates for a skill in the order they
// were last saved. An empty skillID returns every candidate grouped by skill.
func (r *Repo) PresentationCandidates(ctx context.Context, skillID string) ([]presentation.Candidate, error) {
	sel := builder.Select(candidateColumns...).
		From(builder.Table(PresentationCandidatesTable.Name)).
		OrderBy("skill_id", "position", "id")
	if skillID != "" {
		sel.Where(entsql.EQ("skill_id", skillID))
	}
	query, args := sel.Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query presentation candidates: %w", err)
	}
	defer rows.Close()

	var out []presentation.Candidate
	for rows.Next() {
		var (
			c      presentation.Candidate
			target sql.NullString
		)
		err := rows.Scan(&c.ID, &c.SkillID, &target, &c.EstimatedDurationMinutes, &c.EngagementScore,
			&c.EffectivenessScore, &c.IsDefault, &c.IsActive)
		if err != nil {
			return nil, fmt.Errorf("scan presentation candidate: %w", err)
		}
		if err := unmarshalJSON(target, &c.Target); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SavePresentationCandidates upserts candidates by id. The slice order becomes
// the candidates' position, which breaks score ties during selection.
func (r *Repo) SavePresentationCandidates(ctx context.Context, cands []presentation.Candidate) error {
	if len(cands) == 0 {
		return nil
	}
	ins := builder.Insert(PresentationCandidatesTable.Name).Columns(candidateInsertColumns...)
	for i, c := range cands {
		target, err := marshalJSON(c.Target)
		if err != nil {
			return fmt.Errorf("encode target of %s: %w", c.ID, err)
		}
		ins.Values(c.ID, c.SkillID, target, c.EstimatedDurationMinutes, c.EngagementScore,
			c.EffectivenessScore, c.IsDefault, c.IsActive, i)
	}
	query, args := ins.OnConflict(
		entsql.ConflictColumns("id"),
		entsql.ResolveWithNewValues(),
	).Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save presentation candidates: %w", err)
	}
	return nil
}
