package store

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table declarations fed to ent's migration engine. Column order matches the
// insert statements in the repositories.
var (
	// LearnersColumns holds the columns for the "learners" table.
	LearnersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "display_name", Type: field.TypeString, Default: ""},
		{Name: "age", Type: field.TypeInt, Default: 0},
		{Name: "learning_style", Type: field.TypeString, Default: ""},
		{Name: "interests", Type: field.TypeJSON, Nullable: true},
		{Name: "preferred_method", Type: field.TypeString, Default: ""},
		{Name: "energy_level", Type: field.TypeString, Default: ""},
		{Name: "time_available_minutes", Type: field.TypeInt, Nullable: true},
		{Name: "last_presentation_id", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// LearnersTable holds the schema information for the "learners" table.
	LearnersTable = &schema.Table{
		Name:       "learners",
		Columns:    LearnersColumns,
		PrimaryKey: []*schema.Column{LearnersColumns[0]},
	}

	// ExerciseProgressColumns holds the columns for the "exercise_progress" table.
	ExerciseProgressColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeString},
		{Name: "exercise_id", Type: field.TypeString},
		{Name: "interval", Type: field.TypeInt, Default: 1},
		{Name: "ease_factor", Type: field.TypeFloat64, Default: 2.5},
		{Name: "repetitions", Type: field.TypeInt, Default: 0},
		{Name: "next_review_date", Type: field.TypeTime, Nullable: true},
		{Name: "last_attempt_at", Type: field.TypeTime, Nullable: true},
		{Name: "attempts", Type: field.TypeInt, Default: 0},
		{Name: "correct_count", Type: field.TypeInt, Default: 0},
		{Name: "streak", Type: field.TypeInt, Default: 0},
		{Name: "speed_scores", Type: field.TypeJSON, Nullable: true},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ExerciseProgressTable holds the schema information for the "exercise_progress" table.
	ExerciseProgressTable = &schema.Table{
		Name:       "exercise_progress",
		Columns:    ExerciseProgressColumns,
		PrimaryKey: []*schema.Column{ExerciseProgressColumns[0], ExerciseProgressColumns[1]},
		Indexes: []*schema.Index{
			{
				Name:    "exerciseprogress_learner_id_next_review_date",
				Unique:  false,
				Columns: []*schema.Column{ExerciseProgressColumns[0], ExerciseProgressColumns[5]},
			},
		},
	}

	// ProgressionStatesColumns holds the columns for the "progression_states" table.
	ProgressionStatesColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeString},
		{Name: "total_xp", Type: field.TypeInt, Default: 0},
		{Name: "current_level", Type: field.TypeInt, Default: 1},
		{Name: "xp_to_next_level", Type: field.TypeInt, Default: 0},
		{Name: "xp_earned_today", Type: field.TypeInt, Default: 0},
		{Name: "last_xp_date", Type: field.TypeTime, Nullable: true},
	}
	// ProgressionStatesTable holds the schema information for the "progression_states" table.
	ProgressionStatesTable = &schema.Table{
		Name:       "progression_states",
		Columns:    ProgressionStatesColumns,
		PrimaryKey: []*schema.Column{ProgressionStatesColumns[0]},
	}

	// StreakStatesColumns holds the columns for the "streak_states" table.
	StreakStatesColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeString},
		{Name: "current_streak", Type: field.TypeInt, Default: 0},
		{Name: "longest_streak", Type: field.TypeInt, Default: 0},
		{Name: "last_activity_date", Type: field.TypeTime, Nullable: true},
		{Name: "freeze_available", Type: field.TypeBool, Default: false},
		{Name: "freeze_used_at", Type: field.TypeTime, Nullable: true},
	}
	// StreakStatesTable holds the schema information for the "streak_states" table.
	StreakStatesTable = &schema.Table{
		Name:       "streak_states",
		Columns:    StreakStatesColumns,
		PrimaryKey: []*schema.Column{StreakStatesColumns[0]},
	}

	// EmotionRulesColumns holds the columns for the "emotion_rules" table.
	EmotionRulesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "position", Type: field.TypeInt},
		{Name: "conditions", Type: field.TypeJSON},
		{Name: "emotion", Type: field.TypeString},
		{Name: "suggested_action", Type: field.TypeString, Default: ""},
		{Name: "message_template", Type: field.TypeString, Default: ""},
		{Name: "priority", Type: field.TypeInt, Default: 0},
		{Name: "confidence", Type: field.TypeFloat64, Default: 0},
	}
	// EmotionRulesTable holds the schema information for the "emotion_rules" table.
	EmotionRulesTable = &schema.Table{
		Name:       "emotion_rules",
		Columns:    EmotionRulesColumns,
		PrimaryKey: []*schema.Column{EmotionRulesColumns[0]},
	}

	// PresentationCandidatesColumns holds the columns for the "presentation_candidates" table.
	PresentationCandidatesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "target", Type: field.TypeJSON},
		{Name: "estimated_duration_minutes", Type: field.TypeInt, Default: 0},
		{Name: "engagement_score", Type: field.TypeFloat64, Default: 0},
		{Name: "effectiveness_score", Type: field.TypeFloat64, Default: 0},
		{Name: "is_default", Type: field.TypeBool, Default: false},
		{Name: "is_active", Type: field.TypeBool, Default: true},
		{Name: "position", Type: field.TypeInt, Default: 0},
	}
	// PresentationCandidatesTable holds the schema information for the "presentation_candidates" table.
	PresentationCandidatesTable = &schema.Table{
		Name:       "presentation_candidates",
		Columns:    PresentationCandidatesColumns,
		PrimaryKey: []*schema.Column{PresentationCandidatesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "presentationcandidate_skill_id",
				Unique:  false,
				Columns: []*schema.Column{PresentationCandidatesColumns[1]},
			},
		},
	}

	// AttemptEventsColumns holds the columns for the "attempt_events" table.
	AttemptEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "learner_id", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString},
		{Name: "exercise_id", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "time_ms", Type: field.TypeInt},
		{Name: "expected_ms", Type: field.TypeInt},
		{Name: "hints_used", Type: field.TypeInt},
		{Name: "quality", Type: field.TypeInt},
	}
	// AttemptEventsTable holds the schema information for the "attempt_events" table.
	AttemptEventsTable = &schema.Table{
		Name:       "attempt_events",
		Columns:    AttemptEventsColumns,
		PrimaryKey: []*schema.Column{AttemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attemptevent_learner_id_session_id",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[3], AttemptEventsColumns[4]},
			},
		},
	}

	// EmotionEventsColumns holds the columns for the "emotion_events" table.
	EmotionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "learner_id", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString},
		{Name: "emotion", Type: field.TypeString},
		{Name: "confidence", Type: field.TypeFloat64},
		{Name: "suggested_action", Type: field.TypeString},
		{Name: "source", Type: field.TypeString},
	}
	// EmotionEventsTable holds the schema information for the "emotion_events" table.
	EmotionEventsTable = &schema.Table{
		Name:       "emotion_events",
		Columns:    EmotionEventsColumns,
		PrimaryKey: []*schema.Column{EmotionEventsColumns[0]},
	}

	// GemEventsColumns holds the columns for the "gem_events" table.
	GemEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "learner_id", Type: field.TypeString},
		{Name: "gem_type", Type: field.TypeString},
		{Name: "rarity", Type: field.TypeString},
		{Name: "reason", Type: field.TypeString},
	}
	// GemEventsTable holds the schema information for the "gem_events" table.
	GemEventsTable = &schema.Table{
		Name:       "gem_events",
		Columns:    GemEventsColumns,
		PrimaryKey: []*schema.Column{GemEventsColumns[0]},
	}

	// GlobalSequenceColumns holds the columns for the "global_sequence" table.
	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	// GlobalSequenceTable holds the schema information for the "global_sequence" table.
	GlobalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		LearnersTable,
		ExerciseProgressTable,
		ProgressionStatesTable,
		StreakStatesTable,
		EmotionRulesTable,
		PresentationCandidatesTable,
		AttemptEventsTable,
		EmotionEventsTable,
		GemEventsTable,
		GlobalSequenceTable,
	}
)

// migrate creates missing tables and columns. It never drops anything.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}
