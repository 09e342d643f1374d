package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/adaptly/internal/emotion"
	"github.com/abhisek/adaptly/internal/presentation"
	"github.com/abhisek/adaptly/internal/progression"
	"github.com/abhisek/adaptly/internal/streak"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.db

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("/tmp/a.db")
	if !strings.HasPrefix(got, "/tmp/a.db?_pragma=busy_timeout(5000)&") {
		t.Errorf("withPragmas = %q", got)
	}
	got = withPragmas("file:x?mode=memory")
	if !strings.HasPrefix(got, "file:x?mode=memory&_pragma=") {
		t.Errorf("withPragmas = %q", got)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.db

	for _, tbl := range Tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", tbl.Name,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", tbl.Name, err)
		}
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := migrate(context.Background(), s.drv); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx, s.db)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLearnerRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Repo()
	ctx := context.Background()

	got, err := repo.Learner(ctx, "maya")
	if err != nil {
		t.Fatalf("learner (empty): %v", err)
	}
	if got != nil {
		t.Fatal("expected nil learner before save")
	}

	minutes := 20
	now := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	l := &Learner{
		ID:                   "maya",
		DisplayName:          "Maya",
		Age:                  9,
		LearningStyle:        "visual",
		Interests:            []string{"space", "dinosaurs"},
		EnergyLevel:          "high",
		TimeAvailableMinutes: &minutes,
		UpdatedAt:            now,
	}
	if err := repo.SaveLearner(ctx, l); err != nil {
		t.Fatalf("save: %v", err)
	}

	l.LastPresentationID = "p-2"
	l.UpdatedAt = now.Add(time.Hour)
	if err := repo.SaveLearner(ctx, l); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err = repo.Learner(ctx, "maya")
	if err != nil {
		t.Fatalf("learner: %v", err)
	}
	if got.DisplayName != "Maya" || got.Age != 9 || got.LastPresentationID != "p-2" {
		t.Errorf("learner = %+v", got)
	}
	if len(got.Interests) != 2 || got.Interests[1] != "dinosaurs" {
		t.Errorf("interests = %v", got.Interests)
	}
	if got.TimeAvailableMinutes == nil || *got.TimeAvailableMinutes != 20 {
		t.Errorf("time available = %v", got.TimeAvailableMinutes)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, now)
	}
	if !got.UpdatedAt.Equal(now.Add(time.Hour)) {
		t.Errorf("updated_at = %v", got.UpdatedAt)
	}

	ids, err := repo.Learners(ctx)
	if err != nil {
		t.Fatalf("learners: %v", err)
	}
	if len(ids) != 1 || ids[0] != "maya" {
		t.Errorf("learners = %v", ids)
	}
}

func TestExerciseProgressRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Repo()
	ctx := context.Background()

	p, err := repo.ExerciseProgress(ctx, "maya", "ex-1")
	if err != nil || p != nil {
		t.Fatalf("expected nil progress, got %v, %v", p, err)
	}

	next := time.Date(2026, 5, 7, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	in := &ExerciseProgress{
		LearnerID:      "maya",
		ExerciseID:     "ex-1",
		Interval:       6,
		EaseFactor:     2.36,
		Repetitions:    2,
		NextReviewDate: &next,
		LastAttemptAt:  &last,
		Attempts:       3,
		CorrectCount:   2,
		Streak:         1,
		SpeedScores:    []float64{1, 0.75},
		UpdatedAt:      last,
	}
	if err := repo.SaveExerciseProgress(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveExerciseProgress(ctx, &ExerciseProgress{
		LearnerID: "maya", ExerciseID: "ex-0", Interval: 1, EaseFactor: 2.5, UpdatedAt: last,
	}); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := repo.ExerciseProgress(ctx, "maya", "ex-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Interval != 6 || got.EaseFactor != 2.36 || got.Repetitions != 2 {
		t.Errorf("schedule = %+v", got)
	}
	if got.NextReviewDate == nil || !got.NextReviewDate.Equal(next) {
		t.Errorf("next review = %v, want %v", got.NextReviewDate, next)
	}
	if len(got.SpeedScores) != 2 || got.SpeedScores[1] != 0.75 {
		t.Errorf("speed scores = %v", got.SpeedScores)
	}

	all, err := repo.ListExerciseProgress(ctx, "maya")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ExerciseID != "ex-0" {
		t.Fatalf("list = %+v", all)
	}
	if all[0].NextReviewDate != nil || all[0].LastAttemptAt != nil {
		t.Errorf("unscheduled exercise has dates: %+v", all[0])
	}
}

func TestProgressionAndStreakState(t *testing.T) {
	s := openTestStore(t)
	repo := s.Repo()
	ctx := context.Background()

	ps, err := repo.ProgressionState(ctx, "leo")
	if err != nil || ps != nil {
		t.Fatalf("expected nil progression, got %v, %v", ps, err)
	}
	day := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	want := progression.State{TotalXP: 120, CurrentLevel: 2, XPToNextLevel: 130, XPEarnedToday: 120, LastXPDate: day}
	if err := repo.SaveProgressionState(ctx, "leo", want); err != nil {
		t.Fatalf("save progression: %v", err)
	}
	ps, err = repo.ProgressionState(ctx, "leo")
	if err != nil {
		t.Fatalf("load progression: %v", err)
	}
	if ps.TotalXP != 120 || ps.CurrentLevel != 2 || !ps.LastXPDate.Equal(day) {
		t.Errorf("progression = %+v", ps)
	}

	ss, err := repo.StreakState(ctx, "leo")
	if err != nil || ss != nil {
		t.Fatalf("expected nil streak, got %v, %v", ss, err)
	}
	st := streak.Update(nil, day)
	st, _ = streak.UseFreeze(st, day)
	if err := repo.SaveStreakState(ctx, "leo", st); err != nil {
		t.Fatalf("save streak: %v", err)
	}
	ss, err = repo.StreakState(ctx, "leo")
	if err != nil {
		t.Fatalf("load streak: %v", err)
	}
	if ss.CurrentStreak != 1 || ss.FreezeAvailable {
		t.Errorf("streak = %+v", ss)
	}
	if ss.LastActivityDate == nil || !ss.LastActivityDate.Equal(day) {
		t.Errorf("last activity = %v", ss.LastActivityDate)
	}
	if ss.FreezeUsedAt == nil || !ss.FreezeUsedAt.Equal(day) {
		t.Errorf("freeze used at = %v", ss.FreezeUsedAt)
	}
}

func TestReplaceEmotionRules(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := []emotion.Rule{
		{Emotion: emotion.Tired, SuggestedAction: "rest", Priority: 2, Conditions: map[string]string{"sessionDurationMinutes": ">30"}},
		{Emotion: emotion.Bored, SuggestedAction: "harder", Priority: 1, Conditions: map[string]string{"successRate": ">0.95"}},
	}
	err := s.WithTx(ctx, func(r *Repo) error { return r.ReplaceEmotionRules(ctx, first) })
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.Repo().EmotionRules(ctx)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if len(got) != 2 || got[0].Emotion != emotion.Tired || got[1].Conditions["successRate"] != ">0.95" {
		t.Fatalf("rules = %+v", got)
	}

	second := []emotion.Rule{{Emotion: emotion.Engaged, MessageTemplate: "Hi {name}", Confidence: 0.6}}
	err = s.WithTx(ctx, func(r *Repo) error { return r.ReplaceEmotionRules(ctx, second) })
	if err != nil {
		t.Fatalf("replace again: %v", err)
	}
	got, err = s.Repo().EmotionRules(ctx)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if len(got) != 1 || got[0].MessageTemplate != "Hi {name}" || got[0].Confidence != 0.6 {
		t.Errorf("rules = %+v", got)
	}
}

func TestPresentationCandidates(t *testing.T) {
	s := openTestStore(t)
	repo := s.Repo()
	ctx := context.Background()

	cands := []presentation.Candidate{
		{ID: "frac-game", SkillID: "fractions", EstimatedDurationMinutes: 10, EngagementScore: 4, IsActive: true,
			Target: presentation.TargetProfile{AgeMin: 8, AgeMax: 11, Interests: []string{"pizza"}, PedagogicalApproach: "game"}},
		{ID: "frac-direct", SkillID: "fractions", IsDefault: true, IsActive: true},
		{ID: "dec-video", SkillID: "decimals", IsActive: false},
	}
	if err := repo.SavePresentationCandidates(ctx, cands); err != nil {
		t.Fatalf("save: %v", err)
	}
	cands[2].IsActive = true
	if err := repo.SavePresentationCandidates(ctx, cands[2:]); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.PresentationCandidates(ctx, "fractions")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Saved order, not id order.
	if len(got) != 2 || got[0].ID != "frac-game" || got[1].ID != "frac-direct" || !got[1].IsDefault {
		t.Fatalf("candidates = %+v", got)
	}
	if got[0].Target.AgeMax != 11 || got[0].Target.Interests[0] != "pizza" {
		t.Errorf("target = %+v", got[0].Target)
	}

	// Re-saving in a new order moves the candidates.
	if err := repo.SavePresentationCandidates(ctx, []presentation.Candidate{cands[1], cands[0]}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got, err = repo.PresentationCandidates(ctx, "fractions")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got) != 2 || got[0].ID != "frac-direct" {
		t.Errorf("reordered candidates = %+v", got)
	}

	all, err := repo.PresentationCandidates(ctx, "")
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 3 || !all[0].IsActive {
		t.Errorf("all = %+v", all)
	}
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ts := time.Date(2026, 5, 3, 16, 0, 0, 0, time.UTC)

	err := s.WithTx(ctx, func(r *Repo) error {
		if err := r.AppendAttemptEvent(ctx, AttemptEventData{
			Timestamp: ts, LearnerID: "maya", SessionID: "s1", ExerciseID: "ex-1",
			Correct: true, TimeMs: 4000, ExpectedMs: 8000, Quality: 5,
		}); err != nil {
			return err
		}
		if err := r.AppendEmotionEvent(ctx, EmotionEventData{
			Timestamp: ts, LearnerID: "maya", SessionID: "s1", Emotion: "engaged",
			Confidence: 0.5, SuggestedAction: "continue", Source: "default",
		}); err != nil {
			return err
		}
		return r.AppendAttemptEvent(ctx, AttemptEventData{
			Timestamp: ts.Add(time.Minute), LearnerID: "maya", SessionID: "s1", ExerciseID: "ex-2",
			TimeMs: 9000, ExpectedMs: 8000, HintsUsed: 1, Quality: 1,
		})
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	attempts, err := s.Repo().SessionAttempts(ctx, "maya", "s1")
	if err != nil {
		t.Fatalf("attempts: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(attempts))
	}
	if attempts[0].Sequence != 1 || attempts[1].Sequence != 3 {
		t.Errorf("sequences = %d, %d, want 1, 3", attempts[0].Sequence, attempts[1].Sequence)
	}
	if !attempts[0].Correct || attempts[1].Correct || attempts[1].HintsUsed != 1 {
		t.Errorf("attempts = %+v", attempts)
	}
	if !attempts[0].Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", attempts[0].Timestamp, ts)
	}

	emotions, err := s.Repo().QueryEmotionEvents(ctx, "maya", QueryOpts{Limit: 5})
	if err != nil {
		t.Fatalf("emotions: %v", err)
	}
	if len(emotions) != 1 || emotions[0].Sequence != 2 {
		t.Errorf("emotions = %+v", emotions)
	}

	stats, err := s.Repo().AttemptStats(ctx, "maya")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats != (AttemptStats{Total: 2, Correct: 1, Sessions: 1}) {
		t.Errorf("stats = %+v", stats)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	boom := fmt.Errorf("boom")
	err := s.WithTx(ctx, func(r *Repo) error {
		if err := r.AppendGemEvent(ctx, GemEventData{Timestamp: time.Now(), LearnerID: "leo", GemType: "streak", Rarity: "common", Reason: "x"}); err != nil {
			return err
		}
		return boom
	})
	if err != boom {
		t.Fatalf("err = %v, want boom", err)
	}

	_, total, err := s.Repo().GemCounts(ctx, "leo")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d after rollback, want 0", total)
	}

	// The sequence increment rolled back too.
	seq, err := s.seq.Next(ctx, s.db)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 1 {
		t.Errorf("seq = %d, want 1", seq)
	}
}

func TestGemEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.Repo()
	ctx := context.Background()
	base := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)

	for i, g := range []string{"streak", "level", "streak"} {
		err := repo.AppendGemEvent(ctx, GemEventData{
			Timestamp: base.Add(time.Duration(i) * time.Hour), LearnerID: "leo",
			GemType: g, Rarity: "common", Reason: fmt.Sprintf("gem %d", i),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if err := repo.AppendGemEvent(ctx, GemEventData{Timestamp: base, LearnerID: "maya", GemType: "level", Rarity: "rare", Reason: "x"}); err != nil {
		t.Fatalf("append other learner: %v", err)
	}

	counts, total, err := repo.GemCounts(ctx, "leo")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if total != 3 || counts["streak"] != 2 || counts["level"] != 1 {
		t.Errorf("counts = %v total %d", counts, total)
	}

	events, err := repo.QueryGemEvents(ctx, "leo", QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 || events[0].Reason != "gem 2" {
		t.Errorf("events = %+v", events)
	}

	events, err = repo.QueryGemEvents(ctx, "leo", QueryOpts{From: base.Add(30 * time.Minute), Before: 3})
	if err != nil {
		t.Fatalf("query window: %v", err)
	}
	if len(events) != 1 || events[0].Reason != "gem 1" {
		t.Errorf("windowed events = %+v", events)
	}
}
