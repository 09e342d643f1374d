package gems

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/adaptly/internal/store"
)

// mockEventRepo implements store.EventRepo for gems tests.
type mockEventRepo struct {
	gemEvents []store.GemEventData
	counts    map[string]int
	total     int
	err       error
}

func (m *mockEventRepo) AppendAttemptEvent(_ context.Context, _ store.AttemptEventData) error {
	return nil
}
func (m *mockEventRepo) SessionAttempts(_ context.Context, _, _ string) ([]store.AttemptEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendEmotionEvent(_ context.Context, _ store.EmotionEventData) error {
	return nil
}
func (m *mockEventRepo) QueryEmotionEvents(_ context.Context, _ string, _ store.QueryOpts) ([]store.EmotionEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendGemEvent(_ context.Context, data store.GemEventData) error {
	if m.err != nil {
		return m.err
	}
	m.gemEvents = append(m.gemEvents, data)
	return nil
}
func (m *mockEventRepo) QueryGemEvents(_ context.Context, _ string, _ store.QueryOpts) ([]store.GemEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) GemCounts(_ context.Context, _ string) (map[string]int, int, error) {
	return m.counts, m.total, nil
}

var awardedAt = time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

func newTestService() (*Service, *mockEventRepo) {
	repo := &mockEventRepo{
		counts: map[string]int{"level": 3, "streak": 2},
		total:  5,
	}
	return NewService(repo), repo
}

func TestAwardStreak(t *testing.T) {
	svc, repo := newTestService()

	award, err := svc.AwardStreak(context.Background(), "maya", 10, awardedAt)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if award.Type != GemStreak {
		t.Errorf("Type = %q, want %q", award.Type, GemStreak)
	}
	if award.Rarity != RarityRare {
		t.Errorf("Rarity = %q, want %q", award.Rarity, RarityRare)
	}
	if award.Reason != "10 days in a row!" {
		t.Errorf("Reason = %q", award.Reason)
	}
	if len(repo.gemEvents) != 1 {
		t.Fatalf("persisted %d events, want 1", len(repo.gemEvents))
	}
	ev := repo.gemEvents[0]
	if ev.GemType != "streak" || ev.LearnerID != "maya" || !ev.Timestamp.Equal(awardedAt) {
		t.Errorf("persisted event = %+v", ev)
	}
}

func TestAwardLevel(t *testing.T) {
	svc, repo := newTestService()

	award, err := svc.AwardLevel(context.Background(), "leo", 7, awardedAt)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if award.Type != GemLevel || award.Rarity != RarityEpic {
		t.Errorf("award = %+v", award)
	}
	if len(repo.gemEvents) != 1 || repo.gemEvents[0].Rarity != string(RarityEpic) {
		t.Errorf("persisted = %+v", repo.gemEvents)
	}
}

func TestAwardMastery(t *testing.T) {
	svc, repo := newTestService()

	award, err := svc.AwardMastery(context.Background(), "leo", "frac-3", 0.8, awardedAt)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if award.Reason != "Mastered frac-3 (80% accuracy)" {
		t.Errorf("Reason = %q", award.Reason)
	}
	if repo.gemEvents[0].GemType != "mastery" {
		t.Errorf("persisted type = %q, want %q", repo.gemEvents[0].GemType, "mastery")
	}
}

func TestAward_PersistError(t *testing.T) {
	svc, repo := newTestService()
	repo.err = errors.New("disk full")

	award, err := svc.AwardStreak(context.Background(), "maya", 5, awardedAt)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, repo.err) {
		t.Errorf("err = %v, want wrapped disk full", err)
	}
	if award == nil {
		t.Error("award should still be returned")
	}
}

func TestCounts(t *testing.T) {
	svc, _ := newTestService()

	counts, total, err := svc.Counts(context.Background(), "maya")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if counts[GemLevel] != 3 || counts[GemStreak] != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestPersist_NilEventRepo(t *testing.T) {
	svc := NewService(nil)

	// Should not panic with nil eventRepo.
	award, err := svc.AwardStreak(context.Background(), "maya", 5, awardedAt)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if award == nil {
		t.Error("expected non-nil award even with nil eventRepo")
	}
	_, total, err := svc.Counts(context.Background(), "maya")
	if err != nil || total != 0 {
		t.Errorf("counts with nil repo = %d, %v", total, err)
	}
}

func TestGemType_DisplayAndIcon(t *testing.T) {
	for _, gt := range AllGemTypes() {
		if gt.DisplayName() == string(gt) {
			t.Errorf("%q has no display name", gt)
		}
		if gt.Icon() == "✦" {
			t.Errorf("%q has no icon", gt)
		}
	}
	if GemType("other").DisplayName() != "other" {
		t.Error("unknown type should display as-is")
	}
}
