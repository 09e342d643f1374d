package theme

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestBar(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, "0%"},
		{0.5, "50%"},
		{1, "100%"},
		{1.5, "150%"},
	}
	for _, tt := range tests {
		got := Bar(tt.percent, 10)
		if !strings.HasSuffix(strings.TrimSpace(got), tt.want) {
			t.Errorf("Bar(%v) = %q, want suffix %q", tt.percent, got, tt.want)
		}
		// Bar width is clamped, so the rendered width never exceeds width + label.
		if w := lipgloss.Width(got); w > 10+2+len(tt.want) {
			t.Errorf("Bar(%v) width = %d", tt.percent, w)
		}
	}
}

func TestField(t *testing.T) {
	got := Field("Level", 3)
	if !strings.Contains(got, "Level") || !strings.Contains(got, "3") {
		t.Errorf("Field = %q", got)
	}
}

func TestStyledNamesKeepText(t *testing.T) {
	for _, s := range []string{Rarity("epic"), Emotion("tired"), Status("overdue"), Emotion("unknown")} {
		if strings.TrimSpace(s) == "" {
			t.Error("styled output should not be empty")
		}
	}
}
