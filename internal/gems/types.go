package gems

// GemType identifies the category of achievement.
type GemType string

const (
	GemStreak  GemType = "streak"
	GemLevel   GemType = "level"
	GemMastery GemType = "mastery"
)

// AllGemTypes returns all gem types in display order.
func AllGemTypes() []GemType {
	return []GemType{GemStreak, GemLevel, GemMastery}
}

// DisplayName returns a human-readable label for the gem type.
func (t GemType) DisplayName() string {
	switch t {
	case GemStreak:
		return "Streak"
	case GemLevel:
		return "Level"
	case GemMastery:
		return "Mastery"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the gem type.
func (t GemType) Icon() string {
	switch t {
	case GemStreak:
		return "⚡"
	case GemLevel:
		return "🏆"
	case GemMastery:
		return "💎"
	default:
		return "✦"
	}
}
