package gems

import "time"

// GemAward represents a single gem earned.
type GemAward struct {
	Type      GemType
	Rarity    Rarity
	LearnerID string
	Reason    string // human-readable reason, e.g. "10 days in a row!"
	AwardedAt time.Time
}
