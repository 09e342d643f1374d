package emotion

import "math/rand/v2"

var messagePool = map[Emotion][]string{
	Engaged: {
		"Nice work, {name}! Keep going.",
		"You're doing great, {name}.",
		"Steady and strong, {name}!",
	},
	Frustrated: {
		"That one was tricky, {name}. Let's try an easier one together.",
		"Mistakes help us learn, {name}. Here's a gentler one.",
	},
	Bored: {
		"You're flying through these, {name}! Ready for a challenge?",
		"Too easy? Let's level up, {name}.",
	},
	Tired: {
		"You've worked hard, {name}. How about a quick break?",
		"Time to stretch, {name}! Come back refreshed.",
	},
	Confident: {
		"Wow, {name}, what a streak!",
		"You're on fire, {name}!",
	},
	Struggling: {
		"Let's work through this one step by step, {name}.",
		"I'll guide you through it, {name}.",
	},
}

// pickMessage returns a message for e. With a nil r the first message is used.
func pickMessage(e Emotion, r *rand.Rand) string {
	pool := messagePool[e]
	if len(pool) == 0 {
		return ""
	}
	if r == nil {
		return pool[0]
	}
	return pool[r.IntN(len(pool))]
}
