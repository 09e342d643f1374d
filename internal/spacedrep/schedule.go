package spacedrep

// SM-2 parameters.
const (
	// InitialInterval is the interval assigned to a first successful recall.
	InitialInterval = 1

	// SecondInterval is the interval after the second consecutive successful recall.
	SecondInterval = 6

	// InitialEaseFactor is the ease factor of a never-reviewed exercise.
	InitialEaseFactor = 2.5

	// MinEaseFactor is the floor the ease factor is clamped to.
	MinEaseFactor = 1.3

	// MinInterval and MaxInterval bound every scheduled interval, in days.
	MinInterval = 1
	MaxInterval = 365

	// PassingQuality is the lowest quality that counts as a successful recall.
	PassingQuality = 3
)
