package spacedrep

// Quality is the ordinal 0–5 rating of a single attempt.
// 0 is a total failure, 5 is perfect instant recall.
type Quality int

const (
	QualityBlackout  Quality = 0
	QualityWrongHint Quality = 1
	QualityWrong     Quality = 2
	QualityHard      Quality = 3
	QualityGood      Quality = 4
	QualityPerfect   Quality = 5
)

// Timing thresholds for correct answers given without hints.
const (
	FastAnswerMs = 10000
	SlowAnswerMs = 60000
)

// Valid reports whether q is within [0, 5].
func (q Quality) Valid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Passing reports whether q counts as a successful recall.
func (q Quality) Passing() bool {
	return q >= PassingQuality
}

// EstimateQuality converts a raw attempt outcome into a quality rating.
// Inputs are not validated; negative values are the caller's problem.
func EstimateQuality(correct bool, timeSpentMs int, hintsUsed int) Quality {
	if !correct {
		if hintsUsed > 0 {
			return QualityWrongHint
		}
		return QualityWrong
	}

	switch {
	case hintsUsed > 1:
		return QualityHard
	case hintsUsed == 1:
		return QualityGood
	case timeSpentMs < FastAnswerMs:
		return QualityPerfect
	case timeSpentMs > SlowAnswerMs:
		return QualityHard
	default:
		return QualityGood
	}
}
