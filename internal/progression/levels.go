// Package progression tracks XP accrual and the level ladder it drives.
package progression

// thresholds[i] is the XP needed to go from level i+1 to level i+2.
// Levels past the table reuse the last entry.
var thresholds = []int{100, 150, 200, 300, 400, 500, 650, 800, 1000, 1200}

// Threshold returns the XP required to complete the given 1-based level.
func Threshold(level int) int {
	if level < 1 {
		level = 1
	}
	if level > len(thresholds) {
		return thresholds[len(thresholds)-1]
	}
	return thresholds[level-1]
}

// CumulativeXP returns the total XP at which level is reached.
// Level 1 starts at zero.
func CumulativeXP(level int) int {
	sum := 0
	for l := 1; l < level; l++ {
		sum += Threshold(l)
	}
	return sum
}

// LevelForXP returns the highest level whose cumulative threshold is at most total.
func LevelForXP(total int) int {
	level := 1
	cum := 0
	for total >= cum+Threshold(level) {
		cum += Threshold(level)
		level++
	}
	return level
}
