// Package entity contains the core business objects of the project.
package entity

// LevelThresholds is the fixed ascending XP table. Level n requires
// LevelThresholds[n-1] XP, so every account starts at level 1.
var LevelThresholds = []int{0, 100, 250, 500, 1000, 2000, 3500, 5500, 8000, 11000}

// MaxLevel is the highest reachable level.
var MaxLevel = len(LevelThresholds)

// LevelForXP derives the 1-indexed level for a given XP total: the largest i
// such that xp >= LevelThresholds[i-1].
func LevelForXP(xp int) int {
	level := 1
	for i, threshold := range LevelThresholds {
		if xp < threshold {
			break
		}
		level = i + 1
	}

	return level
}

// LevelUpEvent is the one-shot notification payload raised when an
// XP-granting action crosses a level threshold. It stays on the user until
// explicitly dismissed.
type LevelUpEvent struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}
