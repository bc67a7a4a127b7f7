package domain

import "time"

// LinesPerLevel is how many cleared lines it takes to go up a level.
const LinesPerLevel = 10

var lineScores = [...]int{0, 40, 100, 300, 1200}

// Score is the award for clearing n lines at once while on level. n outside
// [0,4] scores nothing; a single piece can never clear more than four rows.
func Score(n, level int) int {
    if n < 0 || n >= len(lineScores) {
        return 0
    }
    return lineScores[n] * (level + 1)
}

// LevelFor derives the level from the total number of cleared lines.
func LevelFor(lines int) int {
    return lines / LinesPerLevel
}

const (
    baseDropInterval = 1000 * time.Millisecond
    dropStep         = 50 * time.Millisecond
    minDropInterval  = 50 * time.Millisecond
)

// DropInterval is the gravity period at level: 1s, 50ms faster per level,
// never below 50ms.
func DropInterval(level int) time.Duration {
    d := baseDropInterval - time.Duration(level)*dropStep
    if d < minDropInterval {
        return minDropInterval
    }
    return d
}
