package engine

import "github.com/bookline/bookline/internal/model"

// Overlaps reports whether [startA, startA+durA) intersects [startB, startB+durB).
// Durations are minutes. Half-open intervals: an appointment ending at 10:00
// does not collide with one starting at 10:00.
func Overlaps(startA model.MinuteOfDay, durA int, startB model.MinuteOfDay, durB int) bool {
	return int(startA) < int(startB)+durB && int(startB) < int(startA)+durA
}
