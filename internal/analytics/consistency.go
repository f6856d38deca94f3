package analytics

import (
	"math"
	"time"
)

// ConsistencyWindowDays is the trailing window, today included.
const ConsistencyWindowDays = 30

// ConsistencyScore rates day-to-day calorie stability over the trailing
// 30 calendar days ending today: 100 - (population stddev / mean) * 100,
// clamped to [0, 100] and rounded. A window with no logged days, or whose
// mean is zero, scores 0.
func ConsistencyScore(entries []Entry, today time.Time) int {
	end := DayOf(today)
	start := end.AddDays(-(ConsistencyWindowDays - 1))

	var inWindow []Entry
	for _, e := range entries {
		d := DayOf(e.Date)
		if !d.Before(start.Time) && !d.After(end.Time) {
			inWindow = append(inWindow, e)
		}
	}

	days := FoldDaily(inWindow)
	if len(days) == 0 {
		return 0
	}

	mean, stdDev := calorieDispersion(days)
	if mean <= 0 {
		return 0
	}
	score := 100 - (stdDev/mean)*100
	return int(math.Round(math.Min(100, math.Max(0, score))))
}

// calorieDispersion returns the mean and population standard deviation of
// daily calories. days must be non-empty.
func calorieDispersion(days []DailyTotal) (mean, stdDev float64) {
	n := float64(len(days))
	for i := range days {
		mean += float64(days[i].Calories)
	}
	mean /= n

	var sumSq float64
	for i := range days {
		diff := float64(days[i].Calories) - mean
		sumSq += diff * diff
	}
	return mean, math.Sqrt(sumSq / n)
}
