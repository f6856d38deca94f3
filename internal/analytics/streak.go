package analytics

import "sort"

// LongestStreak returns the longest run of consecutive calendar days in dates.
// Duplicates and ordering are handled here; callers choose the date set, so the
// same primitive serves one bucket or the full history.
func LongestStreak(dates []Day) int {
	sorted := distinctSorted(dates)
	if len(sorted) == 0 {
		return 0
	}

	longest, run := 0, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].DaysUntil(sorted[i]) == 1 {
			run++
			continue
		}
		longest = max(longest, run)
		run = 1
	}
	return max(longest, run)
}

// CurrentStreak returns the run of consecutive days ending today, or ending
// yesterday when nothing has been logged yet today. Zero otherwise.
func CurrentStreak(dates []Day, today Day) int {
	sorted := distinctSorted(dates)

	// Ignore anything after today.
	end := sort.Search(len(sorted), func(i int) bool { return sorted[i].After(today.Time) })
	sorted = sorted[:end]
	if len(sorted) == 0 {
		return 0
	}

	last := sorted[len(sorted)-1]
	if gap := last.DaysUntil(today); gap > 1 {
		return 0
	}
	run := 1
	for i := len(sorted) - 1; i > 0; i-- {
		if sorted[i-1].DaysUntil(sorted[i]) != 1 {
			break
		}
		run++
	}
	return run
}

func distinctSorted(dates []Day) []Day {
	seen := make(map[Day]bool, len(dates))
	out := make([]Day, 0, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j].Time) })
	return out
}
