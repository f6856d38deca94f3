package analytics

import "time"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(t time.Time, calories int, proteinG float64) Entry {
	return Entry{Date: t, Calories: calories, ProteinG: proteinG}
}

func days(ts ...time.Time) []Day {
	out := make([]Day, len(ts))
	for i, t := range ts {
		out[i] = DayOf(t)
	}
	return out
}

// dailyRun returns one entry per day for n days starting at start.
func dailyRun(start time.Time, n, calories int, proteinG float64) []Entry {
	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entry(start.AddDate(0, 0, i), calories, proteinG))
	}
	return out
}
