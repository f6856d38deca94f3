package analytics

import "time"

// Compute builds the full Report from scratch. now anchors the rolling weeks,
// the consistency window, the current month and the current streak; nothing
// else in the package looks at the clock. Empty input yields empty lists, a
// nil CurrentMonth, a stable zero trend and a zero consistency score.
func Compute(entries []Entry, goal Goal, now time.Time) Report {
	monthly := MonthlyStats(entries, goal)
	report := Report{
		Monthly:     monthly,
		Weekly:      WeeklyStats(entries, goal, now),
		Trend:       CompareTrend(monthly),
		Consistency: ConsistencyScore(entries, now),
	}

	y, m, _ := now.Date()
	for i := range monthly {
		if monthly[i].Year == y && monthly[i].Month == m {
			current := monthly[i]
			report.CurrentMonth = &current
			break
		}
	}

	dates := Dates(FoldDaily(entries))
	report.Streak = StreakSummary{
		Current: CurrentStreak(dates, DayOf(now)),
		Longest: LongestStreak(dates),
	}
	return report
}

// MonthlyStats returns one MonthlyStat per month with entries, newest first.
func MonthlyStats(entries []Entry, goal Goal) []MonthlyStat {
	buckets := BucketByMonth(entries)
	stats := make([]MonthlyStat, 0, len(buckets))
	for _, b := range buckets {
		stat, ok := buildPeriodStat(b, goal)
		if !ok {
			continue
		}
		stats = append(stats, MonthlyStat{
			PeriodStat: stat,
			Year:       b.Start.Year(),
			Month:      b.Start.Month(),
		})
	}
	return stats
}

// WeeklyStats returns stats for the non-empty weeks among the last
// WeeksInView, oldest first.
func WeeklyStats(entries []Entry, goal Goal, now time.Time) []WeeklyStat {
	buckets := BucketByWeek(entries, now)
	stats := make([]WeeklyStat, 0, len(buckets))
	for _, b := range buckets {
		stat, ok := buildPeriodStat(b, goal)
		if !ok {
			continue
		}
		stats = append(stats, WeeklyStat{PeriodStat: stat})
	}
	return stats
}

// buildPeriodStat folds, evaluates and summarises one bucket. A bucket that
// folds to zero days is dropped rather than reported with a zero divisor.
func buildPeriodStat(b Bucket, goal Goal) (PeriodStat, bool) {
	days := FoldDaily(b.Entries)
	if len(days) == 0 {
		return PeriodStat{}, false
	}
	stat := summarize(b.Label, b.Start, b.End, days)
	stat.GoalsHit = EvaluateDays(stat.Days, goal)
	stat.TotalGoals = stat.DaysLogged
	stat.GoalPercentage = GoalPercentage(stat.GoalsHit, stat.DaysLogged)
	stat.StreakDays = LongestStreak(Dates(stat.Days))
	return stat, true
}
