package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGoal = Goal{Calories: 2000, ProteinG: 150, CarbsG: 250, FatG: 67}

func TestCompute_EmptyInput(t *testing.T) {
	report := Compute(nil, testGoal, date(2026, 3, 30))

	assert.Empty(t, report.Monthly)
	assert.Empty(t, report.Weekly)
	assert.Nil(t, report.CurrentMonth)
	assert.Equal(t, TrendSignal{Direction: Stable, Magnitude: 0}, report.Trend)
	assert.Equal(t, 0, report.Consistency)
	assert.Equal(t, StreakSummary{}, report.Streak)

	body, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"monthly": [],
		"weekly": [],
		"current_month": null,
		"trend": {"direction": "stable", "magnitude": 0},
		"consistency": 0,
		"streak": {"current": 0, "longest": 0}
	}`, string(body))
}

func TestCompute_FullMonthOnGoal(t *testing.T) {
	now := time.Date(2026, 3, 30, 20, 0, 0, 0, time.UTC)
	entries := dailyRun(date(2026, 3, 1), 30, 2000, 150)

	report := Compute(entries, testGoal, now)
	require.Len(t, report.Monthly, 1)
	march := report.Monthly[0]
	assert.Equal(t, "March 2026", march.Label)
	assert.Equal(t, 2026, march.Year)
	assert.Equal(t, time.March, march.Month)
	assert.Equal(t, 30, march.DaysLogged)
	assert.Equal(t, 30, march.GoalsHit)
	assert.Equal(t, 30, march.TotalGoals)
	assert.Equal(t, 100, march.GoalPercentage)
	assert.Equal(t, 30, march.StreakDays)
	assert.Equal(t, 60000, march.TotalCalories)
	assert.InDelta(t, 2000.0, march.AvgCalories, 1e-9)
	assert.InDelta(t, 150.0, march.AvgProteinG, 1e-9)

	require.NotNil(t, report.CurrentMonth)
	assert.Equal(t, march.Label, report.CurrentMonth.Label)
	assert.Equal(t, 100, report.Consistency)
	assert.Equal(t, StreakSummary{Current: 30, Longest: 30}, report.Streak)

	// March 1 2026 is a Sunday, so it closes the week of Feb 23.
	require.Len(t, report.Weekly, 6)
	assert.Equal(t, "Feb 23", report.Weekly[0].Label)
	assert.Equal(t, 1, report.Weekly[0].DaysLogged)
	assert.Equal(t, "Mar 30", report.Weekly[5].Label)
	var weeklyDays int
	for _, w := range report.Weekly {
		weeklyDays += w.DaysLogged
		assert.Equal(t, 100, w.GoalPercentage)
	}
	assert.Equal(t, 30, weeklyDays)
}

func TestCompute_SameDateFolds(t *testing.T) {
	d := date(2026, 5, 4)
	report := Compute([]Entry{entry(d, 300, 10), entry(d, 250, 12)}, testGoal, d)

	require.Len(t, report.Monthly, 1)
	m := report.Monthly[0]
	assert.Equal(t, 1, m.DaysLogged)
	require.Len(t, m.Days, 1)
	assert.Equal(t, 550, m.Days[0].Calories)
	assert.InDelta(t, 22.0, m.Days[0].ProteinG, 1e-9)
	assert.False(t, m.Days[0].GoalHit)
	assert.Equal(t, 0, m.GoalPercentage)
}

func TestCompute_TrendImproving(t *testing.T) {
	var entries []Entry
	// February: 10 logged days, 6 on goal.
	for i := 0; i < 10; i++ {
		calories := 2000
		if i >= 6 {
			calories = 3000
		}
		entries = append(entries, entry(date(2026, 2, 1).AddDate(0, 0, i), calories, 150))
	}
	// March: 10 logged days, 7 on goal.
	for i := 0; i < 10; i++ {
		calories := 2000
		if i >= 7 {
			calories = 1000
		}
		entries = append(entries, entry(date(2026, 3, 1).AddDate(0, 0, i), calories, 150))
	}

	report := Compute(entries, testGoal, date(2026, 3, 20))
	require.Len(t, report.Monthly, 2)
	assert.Equal(t, 70, report.Monthly[0].GoalPercentage)
	assert.Equal(t, 60, report.Monthly[1].GoalPercentage)
	assert.Equal(t, TrendSignal{Direction: Improving, Magnitude: 10}, report.Trend)
}

func TestCompute_CurrentMonthMissing(t *testing.T) {
	entries := dailyRun(date(2025, 10, 10), 5, 2000, 150)
	report := Compute(entries, testGoal, date(2026, 3, 20))

	require.Len(t, report.Monthly, 1)
	assert.Nil(t, report.CurrentMonth)
	assert.Empty(t, report.Weekly)
	assert.Equal(t, 0, report.Consistency)
	assert.Equal(t, StreakSummary{Current: 0, Longest: 5}, report.Streak)
}

func TestCompute_MonthlyStreakStaysInsideBucket(t *testing.T) {
	// Jan 29 - Feb 3 is one 6-day run across two months.
	entries := dailyRun(date(2026, 1, 29), 6, 2000, 150)
	report := Compute(entries, testGoal, date(2026, 2, 3))

	require.Len(t, report.Monthly, 2)
	assert.Equal(t, 3, report.Monthly[0].StreakDays) // Feb 1-3
	assert.Equal(t, 3, report.Monthly[1].StreakDays) // Jan 29-31
	assert.Equal(t, 6, report.Streak.Longest)
}

func TestCompute_Idempotent(t *testing.T) {
	now := date(2026, 3, 30)
	entries := append(dailyRun(date(2026, 1, 5), 40, 1900, 140), dailyRun(date(2026, 3, 2), 20, 2300, 90)...)

	first, err := json.Marshal(Compute(entries, testGoal, now))
	require.NoError(t, err)
	second, err := json.Marshal(Compute(entries, testGoal, now))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestCompute_AttainmentBounds(t *testing.T) {
	entries := []Entry{
		entry(date(2026, 4, 1), 2000, 150),
		entry(date(2026, 4, 2), 500, 150),
		entry(date(2026, 4, 3), 2100, 10),
		entry(date(2026, 4, 5), 1950, 200),
	}
	report := Compute(entries, testGoal, date(2026, 4, 5))
	for _, m := range report.Monthly {
		assert.GreaterOrEqual(t, m.GoalPercentage, 0)
		assert.LessOrEqual(t, m.GoalPercentage, 100)
	}
	assert.Equal(t, 2, report.Monthly[0].GoalsHit)
	assert.Equal(t, 50, report.Monthly[0].GoalPercentage)
	assert.Equal(t, 3, report.Monthly[0].StreakDays)
}
