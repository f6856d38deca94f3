package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateDay_Bands(t *testing.T) {
	goal := Goal{Calories: 2000, ProteinG: 100}
	cases := []struct {
		name           string
		calories       int
		protein        float64
		calorie, prot  bool
	}{
		{"on target", 2000, 100, true, true},
		{"lower calorie edge", 1800, 100, true, true},
		{"upper calorie edge", 2200, 100, true, true},
		{"below band", 1799, 100, false, true},
		{"above band", 2201, 100, false, true},
		{"protein floor", 2000, 80, true, true},
		{"protein under floor", 2000, 79.9, true, false},
		{"protein overshoot is fine", 2000, 400, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := EvaluateDay(DailyTotal{Calories: tc.calories, ProteinG: tc.protein}, goal)
			assert.Equal(t, tc.calorie, a.CalorieHit)
			assert.Equal(t, tc.prot, a.ProteinHit)
			assert.Equal(t, tc.calorie && tc.prot, a.Hit())
		})
	}
}

func TestGoalPercentage(t *testing.T) {
	assert.Equal(t, 0, GoalPercentage(0, 0))
	assert.Equal(t, 100, GoalPercentage(30, 30))
	assert.Equal(t, 67, GoalPercentage(2, 3))
	assert.Equal(t, 0, GoalPercentage(0, 12))
}

func TestConsistencyScore(t *testing.T) {
	today := date(2026, 3, 30)

	assert.Equal(t, 0, ConsistencyScore(nil, today), "no entries")
	assert.Equal(t, 0, ConsistencyScore(dailyRun(date(2026, 1, 1), 10, 2000, 0), today), "all outside window")
	assert.Equal(t, 0, ConsistencyScore(dailyRun(date(2026, 3, 1), 30, 0, 0), today), "zero mean")
	assert.Equal(t, 100, ConsistencyScore(dailyRun(date(2026, 3, 1), 30, 2000, 0), today), "flat intake")

	var alternating []Entry
	for i := 0; i < 30; i++ {
		calories := 1000
		if i%2 == 1 {
			calories = 3000
		}
		alternating = append(alternating, entry(date(2026, 3, 1).AddDate(0, 0, i), calories, 0))
	}
	// mean 2000, stddev 1000
	assert.Equal(t, 50, ConsistencyScore(alternating, today))

	spiky := []Entry{
		entry(date(2026, 3, 27), 0, 0),
		entry(date(2026, 3, 28), 0, 0),
		entry(date(2026, 3, 29), 0, 0),
		entry(date(2026, 3, 30), 3000, 0),
	}
	assert.Equal(t, 0, ConsistencyScore(spiky, today), "clamped at zero")
}

func TestConsistencyScore_WindowEdges(t *testing.T) {
	today := date(2026, 3, 30)
	entries := []Entry{
		entry(date(2026, 2, 28), 9000, 0), // 30 days back, outside
		entry(date(2026, 3, 1), 2000, 0),  // first day of the window
		entry(date(2026, 3, 30), 2000, 0),
		entry(date(2026, 3, 31), 9000, 0), // after today
	}
	assert.Equal(t, 100, ConsistencyScore(entries, today))
}

func TestCompareTrend(t *testing.T) {
	month := func(pct int) MonthlyStat {
		return MonthlyStat{PeriodStat: PeriodStat{GoalPercentage: pct}}
	}

	assert.Equal(t, TrendSignal{Direction: Stable}, CompareTrend(nil))
	assert.Equal(t, TrendSignal{Direction: Stable}, CompareTrend([]MonthlyStat{month(90)}))
	assert.Equal(t, TrendSignal{Direction: Improving, Magnitude: 10}, CompareTrend([]MonthlyStat{month(70), month(60)}))
	assert.Equal(t, TrendSignal{Direction: Declining, Magnitude: 10}, CompareTrend([]MonthlyStat{month(60), month(70)}))
	assert.Equal(t, TrendSignal{Direction: Stable, Magnitude: 5}, CompareTrend([]MonthlyStat{month(65), month(60)}))
}

func TestClassifyDelta_Symmetry(t *testing.T) {
	for delta := -100; delta <= 100; delta++ {
		up, down := ClassifyDelta(delta), ClassifyDelta(-delta)
		assert.Equal(t, up.Magnitude, down.Magnitude)
		switch {
		case delta > TrendThreshold:
			assert.Equal(t, Improving, up.Direction)
			assert.Equal(t, Declining, down.Direction)
		case delta < -TrendThreshold:
			assert.Equal(t, Declining, up.Direction)
			assert.Equal(t, Improving, down.Direction)
		default:
			assert.Equal(t, Stable, up.Direction)
			assert.Equal(t, Stable, down.Direction)
		}
	}
}
