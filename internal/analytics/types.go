// Package analytics aggregates nutrition log entries into monthly and weekly
// stats, goal attainment, logging streaks, a consistency score and a
// month-over-month trend. Every function is a pure computation over the
// entries, goal and "now" it receives; nothing is cached between calls.
package analytics

import (
	"time"
)

// Day is a calendar date normalised to midnight UTC. It serialises as "YYYY-MM-DD".
type Day struct{ time.Time }

// DayOf drops the time of day from t, keeping t's own calendar date.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// AddDays returns the date n calendar days later (or earlier for negative n).
func (d Day) AddDays(n int) Day {
	return Day{d.Time.AddDate(0, 0, n)}
}

// DaysUntil returns the number of calendar days from d to other.
func (d Day) DaysUntil(other Day) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

func (d Day) String() string {
	return d.Time.Format("2006-01-02")
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

/* ─── Inputs ─────────────────────────────────────────────────────────── */

// Entry is one logged contribution to a day's intake. Amounts are non-negative.
type Entry struct {
	Date     time.Time `json:"date"`
	Calories int       `json:"calories"`
	ProteinG float64   `json:"protein_g"`
	CarbsG   float64   `json:"carbs_g"`
	FatG     float64   `json:"fat_g"`
}

// Goal is the daily target snapshot every day is judged against, including
// days logged before the goal was last changed.
type Goal struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

/* ─── Derived records ────────────────────────────────────────────────── */

// DailyTotal sums every entry sharing one calendar date.
type DailyTotal struct {
	Date       Day     `json:"date"`
	Calories   int     `json:"calories"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FatG       float64 `json:"fat_g"`
	CalorieHit bool    `json:"calorie_hit"`
	ProteinHit bool    `json:"protein_hit"`
	GoalHit    bool    `json:"goal_hit"`
}

// Bucket is a labelled span of calendar days and the entries falling inside it.
type Bucket struct {
	Label   string
	Start   Day
	End     Day
	Entries []Entry
}

// PeriodStat is a bucket's daily totals plus its aggregates. Averages divide
// by DaysLogged, not by the span's calendar length.
type PeriodStat struct {
	Label          string       `json:"label"`
	Start          Day          `json:"start"`
	End            Day          `json:"end"`
	DaysLogged     int          `json:"days_logged"`
	TotalCalories  int          `json:"total_calories"`
	TotalProteinG  float64      `json:"total_protein_g"`
	TotalCarbsG    float64      `json:"total_carbs_g"`
	TotalFatG      float64      `json:"total_fat_g"`
	AvgCalories    float64      `json:"avg_calories"`
	AvgProteinG    float64      `json:"avg_protein_g"`
	AvgCarbsG      float64      `json:"avg_carbs_g"`
	AvgFatG        float64      `json:"avg_fat_g"`
	GoalsHit       int          `json:"goals_hit"`
	TotalGoals     int          `json:"total_goals"`
	GoalPercentage int          `json:"goal_percentage"`
	StreakDays     int          `json:"streak_days"`
	Days           []DailyTotal `json:"days"`
}

// MonthlyStat is a calendar-month PeriodStat.
type MonthlyStat struct {
	PeriodStat
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// WeeklyStat is a Monday-to-Sunday PeriodStat.
type WeeklyStat struct {
	PeriodStat
}

// StreakSummary is the Streak Detector run over the whole history.
type StreakSummary struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Report is everything the analytics view renders.
type Report struct {
	Monthly      []MonthlyStat `json:"monthly"`
	Weekly       []WeeklyStat  `json:"weekly"`
	CurrentMonth *MonthlyStat  `json:"current_month"`
	Trend        TrendSignal   `json:"trend"`
	Consistency  int           `json:"consistency"`
	Streak       StreakSummary `json:"streak"`
}
