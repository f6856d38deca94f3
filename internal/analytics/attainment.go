package analytics

import (
	"math"
)

const (
	// CalorieTolerance is the symmetric band around the calorie goal.
	CalorieTolerance = 0.10
	// ProteinFloor is the fraction of the protein goal a day must reach.
	ProteinFloor = 0.80
)

// Attainment is the per-day result of checking a DailyTotal against a Goal.
type Attainment struct {
	CalorieHit bool
	ProteinHit bool
}

// Hit reports whether both conditions passed.
func (a Attainment) Hit() bool {
	return a.CalorieHit && a.ProteinHit
}

// EvaluateDay checks calories within ±10% of the goal and protein at or above
// 80% of the goal. Going over on protein is never penalised.
func EvaluateDay(d DailyTotal, g Goal) Attainment {
	return Attainment{
		CalorieHit: math.Abs(float64(d.Calories)-g.Calories) <= g.Calories*CalorieTolerance,
		ProteinHit: d.ProteinG >= g.ProteinG*ProteinFloor,
	}
}

// EvaluateDays stamps the hit flags onto each day in place and returns how
// many days hit the goal.
func EvaluateDays(days []DailyTotal, g Goal) (goalsHit int) {
	for i := range days {
		a := EvaluateDay(days[i], g)
		days[i].CalorieHit = a.CalorieHit
		days[i].ProteinHit = a.ProteinHit
		days[i].GoalHit = a.Hit()
		if days[i].GoalHit {
			goalsHit++
		}
	}
	return goalsHit
}

// GoalPercentage is round(hit / logged * 100), or 0 for a bucket with no
// logged days.
func GoalPercentage(goalsHit, daysLogged int) int {
	if daysLogged <= 0 {
		return 0
	}
	return int(math.Round(float64(goalsHit) / float64(daysLogged) * 100))
}
