// Package energy computes resting and total daily energy expenditure and turns
// a calorie figure into macro-gram targets. Everything here is pure: no clock,
// no I/O, deterministic for a given input.
package energy

import (
	"errors"
	"math"
	"time"
)

// ErrMissingProfileData is returned when weight, height or age is absent or
// non-positive. Callers choose between surfacing it and DailyTargetsOrDefault.
var ErrMissingProfileData = errors.New("energy: missing profile data")

// DefaultDailyCalories is the documented fallback when the profile is incomplete.
const DefaultDailyCalories = 2000

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// Profile holds the body stats the Mifflin-St Jeor equation needs.
type Profile struct {
	WeightKG float64
	HeightCM float64
	AgeYears float64
	Sex      Sex
	Activity ActivityLevel
}

// Targets is a daily calorie figure plus its macro split in whole grams.
type Targets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

/* ─── Energy expenditure ─────────────────────────────────────────────── */

// BMR returns basal metabolic rate via Mifflin-St Jeor:
// 10*kg + 6.25*cm - 5*age, +5 for male, -161 otherwise. Clamped at zero.
func BMR(p Profile) (float64, error) {
	if p.WeightKG <= 0 || p.HeightCM <= 0 || p.AgeYears <= 0 {
		return 0, ErrMissingProfileData
	}
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*p.AgeYears
	if p.Sex == Male {
		bmr += 5
	} else {
		bmr -= 161
	}
	return math.Max(0, bmr), nil
}

// TDEE scales BMR by the profile's activity multiplier.
func TDEE(p Profile) (float64, error) {
	bmr, err := BMR(p)
	if err != nil {
		return 0, err
	}
	return bmr * p.Activity.Multiplier(), nil
}

/* ─── Macro targets ──────────────────────────────────────────────────── */

// MacroTargets converts a calorie figure into grams using the ratio preset:
// protein and carbs at 4 kcal/g, fat at 9 kcal/g, each rounded to the nearest gram.
func MacroTargets(calories float64, r MacroRatio) Targets {
	if calories < 0 || math.IsNaN(calories) {
		calories = 0
	}
	split := r.Split()
	return Targets{
		Calories: int(math.Round(calories)),
		ProteinG: int(math.Round(calories * split.Protein / kcalPerGramProtein)),
		CarbsG:   int(math.Round(calories * split.Carbs / kcalPerGramCarbs)),
		FatG:     int(math.Round(calories * split.Fat / kcalPerGramFat)),
	}
}

// DailyTargets derives TDEE from the profile and splits it by the ratio preset.
func DailyTargets(p Profile, r MacroRatio) (Targets, error) {
	tdee, err := TDEE(p)
	if err != nil {
		return Targets{}, err
	}
	return MacroTargets(tdee, r), nil
}

// DailyTargetsOrDefault is DailyTargets with the 2000 kcal fallback applied
// when the profile is incomplete. fallback reports whether it was used.
func DailyTargetsOrDefault(p Profile, r MacroRatio) (t Targets, fallback bool) {
	t, err := DailyTargets(p, r)
	if err != nil {
		return MacroTargets(DefaultDailyCalories, r), true
	}
	return t, false
}

// AgeOn returns whole years between dob and now, or -1 if dob is after now.
func AgeOn(dob, now time.Time) int {
	if dob.After(now) {
		return -1
	}
	age := now.Year() - dob.Year()
	if now.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

// PoundsToKG converts a weight in pounds to kilograms.
func PoundsToKG(lbs float64) float64 {
	return lbs / 2.20462
}
