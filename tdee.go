package main

import (
	"math"
	"time"

	"lg/stride-nutrition-api/internal/analytics"
	"lg/stride-nutrition-api/internal/energy"
)

// profileFromSettings builds the energy model's input from stored settings.
// Returns energy.ErrMissingProfileData when sex, date of birth, height, weight
// or activity level is missing, unparseable, or the age is implausible.
func profileFromSettings(s *calorieLogUserSettings, now time.Time) (energy.Profile, error) {
	if s.Sex == nil || s.DateOfBirth == nil || s.HeightCM == nil ||
		s.WeightLBS == nil || s.ActivityLevel == nil {
		return energy.Profile{}, energy.ErrMissingProfileData
	}
	sex, err := energy.ParseSex(*s.Sex)
	if err != nil {
		return energy.Profile{}, energy.ErrMissingProfileData
	}
	activity, err := energy.ParseActivityLevel(*s.ActivityLevel)
	if err != nil {
		return energy.Profile{}, energy.ErrMissingProfileData
	}
	// Guard against implausible ages (e.g. DOB in the future, or over 130 years ago)
	age := energy.AgeOn(s.DateOfBirth.Time, now)
	if age <= 0 || age > 130 {
		return energy.Profile{}, energy.ErrMissingProfileData
	}
	return energy.Profile{
		WeightKG: energy.PoundsToKG(*s.WeightLBS),
		HeightCM: *s.HeightCM,
		AgeYears: float64(age),
		Sex:      sex,
		Activity: activity,
	}, nil
}

// macroRatioFromSettings returns the stored preset, or Balanced when unset.
func macroRatioFromSettings(s *calorieLogUserSettings) energy.MacroRatio {
	if s.MacroRatio == nil {
		return energy.Balanced
	}
	if r, err := energy.ParseMacroRatio(*s.MacroRatio); err == nil {
		return r
	}
	return energy.Balanced
}

// computeTDEE computes BMR (Mifflin-St Jeor), TDEE, suggested daily calorie
// budget, and weight-loss pace (lbs/week) from user profile settings.
// Returns ok=false when any required profile field is nil, the target date
// is in the past (budget would be meaningless), or if age is implausible.
func computeTDEE(s *calorieLogUserSettings, now time.Time) (bmr, tdee, budget int, paceLbsPerWeek float64, ok bool) {
	if s.TargetWeightLBS == nil || s.TargetDate == nil {
		return 0, 0, 0, 0, false
	}
	profile, err := profileFromSettings(s, now)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	bmrF, _ := energy.BMR(profile)
	tdeeF, _ := energy.TDEE(profile)

	// Pace from target weight delta and time remaining
	weeksUntil := s.TargetDate.Sub(now).Hours() / 24 / 7
	if weeksUntil <= 0 {
		return 0, 0, 0, 0, false
	}
	pace := (*s.WeightLBS - *s.TargetWeightLBS) / weeksUntil
	// Cap pace at 2 lbs/week (safe maximum), floor at 0.25
	pace = math.Min(2, math.Max(0.25, pace))

	// Budget = TDEE minus the caloric deficit implied by pace (3500 cal ≈ 1 lb fat).
	budgetF := math.Max(0, tdeeF-pace*500)
	return int(math.Round(bmrF)), int(math.Round(tdeeF)), int(math.Round(budgetF)), pace, true
}

// populateComputedTDEE fills the computed-only fields on s from the user's profile.
// Macro targets are always filled (falling back to 2000 kcal when the profile is
// incomplete); the TDEE fields are skipped if any required profile field is missing.
func populateComputedTDEE(s *calorieLogUserSettings, now time.Time) {
	if bmr, tdee, budget, pace, ok := computeTDEE(s, now); ok {
		s.ComputedBMR = &bmr
		s.ComputedTDEE = &tdee
		s.ComputedBudget = &budget
		s.PaceLbsPerWeek = &pace
	}
	targets := goalTargets(s, now)
	s.ComputedTargets = &targets
}

// goalTargets resolves the daily calorie and macro targets: stored values win,
// a zero calorie budget falls back to the energy model (or 2000 kcal), and
// zero macro targets are split from the calorie figure by the macro ratio.
func goalTargets(s *calorieLogUserSettings, now time.Time) energy.Targets {
	ratio := macroRatioFromSettings(s)

	calories := s.CalorieBudget
	if calories <= 0 {
		profile, _ := profileFromSettings(s, now)
		derived, _ := energy.DailyTargetsOrDefault(profile, ratio)
		calories = derived.Calories
	}

	split := energy.MacroTargets(float64(calories), ratio)
	t := energy.Targets{
		Calories: calories,
		ProteinG: s.ProteinTargetG,
		CarbsG:   s.CarbsTargetG,
		FatG:     s.FatTargetG,
	}
	if t.ProteinG <= 0 {
		t.ProteinG = split.ProteinG
	}
	if t.CarbsG <= 0 {
		t.CarbsG = split.CarbsG
	}
	if t.FatG <= 0 {
		t.FatG = split.FatG
	}
	return t
}

// goalFromSettings is the analytics baseline: today's targets, applied to
// every historical day.
func goalFromSettings(s *calorieLogUserSettings, now time.Time) analytics.Goal {
	t := goalTargets(s, now)
	return analytics.Goal{
		Calories: float64(t.Calories),
		ProteinG: float64(t.ProteinG),
		CarbsG:   float64(t.CarbsG),
		FatG:     float64(t.FatG),
	}
}
