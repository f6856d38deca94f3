package energy

import (
	"fmt"
	"strings"
)

// Sex selects the Mifflin-St Jeor constant.
type Sex int

const (
	Female Sex = iota
	Male
)

// ParseSex accepts "male" or "female" (case-insensitive).
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	}
	return Female, fmt.Errorf("energy: unknown sex %q", s)
}

func (s Sex) String() string {
	if s == Male {
		return "male"
	}
	return "female"
}

/* ─── Activity level ─────────────────────────────────────────────────── */

// ActivityLevel is a closed set; strings are only accepted through ParseActivityLevel.
type ActivityLevel int

const (
	Sedentary ActivityLevel = iota
	Light
	Moderate
	Active
	VeryActive
)

var activityLevelNames = [...]string{
	Sedentary:  "sedentary",
	Light:      "light",
	Moderate:   "moderate",
	Active:     "active",
	VeryActive: "very_active",
}

// ActivityLevelNames lists the accepted wire values in ascending order.
func ActivityLevelNames() []string {
	return append([]string(nil), activityLevelNames[:]...)
}

// ParseActivityLevel maps a wire value to its ActivityLevel.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	for i, name := range activityLevelNames {
		if name == s {
			return ActivityLevel(i), nil
		}
	}
	return Sedentary, fmt.Errorf("energy: unknown activity level %q", s)
}

func (a ActivityLevel) String() string {
	if a < Sedentary || a > VeryActive {
		return activityLevelNames[Sedentary]
	}
	return activityLevelNames[a]
}

// Multiplier is the TDEE factor for the level. Values outside the enum can
// only come from a raw conversion and are treated as sedentary.
func (a ActivityLevel) Multiplier() float64 {
	switch a {
	case Sedentary:
		return 1.2
	case Light:
		return 1.375
	case Moderate:
		return 1.55
	case Active:
		return 1.725
	case VeryActive:
		return 1.9
	default:
		return 1.2
	}
}

/* ─── Macro ratio ────────────────────────────────────────────────────── */

// MacroRatio is a preset split of calories across carbs, protein and fat.
type MacroRatio int

const (
	Balanced MacroRatio = iota
	LowCarb
	HighProtein
	Mediterranean
)

var macroRatioNames = [...]string{
	Balanced:      "balanced",
	LowCarb:       "low_carb",
	HighProtein:   "high_protein",
	Mediterranean: "mediterranean",
}

// MacroSplit holds calorie fractions; the three fields sum to 1.
type MacroSplit struct {
	Carbs   float64 `json:"carbs"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
}

// MacroRatioNames lists the accepted wire values.
func MacroRatioNames() []string {
	return append([]string(nil), macroRatioNames[:]...)
}

// ParseMacroRatio maps a wire value to its MacroRatio.
func ParseMacroRatio(s string) (MacroRatio, error) {
	for i, name := range macroRatioNames {
		if name == s {
			return MacroRatio(i), nil
		}
	}
	return Balanced, fmt.Errorf("energy: unknown macro ratio %q", s)
}

func (r MacroRatio) String() string {
	if r < Balanced || r > Mediterranean {
		return macroRatioNames[Balanced]
	}
	return macroRatioNames[r]
}

// Split returns the calorie fractions for the preset.
func (r MacroRatio) Split() MacroSplit {
	switch r {
	case LowCarb:
		return MacroSplit{Carbs: 0.25, Protein: 0.35, Fat: 0.40}
	case HighProtein:
		return MacroSplit{Carbs: 0.35, Protein: 0.40, Fat: 0.25}
	case Mediterranean:
		return MacroSplit{Carbs: 0.45, Protein: 0.20, Fat: 0.35}
	default:
		return MacroSplit{Carbs: 0.50, Protein: 0.20, Fat: 0.30}
	}
}
