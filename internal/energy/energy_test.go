package energy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProfile() Profile {
	return Profile{WeightKG: 80, HeightCM: 180, AgeYears: 30, Sex: Male, Activity: Sedentary}
}

func TestBMR_MifflinStJeor(t *testing.T) {
	male, err := BMR(baseProfile())
	require.NoError(t, err)
	assert.InDelta(t, 1780.0, male, 1e-9)

	p := baseProfile()
	p.Sex = Female
	female, err := BMR(p)
	require.NoError(t, err)
	assert.InDelta(t, 1614.0, female, 1e-9)
}

func TestBMR_MissingProfileData(t *testing.T) {
	cases := []struct {
		name  string
		mutFn func(p *Profile)
	}{
		{"zero weight", func(p *Profile) { p.WeightKG = 0 }},
		{"zero height", func(p *Profile) { p.HeightCM = 0 }},
		{"zero age", func(p *Profile) { p.AgeYears = 0 }},
		{"negative weight", func(p *Profile) { p.WeightKG = -10 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := baseProfile()
			tc.mutFn(&p)
			_, err := BMR(p)
			assert.ErrorIs(t, err, ErrMissingProfileData)
			_, err = DailyTargets(p, Balanced)
			assert.ErrorIs(t, err, ErrMissingProfileData)
		})
	}
}

func TestBMR_NeverNegative(t *testing.T) {
	bmr, err := BMR(Profile{WeightKG: 1, HeightCM: 1, AgeYears: 120, Sex: Female})
	require.NoError(t, err)
	assert.Equal(t, 0.0, bmr)
}

func TestTDEE_Multipliers(t *testing.T) {
	want := map[ActivityLevel]float64{
		Sedentary:  1.2,
		Light:      1.375,
		Moderate:   1.55,
		Active:     1.725,
		VeryActive: 1.9,
	}
	for level, mult := range want {
		p := baseProfile()
		p.Activity = level
		tdee, err := TDEE(p)
		require.NoError(t, err)
		assert.InDelta(t, 1780*mult, tdee, 1e-9, level.String())
	}
	assert.Equal(t, 1.2, ActivityLevel(42).Multiplier())
}

func TestMacroTargets_Presets(t *testing.T) {
	assert.Equal(t, Targets{Calories: 2000, ProteinG: 100, CarbsG: 250, FatG: 67}, MacroTargets(2000, Balanced))
	assert.Equal(t, Targets{Calories: 2000, ProteinG: 175, CarbsG: 125, FatG: 89}, MacroTargets(2000, LowCarb))
	assert.Equal(t, Targets{}, MacroTargets(-50, HighProtein))
	assert.Equal(t, Targets{}, MacroTargets(math.NaN(), HighProtein))

	for _, name := range MacroRatioNames() {
		r, err := ParseMacroRatio(name)
		require.NoError(t, err)
		s := r.Split()
		assert.InDelta(t, 1.0, s.Carbs+s.Protein+s.Fat, 1e-9, name)
	}
}

func TestDailyTargetsOrDefault(t *testing.T) {
	got, fallback := DailyTargetsOrDefault(Profile{}, Balanced)
	assert.True(t, fallback)
	assert.Equal(t, DefaultDailyCalories, got.Calories)

	got, fallback = DailyTargetsOrDefault(baseProfile(), Balanced)
	assert.False(t, fallback)
	assert.Equal(t, 2136, got.Calories) // 1780 * 1.2
}

func TestParseEnums(t *testing.T) {
	for _, name := range ActivityLevelNames() {
		level, err := ParseActivityLevel(name)
		require.NoError(t, err)
		assert.Equal(t, name, level.String())
	}
	_, err := ParseActivityLevel("couch")
	assert.Error(t, err)

	_, err = ParseMacroRatio("keto")
	assert.Error(t, err)

	sex, err := ParseSex(" Male ")
	require.NoError(t, err)
	assert.Equal(t, Male, sex)
	_, err = ParseSex("")
	assert.Error(t, err)
}

func TestAgeOn(t *testing.T) {
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 35, AgeOn(dob, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 36, AgeOn(dob, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, AgeOn(dob, time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)))
}
