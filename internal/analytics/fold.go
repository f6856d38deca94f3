package analytics

import "sort"

// FoldDaily sums entries sharing a calendar date into one DailyTotal per date,
// oldest first. Input order does not matter.
func FoldDaily(entries []Entry) []DailyTotal {
	byDay := make(map[Day]*DailyTotal)
	for _, e := range entries {
		d := DayOf(e.Date)
		total, ok := byDay[d]
		if !ok {
			total = &DailyTotal{Date: d}
			byDay[d] = total
		}
		total.Calories += e.Calories
		total.ProteinG += e.ProteinG
		total.CarbsG += e.CarbsG
		total.FatG += e.FatG
	}

	days := make([]DailyTotal, 0, len(byDay))
	for _, total := range byDay {
		days = append(days, *total)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date.Time)
	})
	return days
}

// Dates returns the date of each daily total, preserving order.
func Dates(days []DailyTotal) []Day {
	dates := make([]Day, len(days))
	for i := range days {
		dates[i] = days[i].Date
	}
	return dates
}

// summarize fills the total and per-logged-day average fields of a PeriodStat.
func summarize(label string, start, end Day, days []DailyTotal) PeriodStat {
	stat := PeriodStat{
		Label:      label,
		Start:      start,
		End:        end,
		DaysLogged: len(days),
		Days:       days,
	}
	for i := range days {
		stat.TotalCalories += days[i].Calories
		stat.TotalProteinG += days[i].ProteinG
		stat.TotalCarbsG += days[i].CarbsG
		stat.TotalFatG += days[i].FatG
	}
	if stat.DaysLogged > 0 {
		div := float64(stat.DaysLogged)
		stat.AvgCalories = float64(stat.TotalCalories) / div
		stat.AvgProteinG = stat.TotalProteinG / div
		stat.AvgCarbsG = stat.TotalCarbsG / div
		stat.AvgFatG = stat.TotalFatG / div
	}
	return stat
}
