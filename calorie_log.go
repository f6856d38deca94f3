package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lg/stride-nutrition-api/internal/analytics"
)

// dayTotals is the food and exercise split of one day's items.
type dayTotals struct {
	food     analytics.DailyTotal
	exercise int
	hasData  bool
}

// foldItems folds items into per-day totals keyed by YYYY-MM-DD. Food goes
// through the analytics daily fold; exercise calories are positive in the DB
// and tracked separately so the type field stays the source of truth for direction.
func foldItems(items []calorieLogItem) map[string]dayTotals {
	byDate := make(map[string]dayTotals)
	for _, total := range analytics.FoldDaily(nutritionEntries(items)) {
		byDate[total.Date.String()] = dayTotals{food: total, hasData: true}
	}
	for _, item := range items {
		if item.Type != "exercise" {
			continue
		}
		key := item.Date.Format("2006-01-02")
		d := byDate[key]
		d.food.Date = analytics.DayOf(item.Date.Time)
		d.exercise += item.Calories
		d.hasData = true
		byDate[key] = d
	}
	return byDate
}

// daySummary builds the response row for one day against the user's goal.
func daySummary(date time.Time, totals dayTotals, goal analytics.Goal) weekDaySummary {
	net := totals.food.Calories - totals.exercise
	budget := int(goal.Calories)
	day := weekDaySummary{
		Date:             DateOnly{date},
		CalorieBudget:    budget,
		CaloriesFood:     totals.food.Calories,
		CaloriesExercise: totals.exercise,
		NetCalories:      net,
		CaloriesLeft:     budget - net,
		ProteinG:         totals.food.ProteinG,
		CarbsG:           totals.food.CarbsG,
		FatG:             totals.food.FatG,
		HasData:          totals.hasData,
	}
	if totals.food.Calories > 0 {
		day.GoalHit = analytics.EvaluateDay(totals.food, goal).Hit()
	}
	return day
}

// getDailySummary returns calorie log items and computed totals for a given date.
// GET /api/calorie-log/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", h.today().Format("2006-01-02"))

	// Validate date format before querying; an invalid value silently returns no rows.
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := h.store.ListItems(c, userID, day, day)
	if err != nil {
		requestLog(c, "getDailySummary").WithError(err).Error("list items")
		apiError(c, http.StatusInternalServerError, "failed to fetch items")
		return
	}
	// Ensure items is an empty array (not null) in JSON
	if items == nil {
		items = []calorieLogItem{}
	}

	settings, err := h.store.GetUserSettings(c, userID)
	if err != nil {
		requestLog(c, "getDailySummary").WithError(err).Error("load settings")
		apiError(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}
	populateComputedTDEE(&settings, h.now())

	summary := daySummary(day, foldItems(items)[date], goalFromSettings(&settings, h.now()))
	c.JSON(http.StatusOK, dailySummary{
		Date:             date,
		CalorieBudget:    summary.CalorieBudget,
		CaloriesFood:     summary.CaloriesFood,
		CaloriesExercise: summary.CaloriesExercise,
		NetCalories:      summary.NetCalories,
		CaloriesLeft:     summary.CaloriesLeft,
		ProteinG:         summary.ProteinG,
		CarbsG:           summary.CarbsG,
		FatG:             summary.FatG,
		Items:            items,
		Settings:         settings,
	})
}

// getWeekSummary returns per-day calorie totals for the Mon–Sun week containing
// week_start. Days with no logged items are included with has_data=false.
// GET /api/calorie-log/week-summary?week_start=YYYY-MM-DD (defaults to current week).
func (h *Handler) getWeekSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	// Parse week_start; default to the current Monday.
	weekStart := analytics.MondayOf(h.now()).Time
	if s := c.Query("week_start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid week_start, expected YYYY-MM-DD")
			return
		}
		weekStart = t
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	settings, err := h.store.GetUserSettings(c, userID)
	if err != nil {
		requestLog(c, "getWeekSummary").WithError(err).Error("load settings")
		apiError(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}
	goal := goalFromSettings(&settings, h.now())

	items, err := h.store.ListItems(c, userID, weekStart, weekEnd)
	if err != nil {
		requestLog(c, "getWeekSummary").WithError(err).Error("list items")
		apiError(c, http.StatusInternalServerError, "failed to fetch week data")
		return
	}
	byDate := foldItems(items)

	// Build a full 7-day response, filling zeros for days with no data.
	result := make([]weekDaySummary, 7)
	for i := range result {
		d := weekStart.AddDate(0, 0, i)
		result[i] = daySummary(d, byDate[d.Format("2006-01-02")], goal)
	}

	c.JSON(http.StatusOK, result)
}

// getProgress returns per-day calorie totals and aggregate stats for an arbitrary date range.
// GET /api/calorie-log/progress?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Only days with logged items are returned (the frontend fills gaps).
func (h *Handler) getProgress(c *gin.Context) {
	userID := c.GetInt("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	startDay, err := time.Parse("2006-01-02", start)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	endDay, err := time.Parse("2006-01-02", end)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if startDay.After(endDay) {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	settings, err := h.store.GetUserSettings(c, userID)
	if err != nil {
		requestLog(c, "getProgress").WithError(err).Error("load settings")
		apiError(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}
	goal := goalFromSettings(&settings, h.now())

	items, err := h.store.ListItems(c, userID, startDay, endDay)
	if err != nil {
		requestLog(c, "getProgress").WithError(err).Error("list items")
		apiError(c, http.StatusInternalServerError, "failed to fetch progress data")
		return
	}
	byDate := foldItems(items)

	days := make([]weekDaySummary, 0, len(byDate))
	var stats progressStats
	var logged []analytics.Day
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		totals, ok := byDate[d.Format("2006-01-02")]
		if !ok {
			continue
		}
		day := daySummary(d, totals, goal)
		days = append(days, day)
		logged = append(logged, analytics.DayOf(d))

		stats.DaysTracked++
		if day.NetCalories <= day.CalorieBudget {
			stats.DaysOnBudget++
		}
		if day.GoalHit {
			stats.GoalsHit++
		}
		stats.AvgCaloriesFood += day.CaloriesFood
		stats.AvgCaloriesExercise += day.CaloriesExercise
		stats.AvgNetCalories += day.NetCalories
		stats.TotalCaloriesLeft += day.CaloriesLeft
	}

	// Convert totals to averages.
	if stats.DaysTracked > 0 {
		stats.AvgCaloriesFood /= stats.DaysTracked
		stats.AvgCaloriesExercise /= stats.DaysTracked
		stats.AvgNetCalories /= stats.DaysTracked
	}
	stats.GoalPercentage = analytics.GoalPercentage(stats.GoalsHit, stats.DaysTracked)
	stats.LongestStreak = analytics.LongestStreak(logged)

	c.JSON(http.StatusOK, progressResponse{Days: days, Stats: stats})
}

// getEarliestLogDate returns the earliest date the user has a calorie log entry.
// GET /api/calorie-log/earliest-date. Used by the frontend to compute the "All Time" range start.
// Returns { "date": "YYYY-MM-DD" } or { "date": null } if no entries exist.
func (h *Handler) getEarliestLogDate(c *gin.Context) {
	date, err := h.store.EarliestItemDate(c, c.GetInt("user_id"))
	if err != nil {
		requestLog(c, "getEarliestLogDate").WithError(err).Error("query earliest date")
		apiError(c, http.StatusInternalServerError, "failed to fetch earliest date")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date})
}

// checkItemDate rejects dates after today. Malformed dates are already
// caught by the datetime validator.
func (h *Handler) checkItemDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "invalid date, expected YYYY-MM-DD"
	}
	if t.After(h.today()) {
		return "date must not be in the future"
	}
	return ""
}

// createCalorieLogItem inserts a new calorie log entry.
// POST /api/calorie-log/items. Defaults date to today if omitted.
func (h *Handler) createCalorieLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createCalorieLogItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		apiError(c, http.StatusBadRequest, validationMessage(err))
		return
	}
	if body.Date == "" {
		body.Date = h.today().Format("2006-01-02")
	}
	if msg := h.checkItemDate(body.Date); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	item, err := h.store.CreateItem(c, userID, body)
	if err != nil {
		requestLog(c, "createCalorieLogItem").WithError(err).Error("insert item")
		apiError(c, http.StatusInternalServerError, "failed to create item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// updateCalorieLogItem updates an existing calorie log entry.
// PUT /api/calorie-log/items/:id. Omitted fields keep their current value.
func (h *Handler) updateCalorieLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body updateCalorieLogItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		apiError(c, http.StatusBadRequest, validationMessage(err))
		return
	}
	if body.Date != nil {
		if msg := h.checkItemDate(*body.Date); msg != "" {
			apiError(c, http.StatusBadRequest, msg)
			return
		}
	}

	item, err := h.store.UpdateItem(c, userID, id, body)
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		requestLog(c, "updateCalorieLogItem").WithError(err).Error("update item")
		apiError(c, http.StatusInternalServerError, "failed to update item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteCalorieLogItem removes a calorie log entry. Returns 204 on success.
// DELETE /api/calorie-log/items/:id.
func (h *Handler) deleteCalorieLogItem(c *gin.Context) {
	err := h.store.DeleteItem(c, c.GetInt("user_id"), c.Param("id"))
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		requestLog(c, "deleteCalorieLogItem").WithError(err).Error("delete item")
		apiError(c, http.StatusInternalServerError, "failed to delete item")
		return
	}

	c.Status(http.StatusNoContent)
}
