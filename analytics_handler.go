package main

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lg/stride-nutrition-api/internal/analytics"
	"lg/stride-nutrition-api/internal/energy"
)

// getAnalytics returns monthly and weekly breakdowns, the current month, the
// month-over-month trend, the 30-day consistency score and streaks, all judged
// against the user's current goal.
// GET /api/calorie-log/analytics?today=YYYY-MM-DD (defaults to the server date).
func (h *Handler) getAnalytics(c *gin.Context) {
	userID := c.GetInt("user_id")

	now := h.now()
	if s := c.Query("today"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid today, expected YYYY-MM-DD")
			return
		}
		now = t
	}

	settings, err := h.store.GetUserSettings(c, userID)
	if err != nil {
		requestLog(c, "getAnalytics").WithError(err).Error("load settings")
		apiError(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}

	items, err := h.store.ListAllItems(c, userID)
	if err != nil {
		requestLog(c, "getAnalytics").WithError(err).Error("list items")
		apiError(c, http.StatusInternalServerError, "failed to fetch items")
		return
	}

	goal := goalFromSettings(&settings, now)
	report := analytics.Compute(nutritionEntries(items), goal, now)
	requestLog(c, "getAnalytics").WithFields(logrus.Fields{
		"items":  len(items),
		"months": len(report.Monthly),
		"weeks":  len(report.Weekly),
	}).Debug("analytics computed")

	c.JSON(http.StatusOK, analyticsResponse{Goal: goal, Report: report})
}

// getTargets returns BMR, TDEE and macro-gram targets derived from the stored
// body profile. ratio overrides the stored macro_ratio. With strict=true an
// incomplete profile is a 422 instead of the 2000 kcal fallback.
// GET /api/calorie-log/targets?ratio=balanced&strict=true.
func (h *Handler) getTargets(c *gin.Context) {
	settings, err := h.store.GetUserSettings(c, c.GetInt("user_id"))
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, "settings not found")
		return
	}
	if err != nil {
		requestLog(c, "getTargets").WithError(err).Error("load settings")
		apiError(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}

	ratio := macroRatioFromSettings(&settings)
	if s := c.Query("ratio"); s != "" {
		r, err := energy.ParseMacroRatio(s)
		if err != nil {
			apiError(c, http.StatusBadRequest,
				"ratio must be one of: "+strings.Join(energy.MacroRatioNames(), ", "))
			return
		}
		ratio = r
	}

	resp := targetsResponse{MacroRatio: ratio.String(), Split: ratio.Split()}

	profile, err := profileFromSettings(&settings, h.now())
	if err == nil {
		bmr, _ := energy.BMR(profile)
		tdee, _ := energy.TDEE(profile)
		b, t := int(math.Round(bmr)), int(math.Round(tdee))
		resp.BMR, resp.TDEE = &b, &t
	} else if c.Query("strict") == "true" {
		apiError(c, http.StatusUnprocessableEntity, "missing_profile_data")
		return
	}

	resp.Targets, resp.Fallback = energy.DailyTargetsOrDefault(profile, ratio)

	c.JSON(http.StatusOK, resp)
}
