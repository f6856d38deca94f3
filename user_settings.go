package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lg/stride-nutrition-api/internal/energy"
)

// getUserSettings returns the calorie log settings for the authenticated user.
// Computed TDEE fields (bmr, tdee, budget, pace) are populated when all profile
// fields are present; computed_targets is always populated.
// GET /api/calorie-log/user-settings.
func (h *Handler) getUserSettings(c *gin.Context) {
	s, err := h.store.GetUserSettings(c, c.GetInt("user_id"))
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, "settings not found")
		return
	}
	if err != nil {
		requestLog(c, "getUserSettings").WithError(err).Error("load settings")
		apiError(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}

	populateComputedTDEE(&s, h.now())

	c.JSON(http.StatusOK, s)
}

// patchUserSettings updates only the provided calorie log settings fields.
// PATCH /api/calorie-log/user-settings. Uses pointer fields in the request body
// to distinguish "not provided" from zero; only non-nil fields get updated.
// When budget_auto is true after the update, the calorie_budget is overwritten
// with the TDEE-derived value if all required profile fields are present.
func (h *Handler) patchUserSettings(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchUserSettingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		apiError(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	// Enum fields are checked against the energy model before saving; an unknown
	// value would otherwise read back as missing profile data forever.
	if body.ActivityLevel != nil {
		if _, err := energy.ParseActivityLevel(*body.ActivityLevel); err != nil {
			apiError(c, http.StatusBadRequest,
				"activity_level must be one of: "+strings.Join(energy.ActivityLevelNames(), ", "))
			return
		}
	}
	if body.MacroRatio != nil {
		if _, err := energy.ParseMacroRatio(*body.MacroRatio); err != nil {
			apiError(c, http.StatusBadRequest,
				"macro_ratio must be one of: "+strings.Join(energy.MacroRatioNames(), ", "))
			return
		}
	}

	s, err := h.store.PatchUserSettings(c, userID, body)
	if errors.Is(err, errNoFields) {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, "settings not found")
		return
	}
	if err != nil {
		requestLog(c, "patchUserSettings").WithError(err).Error("update settings")
		apiError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}

	// If budget_auto is on, compute TDEE and persist the resulting calorie_budget.
	if s.BudgetAuto {
		if _, _, budget, _, ok := computeTDEE(&s, h.now()); ok {
			updated, err := h.store.SetCalorieBudget(c, userID, budget)
			if err != nil {
				requestLog(c, "patchUserSettings").WithError(err).Warn("auto-budget update failed")
			} else {
				s = updated
			}
		}
	}

	populateComputedTDEE(&s, h.now())

	c.JSON(http.StatusOK, s)
}
