package main

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"lg/stride-nutrition-api/internal/analytics"
	"lg/stride-nutrition-api/internal/config"
)

// Handler holds shared dependencies (store, clock) for all route handlers.
type Handler struct {
	store store
	now   func() time.Time // overridable for tests
}

// newHandler wires a Handler to a store using the wall clock.
func newHandler(s store) *Handler {
	return &Handler{store: s, now: time.Now}
}

// today returns the current calendar date as a UTC midnight.
func (h *Handler) today() time.Time {
	return analytics.DayOf(h.now()).Time
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// requestLog returns a logger tagged with the handler name and the caller's user id.
func requestLog(c *gin.Context, fn string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"fn": fn, "user_id": c.GetInt("user_id")})
}

/* ─── Validation ──────────────────────────────────────────────────────── */

// validate checks request structs; errors report fields by their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage turns the first validator failure into a client-facing message.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "invalid request body"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "invalid " + fe.Field() + ", expected YYYY-MM-DD"
	case "gte":
		if fe.Param() == "0" {
			return fe.Field() + " must not be negative"
		}
		return fe.Field() + " must be at least " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "lt", "lte", "max":
		return fe.Field() + " is too large"
	default:
		return "invalid " + fe.Field()
	}
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn) because
// Neon closes idle connections after ~5 minutes.
func getDBPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from Neon's server-side prepared statement cache after schema changes.
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logrus.Info("DB pool ready")
	return pool, nil
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/calorie-log/daily", h.getDailySummary)
	api.GET("/calorie-log/week-summary", h.getWeekSummary)
	api.GET("/calorie-log/progress", h.getProgress)
	api.GET("/calorie-log/earliest-date", h.getEarliestLogDate)
	api.POST("/calorie-log/items", h.createCalorieLogItem)
	api.PUT("/calorie-log/items/:id", h.updateCalorieLogItem)
	api.DELETE("/calorie-log/items/:id", h.deleteCalorieLogItem)
	api.GET("/calorie-log/user-settings", h.getUserSettings)
	api.PATCH("/calorie-log/user-settings", h.patchUserSettings)
	api.GET("/calorie-log/analytics", h.getAnalytics)
	api.GET("/calorie-log/targets", h.getTargets)
}
