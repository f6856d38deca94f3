package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lg/stride-nutrition-api/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ConfigureLogging(); err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	pool, err := getDBPool(context.Background(), cfg)
	if err != nil {
		logrus.Fatalf("Failed to open database: %v", err)
	}
	defer pool.Close()

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logrus.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
	}

	h := newHandler(&pgStore{db: pool})
	h.registerRoutes(router)

	logrus.WithField("address", cfg.Address).Info("Starting gin app")
	if err := router.Run(cfg.Address); err != nil {
		logrus.Fatalf("Server stopped: %v", err)
	}
}

// requestLogger logs one line per request through logrus instead of gin's
// default stdout logger, so access logs share the configured format.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		entry := logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"user_id": c.GetInt("user_id"),
		})
		if c.Writer.Status() >= 500 {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request")
	}
}
