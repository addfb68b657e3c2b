package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fabriziochiappini/adseo/app/cfg"
)

// NewServer creates the HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	appCfg := cfg.Get()

	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	if appCfg.APIAccessKey != "" {
		api.Use(authMiddleware(appCfg.APIAccessKey))
		slog.Info("API authentication enabled")
	} else {
		slog.Warn("API authentication disabled (API_ACCESS_KEY not set)")
	}
	{
		api.POST("/campaigns/analyze", handler.AnalyzeCampaign)
		api.POST("/campaigns/deploy", handler.DeployCampaign)
		api.POST("/content/generate", handler.GenerateContent)
		api.POST("/domains/generate", handler.GenerateDomains)
		api.POST("/domains/check", handler.CheckDomains)
	}

	// The drip-feed endpoint is meant for an external cron service and
	// uses its own shared secret. Without the secret it stays off; the
	// internal scheduler covers publication instead.
	if appCfg.CronSecret != "" {
		cron := r.Group("/cron")
		cron.Use(cronAuthMiddleware(appCfg.CronSecret))
		cron.GET("/drip-feed", handler.RunDripFeed)
		slog.Info("Cron drip-feed endpoint enabled")
	} else {
		slog.Warn("Cron drip-feed endpoint disabled (CRON_SECRET not set)")
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "adseo",
			"version":     appCfg.Version,
			"description": "SEO lander network automation: keyword analysis, domain sourcing, deployment and drip-feed publishing",
			"endpoints": map[string]string{
				"analyze":          "/api/campaigns/analyze (POST)",
				"deploy":           "/api/campaigns/deploy (POST)",
				"content":          "/api/content/generate (POST)",
				"domains_generate": "/api/domains/generate (POST)",
				"domains_check":    "/api/domains/check (POST)",
				"drip_feed":        "/cron/drip-feed (GET, Bearer CRON_SECRET)",
				"health":           "/health",
			},
			"api_status": map[string]interface{}{
				"auth_required": appCfg.APIAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for API endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func cronAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "Bearer "+secret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid cron secret"})
			c.Abort()
			return
		}
		c.Next()
	}
}
