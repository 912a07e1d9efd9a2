package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nafsma/legis-tracker/app/cfg"
)

// NewServer creates the status HTTP server with all routes configured.
// The API is read-only: it reports on the snapshot and digests but
// never mutates them.
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
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

	// CORS for read-only API consumers
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	r.GET("/health", handler.GetHealth)

	if apiAccessKey != "" {
		authed := r.Group("/")
		authed.Use(authMiddleware(apiAccessKey))
		{
			authed.GET("/state", handler.GetState)
			authed.GET("/digest/latest", handler.GetLatestDigest)
		}
		slog.Info("State endpoints enabled with authentication")
	} else {
		r.GET("/state", handler.GetState)
		r.GET("/digest/latest", handler.GetLatestDigest)
		slog.Warn("State endpoints enabled without authentication (API_ACCESS_KEY not set)")
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "NAFSMA Legislative Tracker",
			"version":     cfg.GetVersion(),
			"description": "Tracks bills, regulations, committee activity, and disaster declarations relevant to flood and stormwater management",
			"endpoints": map[string]string{
				"health": "/health",
				"state":  "/state",
				"digest": "/digest/latest",
			},
			"auth": map[string]interface{}{
				"required": apiAccessKey != "",
				"header":   "X-API-Key",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware validates the access key from the X-API-Key header or
// an Authorization: Bearer header.
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

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
