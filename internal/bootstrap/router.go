package bootstrap

import (
	"log"
	"net/http"

	"github.com/pranvibmania-max/guardapp-sub001/internal/config"
	"github.com/pranvibmania-max/guardapp-sub001/internal/core"
	"github.com/pranvibmania-max/guardapp-sub001/internal/metrics"
	"github.com/pranvibmania-max/guardapp-sub001/internal/middleware"
	"github.com/pranvibmania-max/guardapp-sub001/internal/store"
	"github.com/pranvibmania-max/guardapp-sub001/internal/token"
	"github.com/pranvibmania-max/guardapp-sub001/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	h handlerSet,
	recorder core.Recorder,
	tokens *token.Provider,
	rateLimitRedisClient *redis.Client,
) *gin.Engine {
	setupGinMode(cfg)
	r := gin.New()

	// Setup middleware
	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(util.IPMiddleware())

	// Setup session middleware
	setupSessionMiddleware(r, cfg)

	// Health check endpoint
	r.GET("/health", createHealthCheckHandler(db))

	// Setup metrics endpoint
	setupMetricsEndpoint(r, cfg)

	// Setup rate limiting
	rateLimiters := setupRateLimiting(cfg, rateLimitRedisClient)

	// Setup all routes
	setupAllRoutes(r, cfg, h, tokens, rateLimiters)

	return r
}

// setupGinMode sets release mode in production
func setupGinMode(cfg *config.Config) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
}

// setupSessionMiddleware configures session handling middleware
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("guardapp_session", sessionStore))
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// createHealthCheckHandler returns the /health handler
func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(
	r *gin.Engine,
	cfg *config.Config,
	h handlerSet,
	tokens *token.Provider,
	rateLimiters rateLimitMiddlewares,
) {
	// Child device pairing (public: the child app has no credentials yet)
	r.POST("/verify-code", rateLimiters.verify, h.verify.VerifyCode)

	// Device status reporting
	device := r.Group("/device")
	if cfg.RequireDeviceToken {
		device.Use(middleware.DeviceTokenRequired(tokens))
	}
	device.POST("/heartbeat", rateLimiters.heartbeat, h.device.Heartbeat)
	device.POST("/unpair", h.device.Unpair)

	// Parent dashboard API
	r.POST("/parent/login", rateLimiters.login, h.auth.Login)
	r.POST("/parent/logout", h.auth.Logout)

	parent := r.Group("/parent")
	parent.Use(middleware.ParentSessionRequired())
	parent.GET("/devices", h.parent.ListDevices)
	parent.GET("/pair-code", h.parent.GetPairCode)
	parent.POST("/pair-code", rateLimiters.pairCode, h.parent.RegeneratePairCode)
	parent.GET("/settings", h.parent.GetSettings)
	parent.POST("/settings", h.parent.UpdateSettings)
}
