package bootstrap

import (
	"log"

	"github.com/pranvibmania-max/guardapp-sub001/internal/config"
	"github.com/pranvibmania-max/guardapp-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// rateLimitMiddlewares holds rate limiting middlewares for different endpoints
type rateLimitMiddlewares struct {
	login     gin.HandlerFunc
	verify    gin.HandlerFunc
	pairCode  gin.HandlerFunc
	heartbeat gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on configuration.
// Accepts an optional go-redis client.
func setupRateLimiting(
	cfg *config.Config,
	redisClient *redis.Client,
) rateLimitMiddlewares {
	// Return no-op middlewares when rate limiting is disabled
	noOpMiddleware := func(c *gin.Context) { c.Next() }
	if !cfg.EnableRateLimit {
		return rateLimitMiddlewares{
			login:     noOpMiddleware,
			verify:    noOpMiddleware,
			pairCode:  noOpMiddleware,
			heartbeat: noOpMiddleware,
		}
	}

	log.Printf("Rate limiting enabled (store: %s)", cfg.RateLimitStore)

	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)
	if storeType == middleware.RateLimitStoreRedis {
		log.Printf("Using shared Redis client for rate limiting")
	} else {
		log.Printf("In-memory rate limiting configured (single instance only)")
	}

	createLimiter := func(requestsPerMinute int, endpoint string) gin.HandlerFunc {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			StoreType:         storeType,
			RedisClient:       redisClient, // nil for memory store
			CleanupInterval:   cfg.RateLimitCleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to create rate limiter for %s: %v", endpoint, err)
		}
		return limiter
	}

	return rateLimitMiddlewares{
		login:     createLimiter(cfg.LoginRateLimit, "/parent/login"),
		verify:    createLimiter(cfg.VerifyRateLimit, "/verify-code"),
		pairCode:  createLimiter(cfg.PairCodeRateLimit, "/parent/pair-code"),
		heartbeat: createLimiter(cfg.HeartbeatRateLimit, "/device/heartbeat"),
	}
}
