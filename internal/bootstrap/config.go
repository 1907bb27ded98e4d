package bootstrap

import (
	"log"

	"github.com/pranvibmania-max/guardapp-sub001/internal/config"
)

// validateConfiguration logs warnings for insecure or suspicious settings.
// Warnings don't stop startup so local development stays zero-config.
func validateConfiguration(cfg *config.Config) {
	if cfg.JWTSecret == "your-256-bit-secret-change-in-production" {
		log.Println("WARNING: using default JWT secret; set JWT_SECRET in production")
	}
	if cfg.SessionSecret == "session-secret-change-in-production" {
		log.Println("WARNING: using default session secret; set SESSION_SECRET in production")
	}
	if cfg.PairCodeLength < 4 {
		log.Printf("WARNING: PAIR_CODE_LENGTH=%d is easy to guess", cfg.PairCodeLength)
	}
	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN is required when DATABASE_DRIVER=postgres")
	}
}
