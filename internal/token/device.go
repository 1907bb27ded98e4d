package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Provider generates and validates device tokens locally using HS256 JWTs.
// A device token is handed to the child app once pairing succeeds and lets it
// authenticate heartbeat calls when REQUIRE_DEVICE_TOKEN is enabled.
type Provider struct {
	config *config.Config
}

// NewProvider creates a new device token provider
func NewProvider(cfg *config.Config) *Provider {
	return &Provider{config: cfg}
}

// Result holds a generated device token
type Result struct {
	TokenString string
	ExpiresAt   time.Time
}

// ValidationResult holds the claims of a validated device token
type ValidationResult struct {
	DeviceID  string
	ExpiresAt time.Time
}

// GenerateDeviceToken creates a signed JWT carrying the device ID
func (p *Provider) GenerateDeviceToken(deviceID string) (*Result, error) {
	expiresAt := time.Now().Add(p.config.DeviceTokenExpiration)
	claims := jwt.MapClaims{
		"device_id": deviceID,
		"type":      "device",
		"exp":       expiresAt.Unix(),
		"iat":       time.Now().Unix(),
		"iss":       p.config.BaseURL,
		"sub":       deviceID,
		"jti":       uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &Result{TokenString: tokenString, ExpiresAt: expiresAt}, nil
}

// ValidateDeviceToken verifies a device token and returns its claims
func (p *Provider) ValidateDeviceToken(tokenString string) (*ValidationResult, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.config.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	deviceID, _ := claims["device_id"].(string)
	if deviceID == "" {
		return nil, ErrInvalidToken
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != "device" {
		return nil, ErrInvalidToken
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &ValidationResult{
		DeviceID:  deviceID,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
