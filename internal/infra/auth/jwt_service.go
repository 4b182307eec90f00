// Package auth implements token validation for the storefront API.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"dacsan/config"
	"dacsan/internal/domain/service"
)

// jwtService validates JWT access tokens. Tokens are issued by the account
// system; this side only verifies them.
type jwtService struct{}

// NewJWTService is the constructor for jwtService. It fails fast when the
// shared signing secret is not configured, before any request is served.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	return &jwtService{}, nil
}

// ValidateToken checks the validity of a token string against a secret.
// Only HMAC-signed tokens are accepted; an attacker must not be able to
// downgrade verification by picking another signing method.
func (s *jwtService) ValidateToken(tokenString string, secret string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
}
