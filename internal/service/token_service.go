package service

import (
	"fmt"
	"time"

	"dare-escrow/config"
	"dare-escrow/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// JWTTokenService implements ports.TokenService with HS256-signed operator
// tokens for the admin surface.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewTokenService creates a new JWTTokenService.
func NewTokenService(cfg config.OperatorConfig) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(cfg.TokenSecret),
		expiry: cfg.TokenExpiry,
		issuer: cfg.TokenIssuer,
	}
}

// Generate issues a signed token for the named operator.
func (s *JWTTokenService) Generate(operator string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := jwt.MapClaims{
		"sub": operator,
		"iss": s.issuer,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a token, returning the operator name.
func (s *JWTTokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	operator, ok := claims["sub"].(string)
	if !ok || operator == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return operator, nil
}

var _ ports.TokenService = (*JWTTokenService)(nil)
