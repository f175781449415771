package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"practice-quest/internal/config"
	"practice-quest/internal/dto"
	"practice-quest/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrMissingSubject  = errors.New("token has no subject")
)

// AuthService verifies the access tokens issued by the host platform. The
// platform owns login; this service only trusts a shared HMAC secret.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	// CreateJWT signs a token with the same secret. Used by tooling and tests.
	CreateJWT(ctx context.Context, userID, role string, ttl time.Duration) (string, error)
	IsAdmin(claims *dto.AuthClaims) bool
}

type authServiceImpl struct {
	cfg config.AuthConfig
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(cfg config.AuthConfig) (AuthService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("auth.jwtsecret must be at least 32 bytes long")
	}
	return &authServiceImpl{cfg: cfg}, nil
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name, jwt.SigningMethodHS384.Name, jwt.SigningMethodHS512.Name})}
	if s.cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.JWTIssuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		snippet := tokenString[:min(len(tokenString), 20)] + "..."
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", snippet))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", snippet))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, ErrMissingSubject)
	}
	return claims, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &dto.AuthClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.cfg.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authServiceImpl) IsAdmin(claims *dto.AuthClaims) bool {
	return claims != nil && s.cfg.AdminRole != "" && claims.Role == s.cfg.AdminRole
}
