package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"utabox/config"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrMissingTenant = errors.New("token carries no tenant claim")
)

// Claims is the access-token payload issued by the identity service. Tokens
// are minted elsewhere; this service only verifies them and reads the tenant
// binding.
type Claims struct {
	UserID     string `json:"user_id"`
	TenantSlug string `json:"tenant_slug"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type JWT interface {
	ValidateToken(tokenString string) (*Claims, error)
}

type serviceImpl struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &serviceImpl{
		config: cfg,
	}
}

func (s *serviceImpl) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.config.JWT.AccessSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TenantSlug == "" {
		return nil, ErrMissingTenant
	}

	return claims, nil
}
