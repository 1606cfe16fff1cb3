package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/ta9iBarkat/ecommerce-platform/config"
	"github.com/ta9iBarkat/ecommerce-platform/models"
)

var errInvalidToken = errors.New("invalid token")

// Claims carried by access tokens. Refresh tokens carry only the user id.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// TokenManager issues and verifies the two JWT kinds. Secrets come from the
// config object, never from ambient environment lookups.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// GenerateAccess signs a short-lived access token with the user's id and role.
func (m *TokenManager) GenerateAccess(user *models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(m.accessTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
}

// GenerateRefresh signs a long-lived refresh token holding only the user id.
func (m *TokenManager) GenerateRefresh(user *models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID.Hex(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(m.refreshTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
}

// RefreshTTL exposes the refresh lifetime for cookie expiry.
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// ParseAccess verifies an access token and returns its claims.
func (m *TokenManager) ParseAccess(token string) (*Claims, error) {
	return m.parse(token, m.accessSecret)
}

// ParseRefresh verifies a refresh token and returns its claims.
func (m *TokenManager) ParseRefresh(token string) (*Claims, error) {
	return m.parse(token, m.refreshSecret)
}

func (m *TokenManager) parse(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}
