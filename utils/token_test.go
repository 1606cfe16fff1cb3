package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ta9iBarkat/ecommerce-platform/config"
	"github.com/ta9iBarkat/ecommerce-platform/models"
)

func testTokenManager() *TokenManager {
	return NewTokenManager(&config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Email: "jo@example.com",
		Role:  models.RoleSeller,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := testTokenManager()
	user := testUser()

	token, err := tm.GenerateAccess(user)
	if err != nil {
		t.Fatalf("GenerateAccess failed: %v", err)
	}
	claims, err := tm.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess failed: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, user.ID.Hex())
	}
	if claims.Role != models.RoleSeller {
		t.Errorf("claims.Role = %q, want seller", claims.Role)
	}
}

func TestRefreshTokenCarriesNoRole(t *testing.T) {
	tm := testTokenManager()
	user := testUser()

	token, err := tm.GenerateRefresh(user)
	if err != nil {
		t.Fatalf("GenerateRefresh failed: %v", err)
	}
	claims, err := tm.ParseRefresh(token)
	if err != nil {
		t.Fatalf("ParseRefresh failed: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, user.ID.Hex())
	}
	if claims.Role != "" {
		t.Errorf("refresh token carries role %q", claims.Role)
	}
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	tm := testTokenManager()
	user := testUser()

	access, err := tm.GenerateAccess(user)
	if err != nil {
		t.Fatalf("GenerateAccess failed: %v", err)
	}
	refresh, err := tm.GenerateRefresh(user)
	if err != nil {
		t.Fatalf("GenerateRefresh failed: %v", err)
	}

	if _, err := tm.ParseRefresh(access); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := tm.ParseAccess(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestParseRejectsGarbageAndWrongSecret(t *testing.T) {
	tm := testTokenManager()
	user := testUser()

	if _, err := tm.ParseAccess("not-a-jwt"); err == nil {
		t.Error("garbage token accepted")
	}

	other := NewTokenManager(&config.Config{
		AccessTokenSecret:  "a-different-secret",
		RefreshTokenSecret: "another-different-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    time.Hour,
	})
	forged, err := other.GenerateAccess(user)
	if err != nil {
		t.Fatalf("GenerateAccess failed: %v", err)
	}
	if _, err := tm.ParseAccess(forged); err == nil {
		t.Error("token signed with a foreign secret accepted")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager(&config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     -time.Minute,
		RefreshTokenTTL:    time.Hour,
	})
	token, err := tm.GenerateAccess(testUser())
	if err != nil {
		t.Fatalf("GenerateAccess failed: %v", err)
	}
	if _, err := tm.ParseAccess(token); err == nil {
		t.Error("expired token accepted")
	}
}
