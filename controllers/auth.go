package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/ta9iBarkat/ecommerce-platform/config"
	"github.com/ta9iBarkat/ecommerce-platform/middleware"
	"github.com/ta9iBarkat/ecommerce-platform/models"
	"github.com/ta9iBarkat/ecommerce-platform/store"
	"github.com/ta9iBarkat/ecommerce-platform/utils"
)

const refreshCookieName = "refreshToken"

// AuthController handles registration, login and token refresh.
type AuthController struct {
	users  store.UserStore
	tokens *utils.TokenManager
	cfg    *config.Config
	logger *slog.Logger
}

func NewAuthController(users store.UserStore, tokens *utils.TokenManager, cfg *config.Config, logger *slog.Logger) *AuthController {
	return &AuthController{users: users, tokens: tokens, cfg: cfg, logger: logger}
}

// Register creates an account. Self-registration allows the user and seller
// roles only; admins are provisioned out of band.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	role := req.Role
	switch role {
	case "":
		role = models.RoleUser
	case models.RoleUser, models.RoleSeller:
	default:
		utils.RespondError(w, http.StatusBadRequest, "invalid role")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondDomainError(w, ac.logger, err)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := ac.users.Insert(r.Context(), user); err != nil {
		utils.RespondDomainError(w, ac.logger, err)
		return
	}

	ac.issueTokens(w, r, user, http.StatusCreated)
}

// Login authenticates by email and password.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := ac.users.FindByEmail(r.Context(), strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			utils.RespondError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
			return
		}
		utils.RespondDomainError(w, ac.logger, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)) != nil {
		utils.RespondError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
		return
	}

	ac.issueTokens(w, r, user, http.StatusOK)
}

// Refresh exchanges the refresh-token cookie for a new access token.
func (ac *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "no refresh token")
		return
	}

	claims, err := ac.tokens.ParseRefresh(cookie.Value)
	if err != nil {
		utils.RespondError(w, http.StatusForbidden, "invalid refresh token")
		return
	}

	user, err := ac.userFromClaims(r, claims)
	if err != nil {
		utils.RespondError(w, http.StatusForbidden, "invalid refresh token")
		return
	}

	accessToken, err := ac.tokens.GenerateAccess(user)
	if err != nil {
		utils.RespondDomainError(w, ac.logger, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"accessToken": accessToken,
	})
}

// Logout clears the refresh cookie.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ac.cfg.Production(),
		SameSite: http.SameSiteStrictMode,
	})
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "logged out successfully",
	})
}

// Profile returns the authenticated user.
func (ac *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authorized")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

func (ac *AuthController) issueTokens(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	accessToken, err := ac.tokens.GenerateAccess(user)
	if err != nil {
		utils.RespondDomainError(w, ac.logger, err)
		return
	}
	refreshToken, err := ac.tokens.GenerateRefresh(user)
	if err != nil {
		utils.RespondDomainError(w, ac.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		Expires:  time.Now().Add(ac.tokens.RefreshTTL()),
		HttpOnly: true,
		Secure:   ac.cfg.Production(),
		SameSite: http.SameSiteStrictMode,
	})

	utils.RespondJSON(w, status, map[string]interface{}{
		"success": true,
		"user": map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"accessToken": accessToken,
	})
}

func (ac *AuthController) userFromClaims(r *http.Request, claims *utils.Claims) (*models.User, error) {
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, err
	}
	return ac.users.FindByID(r.Context(), userID)
}
