package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ta9iBarkat/ecommerce-platform/models"
	"github.com/ta9iBarkat/ecommerce-platform/store"
	"github.com/ta9iBarkat/ecommerce-platform/utils"
)

// Key type for context
type contextKey string

const userContextKey = contextKey("user")

// Auth verifies bearer tokens and attaches the authenticated user to the
// request context.
type Auth struct {
	users  store.UserStore
	tokens *utils.TokenManager
}

func NewAuth(users store.UserStore, tokens *utils.TokenManager) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// Protect rejects requests without a valid access token. The user is loaded
// from the store so a deleted account is locked out immediately, even with a
// live token.
func (a *Auth) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondError(w, http.StatusUnauthorized, "not authorized, no token")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.RespondError(w, http.StatusUnauthorized, "invalid Authorization header format")
			return
		}

		claims, err := a.tokens.ParseAccess(parts[1])
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "not authorized, token failed")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "not authorized, token failed")
			return
		}

		user, err := a.users.FindByID(r.Context(), userID)
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "not authorized, user not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireRoles allows only the listed roles through. It composes after
// Protect, which must have stored the user in the context.
func (a *Auth) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFrom(r.Context())
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, "not authorized")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.RespondError(w, http.StatusForbidden, "access denied: insufficient role")
		})
	}
}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom returns the authenticated user placed by Protect.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
