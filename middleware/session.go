package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"rotharc/services/session"
	"rotharc/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	currentUserKey = "currentUser"
	tokenKey       = "sessionToken"
)

// SessionResolver maps a bearer token to the signed in user.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.CurrentUser, error)
}

// AuthPrompt is the body of a 401: where to sign in or sign up.
type AuthPrompt struct {
	Message  string `json:"message"`
	Details  string `json:"details"`
	Login    string `json:"login"`
	Register string `json:"register"`
}

func unauthorized(c *gin.Context, details string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, AuthPrompt{
		Message:  "Authentication required",
		Details:  details,
		Login:    "/api/auth/login",
		Register: "/api/auth/register",
	})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// RequireSession rejects requests without a valid session token and stores the
// resolved user on the context.
func RequireSession(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			unauthorized(c, "Log in or create an account to continue.")
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), token)
		if errors.Is(err, session.ErrInvalidToken) {
			unauthorized(c, "Your session has expired. Log in again.")
			return
		}
		if err != nil {
			utils.GetLogger().Error("Failed to resolve session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, utils.ErrorResponse{
				Message: "Session service unavailable",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireAdmin must run after RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			unauthorized(c, "Log in with an administrator account.")
			return
		}
		if !user.IsAdmin {
			utils.GetLogger().Warn("Admin access denied", zap.String("userID", user.ID))
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Message: "Administrator access required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireSession.
func CurrentUser(c *gin.Context) (*session.CurrentUser, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*session.CurrentUser)
	return user, ok && user != nil
}

// SessionToken returns the bearer token accepted by RequireSession.
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
