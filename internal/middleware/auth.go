package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blanco81/app-task/internal/auth"
	"github.com/blanco81/app-task/internal/models"
	"github.com/blanco81/app-task/internal/repository"
)

const (
	// AccessTokenCookie is the cookie carrying the session token.
	AccessTokenCookie = "access_token"

	currentUserKey = "currentUser"
)

// ExtractToken pulls the candidate token from the Authorization header if
// present and well-formed, otherwise from the access_token cookie (stripping
// an optional "Bearer " prefix). Returns "" when neither carries one.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return strings.TrimSpace(strings.TrimPrefix(cookie, "Bearer "))
	}
	return ""
}

// AuthMiddleware resolves the caller's identity on every protected endpoint:
// token extraction, revocation check (before signature verification, so a
// revoked-but-valid token is always rejected), codec verification and subject
// lookup. Every rejection returns the same 401 body; the cause is only
// logged.
func AuthMiddleware(users repository.UserRepository, codec *auth.Codec, blacklist auth.Blacklist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func(reason string) {
			logger.Debug("Authentication rejected", zap.String("reason", reason), zap.String("path", c.FullPath()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
		}

		tokenString := ExtractToken(c)
		if tokenString == "" {
			reject("no token")
			return
		}

		if blacklist.IsRevoked(tokenString) {
			reject("token revoked")
			return
		}

		claims, err := codec.Verify(tokenString)
		if err != nil {
			reject("invalid token")
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			reject("unknown subject")
			return
		}
		if user.Deleted {
			reject("subject deactivated")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(currentUserKey).(*models.User)
}
