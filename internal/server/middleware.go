package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"art-auction/internal/auctionerrors"
	"art-auction/internal/auth"
	model "art-auction/internal/models"
	"art-auction/services/helpers"
	"art-auction/utils"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setCaller(c *gin.Context, claims *auth.Claims) {
	c.Set(helpers.CtxUserID, claims.UserID)
	c.Set(helpers.CtxUsername, claims.Username)
	c.Set(helpers.CtxUserRole, string(claims.Role))
}

// Authenticated rejects requests without a valid session token and stores the
// caller's identity on the context for handlers.
func Authenticated(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrInvalidCredentials, "missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, err, "invalid or expired session token")
			c.Abort()
			return
		}

		setCaller(c, claims)
		c.Next()
	}
}

// OptionalAuth stores the caller's identity when a valid token is present but
// never rejects the request. Used on routes whose response varies by viewer.
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := tokens.Validate(token); err == nil {
				setCaller(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole gates a route to callers holding the given role. Must run after
// Authenticated.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(helpers.CtxUserRole) != string(role) {
			utils.JSONError(c, http.StatusForbidden, auctionerrors.ErrRoleNotAllowed, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
