package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobpost-backend/internal/shared/auth"
	"jobpost-backend/internal/shared/server/respond"
)

const (
	userIDKey       = "userId"
	userEmailKey    = "userEmail"
	claimsKey       = "claims"
	targetUserIDKey = "targetUserId"
)

// Identity resolves an optional bearer JWT. Requests without an
// Authorization header continue anonymously; a header that does not carry a
// valid token is rejected with 401.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.UserID())
		c.Set(claimsKey, claims)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// RequireIdentity rejects anonymous requests. It must run after Identity.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserIDFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the Identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}

// ClaimsFromContext fetches the verified token claims, if any.
func ClaimsFromContext(c *gin.Context) (auth.Claims, bool) {
	if c == nil {
		return auth.Claims{}, false
	}
	val, ok := c.Get(claimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := val.(auth.Claims)
	return claims, ok
}

// CheckOwner rejects an authenticated caller acting on another user's
// records. Anonymous callers are let through.
func CheckOwner(c *gin.Context, userID string) bool {
	userID = strings.TrimSpace(userID)
	c.Set(targetUserIDKey, userID)
	caller := UserIDFromContext(c)
	if caller != "" && caller != userID {
		respond.Error(c, http.StatusForbidden, "forbidden", "Not allowed to access another user's data", nil)
		return false
	}
	return true
}
