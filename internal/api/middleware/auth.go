package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/ec-shop-api/internal/auth"
	"github.com/example/ec-shop-api/internal/models"
)

const claimsKey = "auth.claims"

// ExtractToken pulls the session token from the httponly cookie (the
// browser path) or a Bearer header (API clients).
func ExtractToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAuth validates the session token and stores the claims on the
// request context. Missing, malformed and expired tokens are all
// authentication errors.
func RequireAuth(tokens *auth.TokenService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c, cookieName)
		if tokenString == "" {
			abortError(c, http.StatusUnauthorized, "Unauthorized, token missing or invalid")
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			abortError(c, http.StatusUnauthorized, "Unauthorized, token is expired or invalid")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole allows continuation only when the authenticated
// principal's role is in the permitted set. No principal is an
// authentication error; the wrong role is an authorization error.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortError(c, http.StatusUnauthorized, "Unauthorized access")
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		abortError(c, http.StatusForbidden, "Forbidden")
	}
}

// GetClaims retrieves the authenticated principal's claims.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetUserID is a helper for the common case of just needing the id.
func GetUserID(c *gin.Context) string {
	claims, ok := GetClaims(c)
	if !ok {
		return ""
	}
	return claims.UserID
}

// IsAdmin reports whether the current principal has the admin role.
func IsAdmin(c *gin.Context) bool {
	claims, ok := GetClaims(c)
	return ok && claims.Role == models.RoleAdmin
}

func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
