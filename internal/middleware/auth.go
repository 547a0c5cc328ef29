package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/MuxN4/linkup/internal/service"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// Auth requires a valid identity-provider token and a materialized user
// record. A valid token without a record is a hard 401: resolution should
// have created the row before any authenticated call.
func Auth(identity *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing or invalid identity token"})
			c.Abort()
			return
		}
		userID, err := identity.CurrentUserID(c.Request.Context(), claims.ExternalID())
		if err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, pkg.ErrUnauthenticated) {
				status = http.StatusServiceUnavailable
			}
			c.JSON(status, gin.H{"msg": "unresolved identity"})
			c.Abort()
			return
		}
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unresolved identity"})
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth resolves the acting user when a valid token is presented and
// proceeds without a session otherwise. Read surfaces use this so anonymous
// callers still get the feed.
func OptionalAuth(identity *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c); ok {
			if userID, err := identity.CurrentUserID(c.Request.Context(), claims.ExternalID()); err == nil && userID != 0 {
				c.Set(ContextUserIDKey, userID)
			}
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context) (*pkg.IdentityClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	claims, err := pkg.ParseIdentityToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

// UserID pulls the resolved acting user from the gin context; 0 means no
// session.
func UserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}
