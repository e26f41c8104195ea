package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authentication is an upstream concern: the gateway validates the session
// and injects the verified actor identity as headers. The engine never reads
// ambient session state; every operation receives its actor explicitly.
const (
	HeaderUserID = "X-User-ID"
	HeaderShopID = "X-Shop-ID"
)

// RequireUser rejects requests without a verified user identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(HeaderUserID) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		c.Next()
	}
}

// RequireShop rejects requests without a verified business identity.
func RequireShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(HeaderShopID) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing business identity"})
			return
		}
		c.Next()
	}
}
