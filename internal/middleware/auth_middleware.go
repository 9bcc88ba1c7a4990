package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
)

// AuthRequired validates the bearer token and sets seller context
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c, "Bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid token")
			c.Abort()
			return
		}

		setSellerContext(c, claims)
		c.Next()
	}
}

// OptionalAuth resolves seller context when a token is present but lets
// anonymous requests through. Rate quotes work without a login; seller
// overrides only apply when identity is known.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			c.Next()
			return
		}

		setSellerContext(c, claims)
		c.Next()
	}
}

// AdminRequired gates the rate-card and roster management surface
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.UnauthorizedResponse(c, "Role not found")
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != "admin" {
			utils.ForbiddenResponse(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

func setSellerContext(c *gin.Context, claims *utils.JWTClaims) {
	c.Set("seller_id", claims.SellerID)
	c.Set("role", claims.Role)
	c.Set("email", claims.Email)
}

// SellerIDFromContext returns the authenticated seller id, empty when
// the request is anonymous.
func SellerIDFromContext(c *gin.Context) string {
	if v, exists := c.Get("seller_id"); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
