package security

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"relief/pkg/roles"
)

// JWTMiddleware validates the bearer token and stores its claims on the context.
func JWTMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secret, nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims := token.Claims.(jwt.MapClaims)
		c.Set(ContextUserID, claims["user_id"])
		c.Set(ContextRole, claims["role"])
		c.Set(ContextUsername, claims["username"])
		c.Next()
	}
}

// Authorize lets through any of the listed roles.
func Authorize(allowedRoles ...roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := GetRole(c)
		for _, allowed := range allowedRoles {
			if userRole == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		c.Abort()
	}
}

// RequirePermission checks the role permission matrix for resource:action.
func RequirePermission(resource Resource, action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextRole); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		userRole := GetRole(c)
		if !HasPermission(userRole, resource, action) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":               "Forbidden: insufficient permissions",
				"required_permission": fmt.Sprintf("%s:%s", resource, action),
				"user_role":           userRole,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
