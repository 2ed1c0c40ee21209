package security

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"relief/pkg/roles"
)

const (
	ContextUserID   = "userID"
	ContextRole     = "role"
	ContextUsername = "username"
)

// GenerateJWT signs an HS256 token carrying the claims the middleware reads.
// Tokens are issued by the identity service; this is used by tooling and tests.
func GenerateJWT(secret []byte, userID int, role roles.Role, username string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"role":     role.String(),
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GetUserID returns the authenticated user's id stored by JWTMiddleware.
func GetUserID(c *gin.Context) (int, error) {
	raw, exists := c.Get(ContextUserID)
	if !exists {
		return 0, fmt.Errorf("user id missing from context")
	}

	switch v := raw.(type) {
	case int:
		return v, nil
	case string:
		return strconv.Atoi(v)
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("user id has unexpected type %T", raw)
	}
}

// RateLimitKey buckets a caller by user id, or by client IP when the
// context carries no usable id.
func RateLimitKey(c *gin.Context) string {
	if id, err := GetUserID(c); err == nil {
		return "user:" + strconv.Itoa(id)
	}
	return "ip:" + c.ClientIP()
}

func GetRole(c *gin.Context) roles.Role {
	role, _ := c.Get(ContextRole)
	if s, ok := role.(string); ok {
		return roles.Role(s)
	}
	return ""
}

// CurrentUserID is GetUserID for audit entries, nil when unauthenticated.
func CurrentUserID(c *gin.Context) *int {
	userID, err := GetUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}
