package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// ContextUserKey is where the middleware stores the authenticated user id.
const ContextUserKey = "userID"

const tokenTTL = 7 * 24 * time.Hour

type Claims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// IssueToken signs a bearer token for the given user.
func IssueToken(secret string, userID uint) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the user id.
func ParseToken(secret, tokenString string) (uint, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	if claims.UserID == 0 {
		return 0, errors.New("token has no user id")
	}
	return claims.UserID, nil
}

// Middleware rejects unauthenticated requests with 401 before any
// handler logic runs and stores the resolved user id in the context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		userID, err := ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// UserID pulls the authenticated user id out of the gin context.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
