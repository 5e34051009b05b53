package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAuth validates an HMAC-signed bearer token and exposes the caller's
// identity on the context. Downstream code only consumes this as a
// logged-in signal plus display name.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		raw = strings.TrimPrefix(raw, "Bearer ")

		token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Set("user_id", sub)
		}
		if name, _ := claims["name"].(string); name != "" {
			c.Set("user_name", name)
		}

		c.Next()
	}
}

// CurrentUser reports whether a user is logged in on this request and, if
// so, their display name.
func CurrentUser(c *gin.Context) (string, bool) {
	id, ok := c.Get("user_id")
	if !ok {
		return "", false
	}
	if name, has := c.Get("user_name"); has {
		return name.(string), true
	}
	return id.(string), true
}
