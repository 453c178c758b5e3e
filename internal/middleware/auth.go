package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OwnerIDKey is the gin context key holding the authenticated owner's uuid.UUID.
const OwnerIDKey = "owner_id"

const accessTokenType = "access"

// Claims is the access token payload issued by the identity service.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"token_type"`
	jwt.RegisteredClaims
}

func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortJSON(c, http.StatusUnauthorized, "Authorization header required", "MISSING_AUTH_HEADER")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "Bearer token required", "INVALID_AUTH_FORMAT")
			return
		}
		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			abortJSON(c, http.StatusUnauthorized, "Token cannot be empty", "EMPTY_TOKEN")
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			} else if method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected HMAC algorithm: %v", method.Alg())
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortJSON(c, http.StatusUnauthorized, "Token expired", "TOKEN_EXPIRED")
				return
			}
			abortJSON(c, http.StatusUnauthorized, "Invalid token", "TOKEN_INVALID")
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || !token.Valid {
			abortJSON(c, http.StatusUnauthorized, "Invalid token claims", "INVALID_CLAIMS")
			return
		}

		if err := validateTokenClaims(claims); err != nil {
			abortJSON(c, http.StatusUnauthorized, "Token validation failed", "CLAIM_VALIDATION_FAILED")
			return
		}

		c.Set(OwnerIDKey, claims.UserID)
		c.Next()
	}
}

func validateTokenClaims(claims *Claims) error {
	now := time.Now()

	if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time) {
		return fmt.Errorf("token has expired")
	}

	if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
		return fmt.Errorf("token not valid yet")
	}

	if claims.TokenType != accessTokenType {
		return fmt.Errorf("invalid token type: expected %s, got %s", accessTokenType, claims.TokenType)
	}

	if claims.UserID == uuid.Nil {
		return fmt.Errorf("invalid user ID")
	}

	return nil
}

func abortJSON(c *gin.Context, code int, message, errorCode string) {
	c.JSON(code, gin.H{
		"error": message,
		"code":  errorCode,
	})
	c.Abort()
}
