package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"mockmate/interview/internal/models"
	"mockmate/interview/internal/utils"
)

const userIDKey contextKey = "user_id"

var (
	ErrMissingAuthHeader = errors.New("missing or malformed Authorization header")
	ErrInvalidToken      = errors.New("invalid token")
)

// Authenticate validates the bearer token and stores the owner's user
// ID in the request context. Full account management lives elsewhere;
// this service only needs to know who owns the interview rows.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := verifyToken(r, secret)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: err.Error(),
				})
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID retrieves the authenticated user ID from context.
func GetUserID(r *http.Request) string {
	if id, ok := r.Context().Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

func verifyToken(r *http.Request, secret string) (string, error) {
	var tokenStr string
	authz := r.Header.Get("Authorization")
	switch {
	case strings.HasPrefix(authz, "Bearer "):
		tokenStr = strings.TrimPrefix(authz, "Bearer ")
	case r.URL.Query().Get("token") != "":
		// Browser WebSocket clients cannot set request headers.
		tokenStr = r.URL.Query().Get("token")
	default:
		return "", ErrMissingAuthHeader
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	switch sub := claims["sub"].(type) {
	case string:
		return sub, nil
	case float64:
		// JWT numbers get decoded as float64
		return fmt.Sprintf("%d", int64(sub)), nil
	default:
		return "", errors.New("missing sub claim")
	}
}
