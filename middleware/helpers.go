package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/playground-standings/models"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

// Определяем константы для имен JWT claims
const (
	JWTClaimEmail = "email"
	JWTClaimRole  = "role"
)

// NewToken подписывает HS256-токен администратора.
func NewToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		JWTClaimEmail: user.Email,
		JWTClaimRole:  string(user.Role),
		"exp":         now.Add(ttl).Unix(),
		"iat":         now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func GetUserEmailFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}
	email, ok := claims[JWTClaimEmail].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("missing '%s' claim in token", JWTClaimEmail)
	}
	return email, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	roleClaim, ok := claims[JWTClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", JWTClaimRole)
	}
	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", JWTClaimRole, roleClaim)
	}

	role := models.UserRole(roleStr)
	switch role {
	case models.RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
