package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/playground-standings/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrAuthInvalidCredentials = ErrInvalidCredentials

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authService проверяет единственного администратора, заданного в конфигурации.
type authService struct {
	admin models.User
}

func NewAuthService(adminEmail, adminPasswordHash string) AuthService {
	return &authService{
		admin: models.User{
			Email:        strings.ToLower(strings.TrimSpace(adminEmail)),
			Role:         models.RoleAdmin,
			PasswordHash: adminPasswordHash,
		},
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if s.admin.Email == "" || s.admin.PasswordHash == "" {
		return nil, ErrAuthenticationFailed
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(s.admin.Email)) != 1 {
		return nil, ErrAuthInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user := s.admin
	user.PasswordHash = ""
	return &user, nil
}
