package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/playground-standings/middleware"
	"github.com/Dosada05/playground-standings/services"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
	}
}

// Login godoc
// @Summary Вход администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param input body services.LoginInput true "Учётные данные"
// @Success 200 {object} map[string]interface{} "token, expires_at"
// @Failure 400 {object} map[string]string "Некорректный запрос"
// @Failure 401 {object} map[string]string "Неверный email или пароль"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput

	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	user, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	tokenString, err := middleware.NewToken(user, h.jwtSecret, tokenTTL)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to sign token: %w", err))
		return
	}

	response := jsonResponse{
		"token":      tokenString,
		"expires_at": time.Now().Add(tokenTTL).UTC(),
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
