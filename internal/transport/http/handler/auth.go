package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Markus2025/nottinghamdemo/internal/transport/http/dto"
	"github.com/Markus2025/nottinghamdemo/internal/transport/http/middleware"
	"github.com/Markus2025/nottinghamdemo/internal/usecase"
)

// AuthHandler обрабатывает вход и профиль пользователя
type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
	jwtSecret   string
}

// NewAuthHandler создает новый handler для аутентификации
func NewAuthHandler(authUseCase *usecase.AuthUseCase, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		jwtSecret:   jwtSecret,
	}
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "code is required")
		return
	}

	var nickname, avatar string
	if req.UserInfo != nil {
		nickname = req.UserInfo.Nickname
		avatar = req.UserInfo.Avatar
	}

	user, err := h.authUseCase.Login(r.Context(), req.Code, nickname, avatar)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	token, err := middleware.GenerateToken(h.jwtSecret, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.ToUserDTO(user),
	})
}

// RefreshToken обрабатывает POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	token, err := middleware.GenerateToken(h.jwtSecret, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, dto.RefreshResponse{Token: token})
}

// UpdateProfile обрабатывает PUT /api/user/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	user, err := h.authUseCase.UpdateProfile(r.Context(), userID, usecase.ProfileUpdate{
		Nickname: req.Nickname,
		Avatar:   req.Avatar,
		Campus:   req.Campus,
		Motto:    req.Motto,
	})
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserDTO(user))
}
