package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"shipvoid-backend/internal/auth"
	"shipvoid-backend/internal/logging"
	"shipvoid-backend/pkg/utils"
)

type AuthHandler struct {
	JWT *auth.JWTManager
}

func NewAuthHandler(jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{JWT: jwtManager}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, expires, err := h.JWT.Login(req.Password)
	switch {
	case errors.Is(err, auth.ErrLoginDisabled):
		utils.Error(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil && !errors.Is(err, auth.ErrInvalidPassword):
		logging.Component("Auth").Errorf("Admin login unavailable: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Login unavailable")
		return
	case err != nil:
		logging.Component("Auth").WithField("ip", getClientIP(r)).Warn("Failed admin login")
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"expires_at": expires,
	})
}

// getClientIP extracts the real IP address from the request
func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
