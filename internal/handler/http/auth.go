package http

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/rotasync/rotasync-backend-go/internal/config"
	"github.com/rotasync/rotasync-backend-go/internal/handler/http/response"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/jwt"
)

// AuthHandler issues access tokens for the control API. There is a single
// admin identity configured through the environment; this service has no
// user management of its own.
type AuthHandler struct {
	jwtService jwt.Service
	admin      config.AdminConfig
}

func NewAuthHandler(jwtService jwt.Service, admin config.AdminConfig) *AuthHandler {
	return &AuthHandler{jwtService: jwtService, admin: admin}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if req.Email != h.admin.Email {
		response.Unauthorized(w, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password)); err != nil {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	token, expiresAt, err := h.jwtService.GenerateAccessToken(req.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, loginResponse{AccessToken: token, ExpiresAt: expiresAt})
}
