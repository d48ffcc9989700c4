package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rotasync/rotasync-backend-go/internal/config"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/jwt"
)

const (
	authTestSecret    = "test-secret-key-for-jwt"
	authTestAccessExp = "1h"
	authTestEmail     = "admin@example.com"
	authTestPassword  = "password123"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(authTestPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(authTestSecret, authTestAccessExp)
	return NewAuthHandler(jwtService, config.AdminConfig{
		Email:        authTestEmail,
		PasswordHash: string(hash),
	})
}

func postLogin(t *testing.T, handler *AuthHandler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)
	return rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler := newTestAuthHandler(t)

	rec := postLogin(t, handler, map[string]string{
		"email":    authTestEmail,
		"password": authTestPassword,
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
			ExpiresAt   int64  `json:"expires_at"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.AccessToken)
	assert.Greater(t, body.Data.ExpiresAt, int64(0))
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler := newTestAuthHandler(t)

	rec := postLogin(t, handler, map[string]string{
		"email":    authTestEmail,
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	handler := newTestAuthHandler(t)

	rec := postLogin(t, handler, map[string]string{
		"email":    "intruder@example.com",
		"password": authTestPassword,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	handler := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
