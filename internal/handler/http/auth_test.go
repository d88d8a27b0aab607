package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/auth"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
)

type fakeAuthService struct {
	loginResult auth.LoginResponse
	loginErr    error
	meResult    user.UserResponse
	meErr       error
}

func (f *fakeAuthService) Login(_ context.Context, _ auth.LoginRequest) (auth.LoginResponse, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAuthService) Me(_ context.Context) (user.UserResponse, error) {
	return f.meResult, f.meErr
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthLogin(t *testing.T) {
	t.Run("returns token on success", func(t *testing.T) {
		svc := &fakeAuthService{loginResult: auth.LoginResponse{
			AccessToken: "token-123",
			User:        user.UserResponse{ID: "u1", FullName: "Budi Santoso"},
		}}
		handler := NewAuthHandler(svc)

		payload, _ := json.Marshal(auth.LoginRequest{Username: "budi", Password: "rahasia"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "token-123", data["access_token"])
	})

	t.Run("maps invalid credentials to 401", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{loginErr: auth.ErrInvalidCredentials})

		payload, _ := json.Marshal(auth.LoginRequest{Username: "budi", Password: "salah"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthMe(t *testing.T) {
	t.Run("returns the profile", func(t *testing.T) {
		svc := &fakeAuthService{meResult: user.UserResponse{ID: "u1", FullName: "Budi Santoso"}}
		handler := NewAuthHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		rec := httptest.NewRecorder()

		handler.Me(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		data := body["data"].(map[string]any)
		assert.Equal(t, "Budi Santoso", data["full_name"])
	})

	t.Run("maps invalid token to 401", func(t *testing.T) {
		handler := NewAuthHandler(&fakeAuthService{meErr: auth.ErrInvalidToken})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		rec := httptest.NewRecorder()

		handler.Me(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
