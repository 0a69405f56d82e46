package server

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	UserID string `json:"user_id"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleAuthLogin handles POST /api/auth/login. Outside production this mints
// a signed token for any supplied user id so multi-tenant flows can be
// exercised locally; production deployments front this with a real identity
// provider and never expose the dev mint.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Login is handled by the identity provider in production")
		return
	}

	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		req.UserID = "default"
	}

	expiresAt := time.Now().Add(s.app.Config.Auth.GetTokenExpiry())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": req.UserID,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(s.app.Config.Auth.JWTSecret))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to sign token")
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{
		Token:     signed,
		UserID:    req.UserID,
		ExpiresAt: expiresAt,
	})
}

// handleAuthLogout handles POST /api/auth/logout. Tokens are stateless, so
// logout is a client-side discard; the endpoint exists so clients have a
// uniform call to make.
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
