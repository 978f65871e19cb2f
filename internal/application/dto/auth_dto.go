package dto

import "time"

// LoginRequest body para POST /api/auth/login y /api/auth/elevate.
type LoginRequest struct {
	Password string `json:"password"`
}

// TokenResponse token emitido al operador.
type TokenResponse struct {
	Token     string    `json:"token"`
	Scopes    []string  `json:"scopes"`
	ExpiresAt time.Time `json:"expires_at"`
}
