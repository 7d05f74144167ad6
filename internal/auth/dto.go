// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

const (
	tokenTypeBearer = "Bearer"
	statusLoggedIn  = "logged_in"
)

type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Name     string `json:"name"     validate:"omitempty,max=100"`
	// Role is accepted for compatibility; self-service signup always
	// creates a plain user.
	Role string `json:"role" validate:"omitempty,oneof=user admin"`
}

type SigninRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	Status      string    `json:"status"`
}

func toAuthResponse(t *IssuedToken) *AuthResponse {
	return &AuthResponse{
		AccessToken: t.Token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int(t.TTL.Seconds()),
		ExpiresAt:   t.ExpiresAt,
		Status:      statusLoggedIn,
	}
}
