package auth

import (
	"strings"

	"github.com/user/taskmanager-go/store"
)

// SignupRequest represents the registration request payload
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100" example:"Andrew"`
	Email    string `json:"email" validate:"required,email" example:"andrew@example.com"`
	Password string `json:"password" validate:"required,password" example:"Sunrise99"`
}

// normalize trims input before validation.
func (r *SignupRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" example:"andrew@example.com"`
	Password string `json:"password" example:"Sunrise99"`
}

// AuthResponse is returned by signup and login: the public user plus the new session token.
type AuthResponse struct {
	User  *store.User `json:"user"`
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
