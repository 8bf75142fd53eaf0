package auth

import (
	"github.com/transportly/transportly-backend/internal/users"
)

// SignupRequest contains the payload required to create an account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SigninRequest contains the credentials for a login attempt.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SigninResponse carries the authenticated profile and its token pair.
type SigninResponse struct {
	User         *users.UserDTO `json:"user"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
}

// TokenPairResponse carries a freshly rotated token pair.
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
