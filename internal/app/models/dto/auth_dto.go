package dto

import "github.com/yigit/gradesphere/internal/app/models"

// SignupRequest represents a new account registration
type SignupRequest struct {
	Name           string `json:"name" binding:"required"`
	RegisterNumber string `json:"registerNumber" binding:"required"`
	Department     string `json:"department" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn"`
}

// AuthResponse represents a successful signup or login: the token pair plus
// the sanitized user.
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  models.User   `json:"user"`
}
