package dto

import (
	"lms-backend/internal/user/domain"
	"lms-backend/pkg/uploader"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type ActivateRequest struct {
	ActivationToken string `json:"activation_token" binding:"required"`
	ActivationCode  string `json:"activation_code" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SocialAuthRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Avatar string `json:"avatar"`
}

type UpdateInfoRequest struct {
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Avatar *uploader.Asset `json:"avatar"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// AuthResult is what a successful login, social auth or refresh produces.
// Delivery turns the tokens into cookies and echoes the rest in the body.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}
