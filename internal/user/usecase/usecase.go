package usecase

import (
	"context"

	"lms-backend/internal/user/domain"
	"lms-backend/internal/user/dto"
)

// AuthUsecase covers the full account lifecycle: registration/activation,
// the login/logout/refresh session machinery, and profile updates that must
// keep the session snapshot in step with the document store.
type AuthUsecase interface {
	Register(ctx context.Context, req dto.RegisterRequest) (activationToken string, err error)
	Activate(ctx context.Context, req dto.ActivateRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResult, error)
	SocialAuth(ctx context.Context, req dto.SocialAuthRequest) (*dto.AuthResult, error)
	Logout(ctx context.Context, userID string) error
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResult, error)
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateInfo(ctx context.Context, userID string, req dto.UpdateInfoRequest) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID string, req dto.UpdatePasswordRequest) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID string, avatar string) (*domain.User, error)
}
