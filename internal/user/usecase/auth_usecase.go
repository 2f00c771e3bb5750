package usecase

import (
	"context"
	"fmt"

	"lms-backend/internal/apperror"
	"lms-backend/internal/session"
	"lms-backend/internal/user/domain"
	"lms-backend/internal/user/dto"
	"lms-backend/internal/user/repository"
	"lms-backend/pkg/mailer"
	"lms-backend/pkg/token"
	"lms-backend/pkg/uploader"
)

const avatarFolder = "avatar"

type authUsecase struct {
	users    repository.UserRepository
	sessions session.Store
	tokens   *token.Issuer
	mail     mailer.Mailer
	files    uploader.Uploader
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(users repository.UserRepository, sessions session.Store, tokens *token.Issuer, mail mailer.Mailer, files uploader.Uploader) AuthUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		mail:     mail,
		files:    files,
	}
}

// Register does not create the user yet. The pending registration travels
// inside the activation token; the matching code goes out by mail.
func (u *authUsecase) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	existing, err := u.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperror.BadRequest("email already exists")
	}

	hash, err := repository.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	activationToken, code, err := u.tokens.SignActivationToken(token.PendingUser{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return "", err
	}

	mailData := struct {
		Name string
		Code string
	}{Name: req.Name, Code: code}
	if err := u.mail.Send(req.Email, "Account Activation", "activation_mail", mailData); err != nil {
		return "", apperror.BadRequest(err.Error())
	}

	return activationToken, nil
}

func (u *authUsecase) Activate(ctx context.Context, req dto.ActivateRequest) error {
	claims, err := u.tokens.ParseActivationToken(req.ActivationToken)
	if err != nil {
		return apperror.BadRequest("invalid activation token")
	}
	if claims.Code != req.ActivationCode {
		return apperror.BadRequest("invalid activation code")
	}

	// The email may have been taken between registration and activation.
	existing, err := u.users.FindByEmail(ctx, claims.User.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.BadRequest("email already exists")
	}

	user := &domain.User{
		Name:         claims.User.Name,
		Email:        claims.User.Email,
		PasswordHash: claims.User.PasswordHash,
		IsVerified:   true,
	}
	return u.users.Create(ctx, user)
}

func (u *authUsecase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.BadRequest("invalid email or password")
	}
	if !repository.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperror.BadRequest("invalid email or password")
	}

	return u.openSession(ctx, user)
}

// SocialAuth logs in by email, creating a passwordless account on first
// sight. Repeated calls with the same email reuse the existing account.
func (u *authUsecase) SocialAuth(ctx context.Context, req dto.SocialAuthRequest) (*dto.AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &domain.User{
			Name:       req.Name,
			Email:      req.Email,
			Avatar:     uploader.Asset{URL: req.Avatar},
			IsVerified: true,
		}
		if err := u.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	return u.openSession(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	// Deleting an absent session is a no-op, so logout is idempotent.
	return u.sessions.Delete(ctx, userID)
}

// Refresh rotates both tokens. The presented token must carry the jti the
// session recorded at the previous rotation; anything older is rejected
// even though its signature and expiry still check out.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResult, error) {
	claims, err := u.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("could not verify refresh token")
	}

	s, err := u.sessions.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperror.Unauthorized("could not verify refresh token")
	}
	if s.RefreshTokenID != claims.ID {
		return nil, apperror.Unauthorized("refresh token is no longer valid")
	}

	return u.openSession(ctx, &s.User)
}

// Authenticate resolves an access token into the session's user snapshot.
// All failure branches are the same 401 class.
func (u *authUsecase) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := u.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return nil, apperror.Unauthorized("access token is not valid")
	}

	s, err := u.sessions.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperror.Unauthorized("user session not found")
	}
	return &s.User, nil
}

// Me reads the session snapshot first and falls back to the document store
// on a miss. The fallback never recreates the session: only Login, SocialAuth
// and Refresh mint sessions, so a deleted session stays revoked.
func (u *authUsecase) Me(ctx context.Context, userID string) (*domain.User, error) {
	s, err := u.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return &s.User, nil
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}
	return user, nil
}

func (u *authUsecase) UpdateInfo(ctx context.Context, userID string, req dto.UpdateInfoRequest) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	if req.Email != "" && req.Email != user.Email {
		if !domain.ValidEmail(req.Email) {
			return nil, apperror.BadRequest("please enter a valid email address")
		}
		existing, err := u.users.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.BadRequest("email already exists")
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := u.refreshSessionUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) UpdatePassword(ctx context.Context, userID string, req dto.UpdatePasswordRequest) (*domain.User, error) {
	// Rejects only when both fields are empty, matching the upstream
	// validation this service replaces.
	if req.OldPassword == "" && req.NewPassword == "" {
		return nil, apperror.BadRequest("please enter old and new password")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}
	if user.PasswordHash == "" {
		// Social accounts have no password to change.
		return nil, apperror.BadRequest("invalid user")
	}
	if !repository.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return nil, apperror.BadRequest("invalid old password")
	}

	hash, err := repository.HashPassword(req.NewPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := u.refreshSessionUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) UpdateAvatar(ctx context.Context, userID string, avatar string) (*domain.User, error) {
	if avatar == "" {
		return nil, apperror.BadRequest("please provide an avatar")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	if user.Avatar.PublicID != "" {
		if err := u.files.Destroy(ctx, user.Avatar.PublicID); err != nil {
			return nil, fmt.Errorf("destroying old avatar: %w", err)
		}
	}
	asset, err := u.files.Upload(ctx, avatar, avatarFolder)
	if err != nil {
		return nil, fmt.Errorf("uploading avatar: %w", err)
	}
	user.Avatar = asset

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := u.refreshSessionUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// openSession issues a fresh token pair and (over)writes the session. A
// single session per user: any previous device's session is replaced, and
// the session TTL restarts at the refresh-token lifetime.
func (u *authUsecase) openSession(ctx context.Context, user *domain.User) (*dto.AuthResult, error) {
	accessToken, err := u.tokens.SignAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, jti, err := u.tokens.SignRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	err = u.sessions.Save(ctx, session.Session{
		UserID:         user.ID,
		User:           *user,
		RefreshTokenID: jti,
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// refreshSessionUser rewrites the cached user snapshot after a profile
// write so the session cannot keep serving stale identity data. The
// refresh-token id is preserved; only the snapshot changes.
func (u *authUsecase) refreshSessionUser(ctx context.Context, user *domain.User) error {
	s, err := u.sessions.Get(ctx, user.ID)
	if err != nil || s == nil {
		return err
	}
	s.User = *user
	return u.sessions.Save(ctx, *s)
}
