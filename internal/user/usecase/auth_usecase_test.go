package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms-backend/internal/apperror"
	"lms-backend/internal/session"
	"lms-backend/internal/user/domain"
	"lms-backend/internal/user/dto"
	"lms-backend/internal/user/repository"
	"lms-backend/pkg/config"
	"lms-backend/pkg/token"
	"lms-backend/pkg/uploader"
)

// fakeUserRepo is an in-memory UserRepository. A fake instead of a mock
// framework keeps the tests readable.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User // keyed by id
	byEmail map[string]string
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = "user-" + string(rune('0'+f.nextID))
	f.nextID++
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	f.byEmail[user.Email] = user.ID
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *f.users[id]
	return &copied, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.users[user.ID]
	if !ok {
		return errors.New("user not found")
	}
	delete(f.byEmail, old.Email)
	copied := *user
	f.users[user.ID] = &copied
	f.byEmail[user.Email] = user.ID
	return nil
}

type sentMail struct {
	To       string
	Subject  string
	Template string
	Data     any
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) Send(to, subject, templateName string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

type fakeUploader struct {
	destroyed []string
	uploads   int
}

func (f *fakeUploader) Upload(ctx context.Context, data, folder string) (uploader.Asset, error) {
	f.uploads++
	return uploader.Asset{PublicID: folder + "/fake", URL: "https://cdn.example.com/" + folder + "/fake"}, nil
}

func (f *fakeUploader) Destroy(ctx context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

type authFixture struct {
	usecase  AuthUsecase
	repo     *fakeUserRepo
	sessions session.Store
	mail     *fakeMailer
	files    *fakeUploader
	tokens   *token.Issuer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	cfg := &config.Config{
		AccessTokenSecret:  "access-secret-for-tests",
		RefreshTokenSecret: "refresh-secret-for-tests",
		ActivationSecret:   "activation-secret-for-tests",
		AccessTokenExpiry:  5 * time.Minute,
		RefreshTokenExpiry: 3 * 24 * time.Hour,
	}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewRedisStore(client, cfg.RefreshTokenExpiry)

	repo := newFakeUserRepo()
	mail := &fakeMailer{}
	files := &fakeUploader{}
	tokens := token.NewIssuer(cfg)

	return &authFixture{
		usecase:  NewAuthUsecase(repo, sessions, tokens, mail, files),
		repo:     repo,
		sessions: sessions,
		mail:     mail,
		files:    files,
		tokens:   tokens,
	}
}

// seedUser creates an activated user directly in the fake repo.
func (f *authFixture) seedUser(t *testing.T, email, password, role string) *domain.User {
	t.Helper()
	hash, err := repository.HashPassword(password)
	require.NoError(t, err)
	user := &domain.User{Name: "Seeded", Email: email, PasswordHash: hash, Role: role, IsVerified: true}
	require.NoError(t, f.repo.Create(context.Background(), user))
	return user
}

func TestRegisterThenActivateCreatesUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	activationToken, err := f.usecase.Register(ctx, dto.RegisterRequest{
		Name: "Alice", Email: "a@x.com", Password: "secret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, activationToken)

	// The user does not exist until the code is presented.
	pending, err := f.repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, pending)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "a@x.com", f.mail.sent[0].To)
	assert.Equal(t, "activation_mail", f.mail.sent[0].Template)

	claims, err := f.tokens.ParseActivationToken(activationToken)
	require.NoError(t, err)

	err = f.usecase.Activate(ctx, dto.ActivateRequest{
		ActivationToken: activationToken,
		ActivationCode:  claims.Code,
	})
	require.NoError(t, err)

	user, err := f.repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsVerified)
}

func TestActivateRejectsWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	activationToken, err := f.usecase.Register(ctx, dto.RegisterRequest{
		Name: "Alice", Email: "a@x.com", Password: "secret-pass",
	})
	require.NoError(t, err)

	err = f.usecase.Activate(ctx, dto.ActivateRequest{
		ActivationToken: activationToken,
		ActivationCode:  "0000",
	})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)

	_, err := f.usecase.Register(context.Background(), dto.RegisterRequest{
		Name: "Other", Email: "a@x.com", Password: "another-pass",
	})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.Empty(t, f.mail.sent)
}

func TestLoginThenAuthenticateResolvesSameUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	seeded := f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)

	result, err := f.usecase.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "secret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)

	user, err := f.usecase.Authenticate(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)

	_, err := f.usecase.Login(context.Background(), dto.LoginRequest{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = f.usecase.Login(context.Background(), dto.LoginRequest{Email: "nobody@x.com", Password: "secret-pass"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestLogoutRevokesUnexpiredAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	seeded := f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)

	result, err := f.usecase.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "secret-pass"})
	require.NoError(t, err)

	require.NoError(t, f.usecase.Logout(ctx, seeded.ID))

	// The token itself is still structurally valid, but the session is
	// gone, so authentication must fail.
	_, err = f.usecase.Authenticate(ctx, result.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	// Logout is idempotent.
	require.NoError(t, f.usecase.Logout(ctx, seeded.ID))
}

func TestMeFallsBackToStoreWithoutRecreatingSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	seeded := f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)

	// No session exists, so Me must serve the profile from the document
	// store.
	user, err := f.usecase.Me(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.Equal(t, seeded.Email, user.Email)

	// The fallback must not mint a session, otherwise a logged-out user's
	// unexpired tokens would become valid again.
	s, err := f.sessions.Get(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = f.usecase.Me(ctx, "68b0000000000000000000ff")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRefreshRotatesTokensAndInvalidatesOldRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)

	login, err := f.usecase.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "secret-pass"})
	require.NoError(t, err)

	first, err := f.usecase.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.AccessToken, first.AccessToken)
	assert.NotEqual(t, login.RefreshToken, first.RefreshToken)

	// The login-time refresh token is structurally valid but its jti no
	// longer matches the session, so it must be rejected.
	_, err = f.usecase.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	// The freshly rotated token still works.
	second, err := f.usecase.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
}

func TestRefreshFailsWithoutSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	seeded := f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)

	login, err := f.usecase.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "secret-pass"})
	require.NoError(t, err)

	require.NoError(t, f.usecase.Logout(ctx, seeded.ID))

	_, err = f.usecase.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestSocialAuthIsIdempotentOnEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	first, err := f.usecase.SocialAuth(ctx, dto.SocialAuthRequest{
		Name: "Alice", Email: "a@x.com", Avatar: "https://cdn.example.com/a.png",
	})
	require.NoError(t, err)

	second, err := f.usecase.SocialAuth(ctx, dto.SocialAuthRequest{
		Name: "Alice Again", Email: "a@x.com",
	})
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestUpdateInfoRefreshesSessionSnapshot(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	seeded := f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)

	login, err := f.usecase.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = f.usecase.UpdateInfo(ctx, seeded.ID, dto.UpdateInfoRequest{Name: "Renamed"})
	require.NoError(t, err)

	// The session snapshot must reflect the write immediately.
	user, err := f.usecase.Authenticate(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
}

func TestUpdateInfoRejectsTakenEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	seeded := f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)
	f.seedUser(t, "b@x.com", "secret-pass", domain.RoleUser)

	_, err := f.usecase.UpdateInfo(ctx, seeded.ID, dto.UpdateInfoRequest{Email: "b@x.com"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestUpdatePasswordValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	seeded := f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)

	// Only rejected when both fields are empty.
	_, err := f.usecase.UpdatePassword(ctx, seeded.ID, dto.UpdatePasswordRequest{})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = f.usecase.UpdatePassword(ctx, seeded.ID, dto.UpdatePasswordRequest{
		OldPassword: "wrong", NewPassword: "new-secret",
	})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = f.usecase.UpdatePassword(ctx, seeded.ID, dto.UpdatePasswordRequest{
		OldPassword: "secret-pass", NewPassword: "new-secret",
	})
	require.NoError(t, err)

	_, err = f.usecase.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "new-secret"})
	require.NoError(t, err)
}

func TestUpdateAvatarReplacesOldAsset(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	seeded := f.seedUser(t, "a@x.com", "secret-pass", domain.RoleUser)

	first, err := f.usecase.UpdateAvatar(ctx, seeded.ID, "data:image/png;base64,aaa")
	require.NoError(t, err)
	require.NotEmpty(t, first.Avatar.PublicID)

	_, err = f.usecase.UpdateAvatar(ctx, seeded.ID, "data:image/png;base64,bbb")
	require.NoError(t, err)

	assert.Equal(t, []string{first.Avatar.PublicID}, f.files.destroyed)
	assert.Equal(t, 2, f.files.uploads)
}
