package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms-backend/internal/user/domain"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client, ttl), mr
}

func TestSaveAndGet(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	s := Session{
		UserID:         "u1",
		User:           domain.User{ID: "u1", Name: "Jo", Role: domain.RoleUser},
		RefreshTokenID: "jti-1",
	}
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.User.ID)
	assert.Equal(t, "jti-1", got.RefreshTokenID)
}

func TestSaveSetsRefreshLifetimeTTL(t *testing.T) {
	store, mr := newTestStore(t, 2*time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{UserID: "u1"}))
	assert.Equal(t, 2*time.Hour, mr.TTL("session:u1"))
}

func TestSessionExpiresWithTTL(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{UserID: "u1"}))
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetMissingReturnsNil(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	got, err := store.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{UserID: "u1"}))
	require.NoError(t, store.Delete(ctx, "u1"))
	// Deleting again must not fail.
	require.NoError(t, store.Delete(ctx, "u1"))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveWithoutUserIDFails(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	assert.Error(t, store.Save(context.Background(), Session{}))
}
