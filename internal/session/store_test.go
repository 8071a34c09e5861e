package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Minute), mr
}

func TestCreateAndGet(t *testing.T) {
	store, _ := setupStore(t)

	sess, err := store.Create(context.Background(), "user-1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "alice", got.Username)
}

func TestGet_Missing(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpires(t *testing.T) {
	store, mr := setupStore(t)

	sess, err := store.Create(context.Background(), "user-1", "alice")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(context.Background(), sess.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDestroy_Idempotent(t *testing.T) {
	store, _ := setupStore(t)

	sess, err := store.Create(context.Background(), "user-1", "alice")
	require.NoError(t, err)

	require.NoError(t, store.Destroy(context.Background(), sess.ID))
	require.NoError(t, store.Destroy(context.Background(), sess.ID), "destroying twice must be a no-op")

	_, err = store.Get(context.Background(), sess.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec := NewCookieCodec("secret", time.Minute)

	rec := httptest.NewRecorder()
	codec.Write(rec, "session-123")

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	id, err := codec.Read(req)
	require.NoError(t, err)
	assert.Equal(t, "session-123", id)
}

func TestCookieCodec_RejectsTamperedID(t *testing.T) {
	codec := NewCookieCodec("secret", time.Minute)

	rec := httptest.NewRecorder()
	codec.Write(rec, "session-123")
	cookie := rec.Result().Cookies()[0]
	cookie.Value = "session-456." + cookie.Value[len("session-123."):]

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)

	_, err := codec.Read(req)
	require.ErrorIs(t, err, ErrBadCookie)
}

func TestCookieCodec_NoCookie(t *testing.T) {
	codec := NewCookieCodec("secret", time.Minute)

	req := httptest.NewRequest("GET", "/", nil)
	_, err := codec.Read(req)
	require.ErrorIs(t, err, http.ErrNoCookie)
}
