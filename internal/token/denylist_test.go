package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/aegis-auth/aegis/internal/token"
)

func TestDenylistRevoke(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	denylist := token.NewDenylist(client)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	// Entries disappear once the token would have expired anyway.
	mr.FastForward(2 * time.Hour)
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestDenylistIgnoresAlreadyExpired(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	denylist := token.NewDenylist(client)

	require.NoError(t, denylist.Revoke(context.Background(), "jti-2", time.Now().Add(-time.Minute)))

	revoked, err := denylist.IsRevoked(context.Background(), "jti-2")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestDenylistNilClient(t *testing.T) {
	denylist := token.NewDenylist(nil)
	require.NoError(t, denylist.Revoke(context.Background(), "jti-3", time.Now().Add(time.Hour)))
	revoked, err := denylist.IsRevoked(context.Background(), "jti-3")
	require.NoError(t, err)
	require.False(t, revoked)
}
