package token_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/aegis-auth/aegis/internal/shared"
	"github.com/aegis-auth/aegis/internal/token"
)

func newCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec("test-secret", "", time.Hour)
	require.NoError(t, err)
	return codec
}

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := token.NewCodec("", "", time.Hour)
	require.Error(t, err)
	require.Equal(t, shared.KindConfiguration, shared.KindOf(err))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	codec := newCodec(t)
	claims := codec.NewClaims(42, "alice", "a@x.com", []string{"user"}, []string{"create-articles"})

	signed, err := codec.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(signed, "."), 3)

	got, err := codec.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "42", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "a@x.com", got.Email)
	require.Equal(t, []string{"user"}, got.Roles)
	require.Equal(t, []string{"create-articles"}, got.Permissions)
	require.Equal(t, claims.ID, got.ID)
	require.WithinDuration(t, claims.ExpiresAt.Time, got.ExpiresAt.Time, time.Second)

	id, err := got.UserID()
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
}

func TestVerifyExpired(t *testing.T) {
	codec := newCodec(t)
	claims := codec.NewClaims(1, "bob", "b@x.com", nil, nil)
	claims.IssuedAt = jwt.NewNumericDate(time.Now().Add(-2 * time.Hour))
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	signed, err := codec.Sign(claims)
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	require.ErrorIs(t, err, shared.ErrTokenExpired)
	require.NotErrorIs(t, err, shared.ErrTokenBadSignature)
	require.NotErrorIs(t, err, shared.ErrTokenMalformed)
}

func TestVerifyTamperedPayload(t *testing.T) {
	codec := newCodec(t)
	signed, err := codec.Sign(codec.NewClaims(7, "carol", "c@x.com", []string{"user"}, nil))
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(payload, &body))
	body["roles"] = []string{"super_admin"}
	forged, err := json.Marshal(body)
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)

	_, err = codec.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, shared.ErrTokenBadSignature)
}

func TestVerifyWrongKey(t *testing.T) {
	codec := newCodec(t)
	other, err := token.NewCodec("another-secret", "", time.Hour)
	require.NoError(t, err)

	signed, err := codec.Sign(codec.NewClaims(1, "dave", "d@x.com", nil, nil))
	require.NoError(t, err)

	_, err = other.Verify(signed)
	require.ErrorIs(t, err, shared.ErrTokenBadSignature)
}

func TestVerifyMalformed(t *testing.T) {
	codec := newCodec(t)
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(raw)
		require.ErrorIs(t, err, shared.ErrTokenMalformed, "input %q", raw)
	}
}

func TestKeyIDHeader(t *testing.T) {
	codec, err := token.NewCodec("test-secret", "v1", time.Hour)
	require.NoError(t, err)

	signed, err := codec.Sign(codec.NewClaims(1, "erin", "e@x.com", nil, nil))
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(signed, &token.Claims{})
	require.NoError(t, err)
	require.Equal(t, "v1", parsed.Header["kid"])
}
