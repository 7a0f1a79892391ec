package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTer(now *time.Time) *JWTer {
	return &JWTer{
		Secret:   []byte("test-secret-0123456789abcdef0123"),
		Issuer:   "youwatch-api",
		Audience: "youwatch-clients",
		Now:      func() time.Time { return *now },
	}
}

func TestJWTer_IssueAndParse(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	j := newTestJWTer(&now)

	tok, err := j.Issue("ana@x.com", RoleCriador)
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", c.Email)
	assert.Equal(t, RoleCriador, c.Role)
	assert.Equal(t, "youwatch-api", c.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"youwatch-clients"}, c.Audience)
	assert.True(t, now.Add(2*time.Hour).Equal(c.ExpiresAt.Time))
}

func TestJWTer_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	j := newTestJWTer(&now)

	tok, err := j.Issue("bob@x.com", RoleUsuario)
	require.NoError(t, err)

	now = now.Add(2*time.Hour - time.Minute)
	_, err = j.Parse(tok)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = j.Parse(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTer_RejectsForeignTokens(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	j := newTestJWTer(&now)
	tok, err := j.Issue("ana@x.com", RoleCriador)
	require.NoError(t, err)

	t.Run("different key", func(t *testing.T) {
		other := newTestJWTer(&now)
		other.Secret = []byte("another-secret-0123456789abcdef0")
		_, err := other.Parse(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("different issuer", func(t *testing.T) {
		other := newTestJWTer(&now)
		other.Issuer = "someone-else"
		_, err := other.Parse(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("different audience", func(t *testing.T) {
		other := newTestJWTer(&now)
		other.Audience = "other-clients"
		_, err := other.Parse(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := j.Parse("not-a-token")
		assert.Error(t, err)
	})
}

func TestJWTer_IssueUnknownRole(t *testing.T) {
	now := time.Now()
	j := newTestJWTer(&now)
	_, err := j.Issue("x@x.com", Role("admin"))
	assert.Error(t, err)
}

func TestJWTer_DefaultTTL(t *testing.T) {
	j := &JWTer{}
	assert.Equal(t, DefaultTTL, j.ttl())
	j.TTL = time.Minute
	assert.Equal(t, time.Minute, j.ttl())
}
