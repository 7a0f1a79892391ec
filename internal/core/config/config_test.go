package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

const minimal = `
jwt:
  secret: 0123456789abcdef0123456789abcdef
db:
  driver: sqlite
  dsn: "file::memory:"
`

func TestRead_DefaultsApplied(t *testing.T) {
	c, err := Read(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, "youwatch-api", c.App.Name)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "youwatch-api", c.JWT.Issuer)
	assert.Equal(t, "youwatch-clients", c.JWT.Audience)
	assert.Equal(t, 120, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, 5, c.Auth.MaxFailedLogins)
	assert.Equal(t, "file::memory:", c.DB.DSN)
	assert.False(t, c.Telemetry.Enabled)
}

func TestRead_EnvOverride(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "ffffffffffffffffffffffffffffffffffff")
	t.Setenv("APP_APP_HTTP_PORT", "9090")

	c, err := Read(writeConfig(t, minimal))
	require.NoError(t, err)
	assert.Equal(t, "ffffffffffffffffffffffffffffffffffff", c.JWT.Secret)
	assert.Equal(t, 9090, c.App.HTTP.Port)
}

func TestRead_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("short secret", func(t *testing.T) {
		_, err := Read(writeConfig(t, "jwt:\n  secret: short\n"))
		assert.ErrorContains(t, err, "jwt.secret")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Read(writeConfig(t, "jwt:\n  secret: 0123456789abcdef0123456789abcdef\ndb:\n  driver: oracle\n"))
		assert.Error(t, err)
	})
}
