package jwt_test

import (
	"moviehub/pkg/jwt"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTProvider(t *testing.T) {
	p, err := jwt.NewJWTProvider(" ", time.Hour)

	assert.Nil(t, p)
	assert.ErrorIs(t, err, jwt.ErrMissingSecret)
}

func TestJWTProvider_AdminToken(t *testing.T) {
	t.Run("round trips the subject", func(t *testing.T) {
		p, err := jwt.NewJWTProvider("secret", time.Hour)
		require.NoError(t, err)

		token, err := p.GenerateAdminToken("ops")
		require.NoError(t, err)
		subject, err := p.ParseAdminToken(token)

		require.NoError(t, err)
		assert.Equal(t, "ops", subject)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		p, err := jwt.NewJWTProvider("secret", -time.Minute)
		require.NoError(t, err)

		token, err := p.GenerateAdminToken("ops")
		require.NoError(t, err)
		_, err = p.ParseAdminToken(token)

		assert.Error(t, err)
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other, err := jwt.NewJWTProvider("other", time.Hour)
		require.NoError(t, err)
		p, err := jwt.NewJWTProvider("secret", time.Hour)
		require.NoError(t, err)

		token, err := other.GenerateAdminToken("ops")
		require.NoError(t, err)
		_, err = p.ParseAdminToken(token)

		assert.Error(t, err)
	})

	t.Run("rejects tokens without the admin type", func(t *testing.T) {
		p, err := jwt.NewJWTProvider("secret", time.Hour)
		require.NoError(t, err)
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
			"sub": "ops",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = p.ParseAdminToken(token)

		assert.EqualError(t, err, "invalid token type")
	})
}
