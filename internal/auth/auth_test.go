package auth

import (
	"strings"
	"testing"

	"shipvoid-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T, password string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.Issuer = "shipvoid-test"
	cfg.Auth.ExpirationHours = 1
	if password != "" {
		hash, err := HashAdminPassword(password)
		require.NoError(t, err)
		cfg.Auth.AdminPasswordHash = hash
	}
	return cfg
}

func TestHashAdminPassword(t *testing.T) {
	hash, err := HashAdminPassword("s3cret-admin")
	require.NoError(t, err)
	assert.NoError(t, checkAdminPassword(hash, "s3cret-admin"))
	assert.ErrorIs(t, checkAdminPassword(hash, "wrong"), ErrInvalidPassword)

	err = checkAdminPassword("not-a-hash", "s3cret-admin")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPassword)
}

func TestHashAdminPassword_Rejects(t *testing.T) {
	for _, pw := range []string{"", "short", "        ", "  abc   "} {
		_, err := HashAdminPassword(pw)
		assert.ErrorIs(t, err, ErrWeakPassword, "%q", pw)
	}

	_, err := HashAdminPassword(strings.Repeat("x", 73))
	require.Error(t, err, "bcrypt input is capped at 72 bytes")
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestLoginAndValidate(t *testing.T) {
	m := NewJWTManager(testConfig(t, "s3cret-admin"))
	require.True(t, m.Enabled())

	token, exp, err := m.Login("s3cret-admin")
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "shipvoid-test", claims.Issuer)
}

func TestLogin_WrongPassword(t *testing.T) {
	m := NewJWTManager(testConfig(t, "s3cret-admin"))
	_, _, err := m.Login("nope")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLogin_NotConfigured(t *testing.T) {
	m := NewJWTManager(testConfig(t, ""))
	_, _, err := m.Login("anything")
	assert.ErrorIs(t, err, ErrLoginDisabled)

	m = NewJWTManager(&config.Config{})
	assert.False(t, m.Enabled())
	_, _, err = m.Login("anything")
	assert.ErrorIs(t, err, ErrLoginDisabled)
}

func TestValidateToken_Rejects(t *testing.T) {
	cfg := testConfig(t, "")
	m := NewJWTManager(cfg)

	other := testConfig(t, "")
	other.Auth.JWTSecret = "different"
	foreign, _, err := NewJWTManager(other).GenerateToken()
	require.NoError(t, err)
	_, err = m.ValidateToken(foreign)
	assert.Error(t, err)

	wrongIssuer := testConfig(t, "")
	wrongIssuer.Auth.Issuer = "someone-else"
	tok, _, err := NewJWTManager(wrongIssuer).GenerateToken()
	require.NoError(t, err)
	_, err = m.ValidateToken(tok)
	assert.Error(t, err)

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: cfg.Auth.Issuer},
	})
	signed, err := noRole.SignedString([]byte(cfg.Auth.JWTSecret))
	require.NoError(t, err)
	_, err = m.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("garbage")
	assert.Error(t, err)
}
