package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func newIssuer(t *testing.T, cfg Config) *Issuer {
	t.Helper()

	if cfg.Secret == nil {
		cfg.Secret = secret
	}

	i, err := NewIssuer(cfg)
	require.NoError(t, err)
	return i
}

func TestNewIssuer(t *testing.T) {
	_, err := NewIssuer(Config{Secret: []byte("short")})
	assert.Error(t, err)

	_, err = NewIssuer(Config{Secret: secret, TTL: -time.Second})
	assert.Error(t, err)

	i, err := NewIssuer(Config{Secret: secret})
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, i.ttl)
}

func TestIssueAndVerify(t *testing.T) {
	i := newIssuer(t, Config{TTL: time.Hour, Issuer: "warehouse"})

	token, err := i.IssueDefault("admin")
	require.Nil(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt(), 2*time.Second)

	subject, err := i.Verify(token.String())
	require.Nil(t, err)
	assert.Equal(t, "admin", subject)

	token, err = i.Issue("admin", time.Minute)
	require.Nil(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), token.ExpiresAt(), 2*time.Second)
}

func TestIssueEmptySubject(t *testing.T) {
	i := newIssuer(t, Config{})

	_, err := i.Issue("", time.Minute)
	assert.NotNil(t, err)

	_, err = i.IssueDefault("")
	assert.NotNil(t, err)
}

func TestZeroTTLTokenIsInvalid(t *testing.T) {
	i := newIssuer(t, Config{})

	token, err := i.Issue("admin", 0)
	require.Nil(t, err)
	assert.False(t, token.ExpiresAt().After(time.Now()))

	_, err = i.Verify(token.String())
	assert.Equal(t, TokenExpired, err)
	assert.Equal(t, 401, err.Status())

	token, err = i.IssueWithExpiry("admin", time.Now().Add(-time.Minute))
	require.Nil(t, err)

	_, err = i.Verify(token.String())
	assert.Equal(t, TokenExpired, err)
}

func TestVerifyFailures(t *testing.T) {
	i := newIssuer(t, Config{Issuer: "warehouse"})

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	valid := jwt.RegisteredClaims{
		Issuer:    "warehouse",
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not.a.token"},
		{"empty", ""},
		{
			"wrong secret",
			sign(jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"), valid),
		},
		{
			"unexpected method",
			sign(jwt.SigningMethodHS512, secret, valid),
		},
		{
			"missing exp",
			sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{Issuer: "warehouse", Subject: "admin"}),
		},
		{
			"missing sub",
			sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
				Issuer:    "warehouse",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
		},
		{
			"wrong issuer",
			sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
				Issuer:    "someone",
				Subject:   "admin",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
		},
		{
			"expired",
			sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
				Issuer:    "warehouse",
				Subject:   "admin",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := i.Verify(tt.token)
			require.NotNil(t, err)
			assert.True(t, IsTokenError(err))
			assert.Equal(t, 401, err.Status())
			assert.Empty(t, subject)
		})
	}

	subject, err := i.Verify(sign(jwt.SigningMethodHS256, secret, valid))
	require.Nil(t, err)
	assert.Equal(t, "admin", subject)
}
