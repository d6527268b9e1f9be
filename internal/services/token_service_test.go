package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "task-api-test"

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func newTestTokenService() TokenService {
	return NewTokenService(testIssuer, testSigningKey, time.Minute)
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := newTestTokenService()

	signed, expiresAt, err := tokens.Issue("alice", time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	subject, decodedExp, err := tokens.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
	assert.WithinDuration(t, expiresAt, decodedExp, time.Second)
}

func TestTokenExpired(t *testing.T) {
	tokens := newTestTokenService()

	tests := []struct {
		name string
		ttl  time.Duration
	}{
		{name: "zero ttl", ttl: 0},
		{name: "negative ttl", ttl: -time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, _, err := tokens.Issue("alice", tt.ttl)
			require.NoError(t, err)

			_, _, err = tokens.Decode(signed)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenValidUntilExpiry(t *testing.T) {
	tokens := newTestTokenService()

	signed, _, err := tokens.Issue("alice", time.Hour)
	require.NoError(t, err)

	_, _, err = tokens.Decode(signed)
	assert.NoError(t, err)
}

func TestTokenTampered(t *testing.T) {
	tokens := newTestTokenService()

	signed, _, err := tokens.Issue("alice", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "not.a.token"},
		{name: "truncated signature", token: signed[:len(signed)-4]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tokens.Decode(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenWrongKey(t *testing.T) {
	tokens := newTestTokenService()
	other := NewTokenService(testIssuer, []byte("another-signing-key-entirely...."), time.Minute)

	signed, _, err := other.Issue("alice", time.Minute)
	require.NoError(t, err)

	_, _, err = tokens.Decode(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMissingSubject(t *testing.T) {
	tokens := newTestTokenService()

	signed, _, err := tokens.Issue("", time.Minute)
	require.NoError(t, err)

	_, _, err = tokens.Decode(signed)
	assert.ErrorIs(t, err, ErrMissingSubject)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestTokenDefaultTTL(t *testing.T) {
	tokens := NewTokenService(testIssuer, testSigningKey, 0)

	signed, expiresAt, err := tokens.IssueDefault("alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultAccessTokenTTL), expiresAt, time.Second)

	subject, _, err := tokens.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}
