package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_IssueAndParse(t *testing.T) {
	s := NewSessionService("top-secret", time.Hour)

	sid, token, err := s.Issue()
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	got, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, sid, got)
}

func TestSessionService_Rejects(t *testing.T) {
	s := NewSessionService("top-secret", time.Hour)
	_, token, err := s.Issue()
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewSessionService("another", time.Hour).Parse(token)
		assert.True(t, errors.Is(err, ErrInvalidSession))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Parse("not-a-token")
		assert.True(t, errors.Is(err, ErrInvalidSession))
	})

	t.Run("expired", func(t *testing.T) {
		later := NewSessionService("top-secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.True(t, errors.Is(err, ErrInvalidSession))
	})

	t.Run("missing session id", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		})
		signed, err := raw.SignedString([]byte("top-secret"))
		require.NoError(t, err)
		_, err = s.Parse(signed)
		assert.True(t, errors.Is(err, ErrInvalidSession))
	})
}

func TestSessionService_IssueWithoutSecret(t *testing.T) {
	_, _, err := NewSessionService("", 0).Issue()
	assert.Error(t, err)
}
