package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frozenTokenService(secret string, ttl time.Duration, at time.Time) *TokenService {
	s := NewTokenService(secret, ttl)
	s.now = func() time.Time { return at }

	return s
}

func TestTokenService_IssueVerify(t *testing.T) {
	issued := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := frozenTokenService("test-secret", 24*time.Hour, issued)

	supplierID := uuid.New()

	token, err := svc.Issue(supplierID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, supplierID, got)
}

func TestTokenService_Expired(t *testing.T) {
	issued := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := frozenTokenService("test-secret", time.Hour, issued)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	// Still valid just before expiry.
	svc.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_WrongSecret(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	token, err := frozenTokenService("secret-a", time.Hour, at).Issue(uuid.New())
	require.NoError(t, err)

	_, err = frozenTokenService("secret-b", time.Hour, at).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
