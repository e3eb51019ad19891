package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID)
	require.NoError(t, err)

	got, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenIssuer_TokensAreUnique(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 0)
	userID := uuid.New()

	first, err := issuer.Issue(userID)
	require.NoError(t, err)
	second, err := issuer.Issue(userID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenIssuer_RejectsOtherSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Expiry(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_NoExpiryWhenTTLIsZero(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 0)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.AddDate(5, 0, 0) }
	_, err = issuer.Parse(token)
	assert.NoError(t, err)
}

func TestTokenIssuer_RejectsForeignTokens(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	tests := []struct {
		name   string
		claims jwt.Claims
		method jwt.SigningMethod
	}{
		{
			name:   "wrong issuer",
			claims: &Claims{UserID: uuid.NewString(), RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"}},
			method: jwt.SigningMethodHS256,
		},
		{
			name:   "missing user id",
			claims: &Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer}},
			method: jwt.SigningMethodHS256,
		},
		{
			name:   "other hmac variant",
			claims: &Claims{UserID: uuid.NewString(), RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer}},
			method: jwt.SigningMethodHS512,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			signed, err := jwt.NewWithClaims(tc.method, tc.claims).SignedString([]byte("test-secret"))
			require.NoError(t, err)

			_, err = issuer.Parse(signed)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	_, err := NewTokenIssuer("test-secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
