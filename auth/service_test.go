package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/taskmanager-go/apperror"
	"github.com/user/taskmanager-go/logging"
)

func TestService_Signup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.Signup(ctx, SignupRequest{Name: " Andrew ", Email: " Andrew@Example.com", Password: "Sunrise99"})
	require.NoError(t, err)

	assert.Equal(t, "Andrew", resp.User.Name)
	assert.Equal(t, "andrew@example.com", resp.User.Email)
	assert.NotEqual(t, "Sunrise99", resp.User.Password)
	assert.NotEmpty(t, resp.Token)

	stored, err := f.store.GetUserByToken(ctx, resp.User.ID, resp.Token)
	require.NoError(t, err)
	assert.NotEqual(t, "Sunrise99", stored.Password)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, sentMail{"welcome", "andrew@example.com", "Andrew"}, f.notifier.sent[0])
}

func TestService_Signup_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, SignupRequest{Name: "A", Email: "a@x.com", Password: "Sunrise99"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  SignupRequest
	}{
		{"duplicate email", SignupRequest{Name: "B", Email: "A@X.COM", Password: "Sunrise99"}},
		{"bad email", SignupRequest{Name: "B", Email: "nope", Password: "Sunrise99"}},
		{"weak password", SignupRequest{Name: "B", Email: "b@x.com", Password: "password123"}},
		{"short password", SignupRequest{Name: "B", Email: "b@x.com", Password: "abc"}},
		{"missing name", SignupRequest{Email: "b@x.com", Password: "Sunrise99"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Signup(ctx, tc.req)
			assert.True(t, apperror.IsValidationError(err), "got %v", err)
		})
	}
	assert.Len(t, f.notifier.sent, 1)
}

func TestService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	signup, err := f.service.Signup(ctx, SignupRequest{Name: "A", Email: "a@x.com", Password: "Sunrise99"})
	require.NoError(t, err)

	login, err := f.service.Login(ctx, LoginRequest{Email: "A@x.com", Password: "Sunrise99"})
	require.NoError(t, err)
	assert.NotEqual(t, signup.Token, login.Token)

	// Both sessions are live.
	for _, token := range []string{signup.Token, login.Token} {
		_, err := f.store.GetUserByToken(ctx, signup.User.ID, token)
		assert.NoError(t, err)
	}
}

func TestService_Login_BadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	signup, err := f.service.Signup(ctx, SignupRequest{Name: "A", Email: "a@x.com", Password: "Sunrise99"})
	require.NoError(t, err)

	for _, req := range []LoginRequest{
		{Email: "a@x.com", Password: "Sunset99"},
		{Email: "nobody@x.com", Password: "Sunrise99"},
		{Email: "", Password: ""},
	} {
		_, err := f.service.Login(ctx, req)
		require.Error(t, err)
		assert.True(t, apperror.IsAuthError(err))
		assert.Equal(t, "Unable to login", apperror.FromError(err).Message)
	}

	user, err := f.store.GetUserByID(ctx, signup.User.ID)
	require.NoError(t, err)
	assert.Len(t, user.Tokens, 1, "failed logins must not issue tokens")
}

func TestService_Login_RehashesOldCost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	signup, err := f.service.Signup(ctx, SignupRequest{Name: "A", Email: "a@x.com", Password: "Sunrise99"})
	require.NoError(t, err)

	stronger := NewService(f.store, NewBcryptHasher(bcrypt.MinCost+1), f.tokens, f.notifier, logging.Discard())
	_, err = stronger.Login(ctx, LoginRequest{Email: "a@x.com", Password: "Sunrise99"})
	require.NoError(t, err)

	user, err := f.store.GetUserByID(ctx, signup.User.ID)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(user.Password))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestService_LogoutAndLogoutAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Signup(ctx, SignupRequest{Name: "A", Email: "a@x.com", Password: "Sunrise99"})
	require.NoError(t, err)
	second, err := f.service.Login(ctx, LoginRequest{Email: "a@x.com", Password: "Sunrise99"})
	require.NoError(t, err)
	third, err := f.service.Login(ctx, LoginRequest{Email: "a@x.com", Password: "Sunrise99"})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, first.User, first.Token))

	_, err = f.store.GetUserByToken(ctx, first.User.ID, first.Token)
	assert.Error(t, err)
	_, err = f.store.GetUserByToken(ctx, first.User.ID, second.Token)
	assert.NoError(t, err)

	require.NoError(t, f.service.LogoutAll(ctx, first.User))
	_, err = f.store.GetUserByToken(ctx, first.User.ID, third.Token)
	assert.Error(t, err)
}
