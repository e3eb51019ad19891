package auth

import (
	"context"

	"github.com/user/taskmanager-go/store"
)

// contextKey is a private type so no other package can collide with these keys.
type contextKey string

const (
	userContextKey  contextKey = "auth_user"
	tokenContextKey contextKey = "auth_token"
)

// NewContextWithSession stores the authenticated user and the exact token it presented.
func NewContextWithSession(ctx context.Context, user *store.User, token string) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, tokenContextKey, token)
}

// UserFromContext returns the user attached by Guard.
func UserFromContext(ctx context.Context) (*store.User, bool) {
	user, ok := ctx.Value(userContextKey).(*store.User)
	return user, ok && user != nil
}

// TokenFromContext returns the token the current request authenticated with.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}
