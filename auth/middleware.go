package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/user/taskmanager-go/apperror"
	"github.com/user/taskmanager-go/logging"
	"github.com/user/taskmanager-go/store"
)

// SessionLookup finds a user by ID only if token is still one of its sessions.
type SessionLookup interface {
	GetUserByToken(ctx context.Context, id uuid.UUID, token string) (*store.User, error)
}

const unauthenticatedMessage = "Please authenticate."

// Guard returns middleware that only lets authenticated requests through.
//
// It verifies the bearer token's signature, extracts the user ID, loads that user and checks
// the token is still on the user's token list. On success the user and token are put on the
// request context. Every failure ends the request with 401 before the route runs.
func Guard(tokens *TokenIssuer, sessions SessionLookup) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				WriteError(w, r, apperror.NewUnauthorizedError(unauthenticatedMessage, nil))
				return
			}

			userID, err := tokens.Parse(tokenString)
			if err != nil {
				WriteError(w, r, apperror.NewUnauthorizedError(unauthenticatedMessage, err))
				return
			}

			user, err := sessions.GetUserByToken(ctx, userID, tokenString)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					logging.FromContext(ctx).Error(ctx, "session lookup failed", "user_id", userID, "error", err)
				}
				WriteError(w, r, apperror.NewUnauthorizedError(unauthenticatedMessage, err))
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithSession(ctx, user, tokenString)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
