// Package auth holds everything about identity: the credential operations behind signup,
// login and logout, the signed session tokens, password hashing, and the Guard middleware
// that turns an `Authorization: Bearer <token>` header into an authenticated user on the
// request context.
//
// A session is a token that is both correctly signed and still listed on its user's record.
// Removing it from the record revokes that one session and leaves the user's other sessions alone.
package auth

import "context"

// Notifier receives account lifecycle events. Implementations must not block the caller
// and must not report delivery failures back: a lost email never fails a request.
type Notifier interface {
	SendWelcome(ctx context.Context, email, name string)
	SendCancellation(ctx context.Context, email, name string)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) SendWelcome(ctx context.Context, email, name string)      {}
func (NopNotifier) SendCancellation(ctx context.Context, email, name string) {}
