// Package store defines the persistence contract of the task manager: the User and Task
// entities, the owner-scoped TaskQuery, and the Store interface implemented by the
// postgres and memory sub-packages.
//
// Every task method takes the owner explicitly. Implementations must treat a task that
// exists but belongs to another owner exactly like a missing one and return ErrNotFound.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store is the persistence layer. Each method is a single-record operation, so
// consistency relies on the backend's per-record atomicity.
type Store interface {
	// Users

	// CreateUser inserts u, filling in ID and timestamps.
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	// GetUserByEmail looks up by normalized (lower-case) email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// GetUserByToken returns the user only if token is still in its token list.
	GetUserByToken(ctx context.Context, id uuid.UUID, token string) (*User, error)
	// UpdateUser persists Name, Email and Password and refreshes UpdatedAt on u.
	UpdateUser(ctx context.Context, u *User) error
	// AppendToken adds a session token without touching existing ones.
	AppendToken(ctx context.Context, userID uuid.UUID, token string) error
	// RemoveToken revokes a single session token.
	RemoveToken(ctx context.Context, userID uuid.UUID, token string) error
	// ClearTokens revokes every session of the user.
	ClearTokens(ctx context.Context, userID uuid.UUID) error
	// SetAvatar stores the avatar image, nil clears it.
	SetAvatar(ctx context.Context, userID uuid.UUID, avatar []byte) error
	// DeleteUser removes the user and every task it owns.
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// Tasks

	// CreateTask inserts t, filling in ID and timestamps.
	CreateTask(ctx context.Context, t *Task) error
	ListTasks(ctx context.Context, q TaskQuery) ([]Task, error)
	GetTask(ctx context.Context, id, owner uuid.UUID) (*Task, error)
	// UpdateTask persists Description and Completed for t.ID scoped to t.Owner and refreshes UpdatedAt.
	UpdateTask(ctx context.Context, t *Task) error
	// DeleteTask removes the task and returns it as it was.
	DeleteTask(ctx context.Context, id, owner uuid.UUID) (*Task, error)

	Ping(ctx context.Context) error
	Close()
}
