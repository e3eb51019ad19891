// Package memory provides an in-memory store.Store for development and tests.
// It mirrors the postgres implementation's semantics, including owner scoping,
// unique emails and cascade deletion of tasks.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/user/taskmanager-go/store"
)

// Store is an in-memory implementation of the store.Store interface.
type Store struct {
	mu sync.RWMutex

	users map[uuid.UUID]*store.User
	// tasks keeps insertion order, which is the default listing order.
	tasks []*store.Task

	now func() time.Time
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		users: make(map[uuid.UUID]*store.User),
		now:   time.Now,
	}
}

// NewWithClock creates a store that stamps records using now instead of time.Now.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

// Close is a no-op for the memory store.
func (s *Store) Close() {}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// CreateUser saves a new user.
func (s *Store) CreateUser(ctx context.Context, u *store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(u.Email, uuid.Nil) {
		return store.ErrDuplicateEmail
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Tokens == nil {
		u.Tokens = []string{}
	}
	s.users[u.ID] = copyUser(u)
	return nil
}

// GetUserByID retrieves a user.
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyUser(u), nil
}

// GetUserByEmail retrieves a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

// GetUserByToken retrieves a user whose token list still contains token.
func (s *Store) GetUserByToken(ctx context.Context, id uuid.UUID, token string) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok || !u.HasToken(token) {
		return nil, store.ErrNotFound
	}
	return copyUser(u), nil
}

// UpdateUser saves name, email and password.
func (s *Store) UpdateUser(ctx context.Context, u *store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	if s.emailTaken(u.Email, u.ID) {
		return store.ErrDuplicateEmail
	}
	existing.Name = u.Name
	existing.Email = u.Email
	existing.Password = u.Password
	existing.UpdatedAt = s.now()
	u.UpdatedAt = existing.UpdatedAt
	return nil
}

// AppendToken adds a session token.
func (s *Store) AppendToken(ctx context.Context, userID uuid.UUID, token string) error {
	return s.mutateUser(userID, func(u *store.User) {
		u.Tokens = append(u.Tokens, token)
	})
}

// RemoveToken removes a single session token.
func (s *Store) RemoveToken(ctx context.Context, userID uuid.UUID, token string) error {
	return s.mutateUser(userID, func(u *store.User) {
		kept := u.Tokens[:0]
		for _, t := range u.Tokens {
			if t != token {
				kept = append(kept, t)
			}
		}
		u.Tokens = kept
	})
}

// ClearTokens removes every session token.
func (s *Store) ClearTokens(ctx context.Context, userID uuid.UUID) error {
	return s.mutateUser(userID, func(u *store.User) {
		u.Tokens = []string{}
	})
}

// SetAvatar replaces the avatar.
func (s *Store) SetAvatar(ctx context.Context, userID uuid.UUID, avatar []byte) error {
	return s.mutateUser(userID, func(u *store.User) {
		if avatar == nil {
			u.Avatar = nil
			return
		}
		u.Avatar = append([]byte(nil), avatar...)
	})
}

// DeleteUser removes the user and its tasks.
func (s *Store) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, userID)

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Owner != userID {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return nil
}

// CreateTask saves a new task. A non-zero CreatedAt is kept as given.
func (s *Store) CreateTask(ctx context.Context, t *store.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[t.Owner]; !ok {
		return store.ErrNotFound
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	cp := *t
	s.tasks = append(s.tasks, &cp)
	return nil
}

// ListTasks applies the owner filter, optional completed filter, sort and pagination.
func (s *Store) ListTasks(ctx context.Context, q store.TaskQuery) ([]store.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.Task{}
	for _, t := range s.tasks {
		if t.Owner != q.Owner {
			continue
		}
		if q.Completed != nil && t.Completed != *q.Completed {
			continue
		}
		out = append(out, *t)
	}

	if less := lessFunc(q.SortField); less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			if q.SortDesc {
				return less(out[j], out[i])
			}
			return less(out[i], out[j])
		})
	}

	if q.Skip > 0 {
		if q.Skip >= len(out) {
			return []store.Task{}, nil
		}
		out = out[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

// GetTask retrieves a task owned by owner.
func (s *Store) GetTask(ctx context.Context, id, owner uuid.UUID) (*store.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, t := s.findTask(id, owner)
	if t == nil {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// UpdateTask saves description and completed.
func (s *Store) UpdateTask(ctx context.Context, t *store.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existing := s.findTask(t.ID, t.Owner)
	if existing == nil {
		return store.ErrNotFound
	}
	existing.Description = t.Description
	existing.Completed = t.Completed
	existing.UpdatedAt = s.now()
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = existing.UpdatedAt
	return nil
}

// DeleteTask removes a task owned by owner.
func (s *Store) DeleteTask(ctx context.Context, id, owner uuid.UUID) (*store.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, t := s.findTask(id, owner)
	if t == nil {
		return nil, store.ErrNotFound
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	return t, nil
}

func (s *Store) findTask(id, owner uuid.UUID) (int, *store.Task) {
	for i, t := range s.tasks {
		if t.ID == id && t.Owner == owner {
			return i, t
		}
	}
	return -1, nil
}

func (s *Store) mutateUser(id uuid.UUID, fn func(u *store.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = s.now()
	return nil
}

// emailTaken must be called with the lock held.
func (s *Store) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range s.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func copyUser(u *store.User) *store.User {
	cp := *u
	cp.Tokens = append([]string{}, u.Tokens...)
	if u.Avatar != nil {
		cp.Avatar = append([]byte(nil), u.Avatar...)
	}
	return &cp
}

func lessFunc(field string) func(a, b store.Task) bool {
	switch field {
	case store.SortByCreatedAt:
		return func(a, b store.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case store.SortByUpdatedAt:
		return func(a, b store.Task) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case store.SortByDescription:
		return func(a, b store.Task) bool { return a.Description < b.Description }
	case store.SortByCompleted:
		return func(a, b store.Task) bool { return !a.Completed && b.Completed }
	default:
		return nil
	}
}

var _ store.Store = (*Store)(nil)
