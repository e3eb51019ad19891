package store

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account.
// Password holds the bcrypt hash only; Tokens is the ordered list of live session tokens,
// one per concurrent login, each individually revocable.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Tokens    []string  `json:"-"`
	Avatar    []byte    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasToken reports whether token is one of the user's live sessions.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Task is a single to-do item. Owner is always set and never changes after creation.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Owner       uuid.UUID `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Sortable task fields, named as clients send them in ?sortBy=field:direction.
const (
	SortByCreatedAt   = "createdAt"
	SortByUpdatedAt   = "updatedAt"
	SortByDescription = "description"
	SortByCompleted   = "completed"
)

// SortableTaskFields is the set of fields a TaskQuery may sort on.
var SortableTaskFields = map[string]bool{
	SortByCreatedAt:   true,
	SortByUpdatedAt:   true,
	SortByDescription: true,
	SortByCompleted:   true,
}

// TaskQuery is an owner-scoped listing request.
// Owner is mandatory. A nil Completed means no filter, an empty SortField means creation order,
// Limit <= 0 means unbounded and Skip <= 0 means start at the beginning.
type TaskQuery struct {
	Owner     uuid.UUID
	Completed *bool
	SortField string
	SortDesc  bool
	Limit     int
	Skip      int
}
