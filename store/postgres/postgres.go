// Package postgres implements store.Store on PostgreSQL through a pgx connection pool.
//
// Session tokens live in a TEXT[] column on the user row, so issuing and revoking a
// token are single-row updates (array_append / array_remove) and inherit the row's
// atomicity. Tasks reference their owner with ON DELETE CASCADE.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/taskmanager-go/store"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const userColumns = `id, name, email, password, tokens, avatar, created_at, updated_at`
const taskColumns = `id, description, completed, owner, created_at, updated_at`

// sortColumns maps client-facing sort fields to columns. Nothing outside this map
// ever reaches the ORDER BY clause.
var sortColumns = map[string]string{
	store.SortByCreatedAt:   "created_at",
	store.SortByUpdatedAt:   "updated_at",
	store.SortByDescription: "description",
	store.SortByCompleted:   "completed",
}

// Store is the PostgreSQL implementation of store.Store.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an open pool. The caller keeps ownership of the pool's lifetime through Close.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) CreateUser(ctx context.Context, u *store.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Tokens == nil {
		u.Tokens = []string{}
	}
	query := `INSERT INTO users (id, name, email, password, tokens)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING created_at, updated_at`
	err := s.pool.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.Password, u.Tokens).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return translate(err, "create user")
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*store.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
}

func (s *Store) GetUserByToken(ctx context.Context, id uuid.UUID, token string) (*store.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND $2 = ANY(tokens)`, id, token)
}

func (s *Store) UpdateUser(ctx context.Context, u *store.User) error {
	query := `UPDATE users SET name = $2, email = $3, password = $4, updated_at = now()
              WHERE id = $1
              RETURNING updated_at`
	err := s.pool.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.Password).Scan(&u.UpdatedAt)
	if err != nil {
		return translate(err, "update user")
	}
	return nil
}

func (s *Store) AppendToken(ctx context.Context, userID uuid.UUID, token string) error {
	return s.execUser(ctx, "append token",
		`UPDATE users SET tokens = array_append(tokens, $2), updated_at = now() WHERE id = $1`, userID, token)
}

func (s *Store) RemoveToken(ctx context.Context, userID uuid.UUID, token string) error {
	return s.execUser(ctx, "remove token",
		`UPDATE users SET tokens = array_remove(tokens, $2), updated_at = now() WHERE id = $1`, userID, token)
}

func (s *Store) ClearTokens(ctx context.Context, userID uuid.UUID) error {
	return s.execUser(ctx, "clear tokens",
		`UPDATE users SET tokens = '{}', updated_at = now() WHERE id = $1`, userID)
}

func (s *Store) SetAvatar(ctx context.Context, userID uuid.UUID, avatar []byte) error {
	return s.execUser(ctx, "set avatar",
		`UPDATE users SET avatar = $2, updated_at = now() WHERE id = $1`, userID, avatar)
}

// DeleteUser relies on ON DELETE CASCADE to remove the user's tasks in the same statement.
func (s *Store) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.execUser(ctx, "delete user", `DELETE FROM users WHERE id = $1`, userID)
}

func (s *Store) CreateTask(ctx context.Context, t *store.Task) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	query := `INSERT INTO tasks (id, description, completed, owner)
              VALUES ($1, $2, $3, $4)
              RETURNING created_at, updated_at`
	err := s.pool.QueryRow(ctx, query, t.ID, t.Description, t.Completed, t.Owner).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return translate(err, "create task")
	}
	return nil
}

func (s *Store) ListTasks(ctx context.Context, q store.TaskQuery) ([]store.Task, error) {
	query, args := buildListQuery(q)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "list tasks")
	}
	defer rows.Close()

	tasks := []store.Task{}
	for rows.Next() {
		var t store.Task
		if err := rows.Scan(&t.ID, &t.Description, &t.Completed, &t.Owner, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, translate(err, "scan task")
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list tasks")
	}
	return tasks, nil
}

func (s *Store) GetTask(ctx context.Context, id, owner uuid.UUID) (*store.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND owner = $2`
	return s.getTask(ctx, "get task", query, id, owner)
}

func (s *Store) UpdateTask(ctx context.Context, t *store.Task) error {
	query := `UPDATE tasks SET description = $3, completed = $4, updated_at = now()
              WHERE id = $1 AND owner = $2
              RETURNING created_at, updated_at`
	err := s.pool.QueryRow(ctx, query, t.ID, t.Owner, t.Description, t.Completed).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return translate(err, "update task")
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id, owner uuid.UUID) (*store.Task, error) {
	query := `DELETE FROM tasks WHERE id = $1 AND owner = $2 RETURNING ` + taskColumns
	return s.getTask(ctx, "delete task", query, id, owner)
}

// buildListQuery renders an owner-scoped listing. Values always travel as parameters;
// the ORDER BY column comes from sortColumns only.
func buildListQuery(q store.TaskQuery) (string, []any) {
	var sb strings.Builder
	args := []any{q.Owner}

	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE owner = $1`)
	if q.Completed != nil {
		args = append(args, *q.Completed)
		fmt.Fprintf(&sb, ` AND completed = $%d`, len(args))
	}

	if col, ok := sortColumns[q.SortField]; ok {
		dir := "ASC"
		if q.SortDesc {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, ` ORDER BY %s %s, created_at ASC, id ASC`, col, dir)
	} else {
		sb.WriteString(` ORDER BY created_at ASC, id ASC`)
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	if q.Skip > 0 {
		args = append(args, q.Skip)
		fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))
	}
	return sb.String(), args
}

func (s *Store) getUser(ctx context.Context, query string, args ...any) (*store.User, error) {
	var u store.User
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Tokens, &u.Avatar, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err, "get user")
	}
	return &u, nil
}

func (s *Store) getTask(ctx context.Context, op, query string, args ...any) (*store.Task, error) {
	var t store.Task
	err := s.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.Description, &t.Completed, &t.Owner, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, translate(err, op)
	}
	return &t, nil
}

func (s *Store) execUser(ctx context.Context, op, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return translate(err, op)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// translate maps driver errors onto the store sentinels and wraps the rest.
func translate(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "email"):
			return store.ErrDuplicateEmail
		case pgErr.Code == pgForeignKeyViolation:
			return store.ErrNotFound
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ store.Store = (*Store)(nil)
