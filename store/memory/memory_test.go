package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/taskmanager-go/store"
)

// stepClock advances one minute on every call.
func stepClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newUser(t *testing.T, s *Store, email string) *store.User {
	t.Helper()
	u := &store.User{Name: "n", Email: email, Password: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := New()
	newUser(t, s, "a@x.com")

	err := s.CreateUser(context.Background(), &store.User{Email: "A@x.com"})
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestTokens_AppendRemoveClear(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := newUser(t, s, "a@x.com")

	require.NoError(t, s.AppendToken(ctx, u.ID, "t1"))
	require.NoError(t, s.AppendToken(ctx, u.ID, "t2"))

	got, err := s.GetUserByToken(ctx, u.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, got.Tokens)

	require.NoError(t, s.RemoveToken(ctx, u.ID, "t1"))
	_, err = s.GetUserByToken(ctx, u.ID, "t1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetUserByToken(ctx, u.ID, "t2")
	assert.NoError(t, err)

	require.NoError(t, s.ClearTokens(ctx, u.ID))
	_, err = s.GetUserByToken(ctx, u.ID, "t2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReturnedUsersAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := newUser(t, s, "a@x.com")
	require.NoError(t, s.AppendToken(ctx, u.ID, "t1"))

	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	got.Tokens[0] = "tampered"

	again, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, again.Tokens)
}

func TestDeleteUser_CascadesOnlyOwnTasks(t *testing.T) {
	ctx := context.Background()
	s := New()
	one := newUser(t, s, "one@x.com")
	two := newUser(t, s, "two@x.com")

	require.NoError(t, s.CreateTask(ctx, &store.Task{Description: "a", Owner: one.ID}))
	require.NoError(t, s.CreateTask(ctx, &store.Task{Description: "b", Owner: two.ID}))

	require.NoError(t, s.DeleteUser(ctx, one.ID))

	left, err := s.ListTasks(ctx, store.TaskQuery{Owner: one.ID})
	require.NoError(t, err)
	assert.Empty(t, left)

	others, err := s.ListTasks(ctx, store.TaskQuery{Owner: two.ID})
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestTaskOwnerScoping(t *testing.T) {
	ctx := context.Background()
	s := New()
	one := newUser(t, s, "one@x.com")
	two := newUser(t, s, "two@x.com")

	task := &store.Task{Description: "mine", Owner: one.ID}
	require.NoError(t, s.CreateTask(ctx, task))

	_, err := s.GetTask(ctx, task.ID, two.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateTask(ctx, &store.Task{ID: task.ID, Owner: two.ID, Description: "stolen"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.DeleteTask(ctx, task.ID, two.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.GetTask(ctx, task.ID, one.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Description)
}

func TestListTasks_FilterSortPaginate(t *testing.T) {
	ctx := context.Background()
	s := NewWithClock(stepClock())
	u := newUser(t, s, "a@x.com")

	for _, tc := range []struct {
		desc string
		done bool
	}{{"b", true}, {"c", false}, {"a", true}} {
		require.NoError(t, s.CreateTask(ctx, &store.Task{Description: tc.desc, Completed: tc.done, Owner: u.ID}))
	}

	done := true
	got, err := s.ListTasks(ctx, store.TaskQuery{Owner: u.ID, Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, descriptions(got))

	got, err = s.ListTasks(ctx, store.TaskQuery{Owner: u.ID, SortField: store.SortByDescription})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, descriptions(got))

	got, err = s.ListTasks(ctx, store.TaskQuery{Owner: u.ID, SortField: store.SortByCreatedAt, SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, descriptions(got))

	got, err = s.ListTasks(ctx, store.TaskQuery{Owner: u.ID, Limit: 1, Skip: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, descriptions(got))

	got, err = s.ListTasks(ctx, store.TaskQuery{Owner: u.ID, Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.ListTasks(ctx, store.TaskQuery{Owner: uuid.New()})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUpdateTask_RefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewWithClock(stepClock())
	u := newUser(t, s, "a@x.com")
	task := &store.Task{Description: "a", Owner: u.ID}
	require.NoError(t, s.CreateTask(ctx, task))

	upd := &store.Task{ID: task.ID, Owner: u.ID, Description: "a2", Completed: true}
	require.NoError(t, s.UpdateTask(ctx, upd))

	assert.True(t, upd.UpdatedAt.After(task.CreatedAt))
	assert.Equal(t, task.CreatedAt, upd.CreatedAt)
}

func descriptions(tasks []store.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Description
	}
	return out
}
