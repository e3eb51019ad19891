package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/taskmanager-go/auth"
	"github.com/user/taskmanager-go/logging"
	"github.com/user/taskmanager-go/store"
	"github.com/user/taskmanager-go/store/memory"
)

type env struct {
	store  *memory.Store
	auth   *auth.Service
	router http.Handler
}

// stepClock advances one minute on every call so creation order is unambiguous.
func stepClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := memory.NewWithClock(stepClock())
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	authService := auth.NewService(st, auth.NewBcryptHasher(bcrypt.MinCost), tokens, nil, logging.Discard())
	h := NewTaskHandlers(NewTaskService(st, logging.Discard()))

	r := chi.NewRouter()
	r.Route("/tasks", func(r chi.Router) {
		r.Use(auth.Guard(tokens, st))
		r.Post("/", h.HandleCreateTask())
		r.Get("/", h.HandleListTasks())
		r.Get("/{id}", h.HandleGetTask())
		r.Patch("/{id}", h.HandleUpdateTask())
		r.Delete("/{id}", h.HandleDeleteTask())
	})
	return &env{store: st, auth: authService, router: r}
}

func (e *env) signup(t *testing.T, email string) string {
	t.Helper()
	resp, err := e.auth.Signup(context.Background(), auth.SignupRequest{Name: "T", Email: email, Password: "Sunrise99"})
	require.NoError(t, err)
	return resp.Token
}

func (e *env) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *env) create(t *testing.T, token, body string) store.Task {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/tasks", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var task store.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func (e *env) list(t *testing.T, token, query string) []store.Task {
	t.Helper()
	rec := e.do(t, http.MethodGet, "/tasks"+query, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []store.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	return tasks
}

func descriptions(tasks []store.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Description
	}
	return out
}

func TestCreateTask(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@x.com")
	other := uuid.NewString()

	task := e.create(t, token, `{"description":"  Buy milk  ","owner":"`+other+`"}`)
	assert.Equal(t, "Buy milk", task.Description)
	assert.False(t, task.Completed)
	assert.NotEqual(t, other, task.Owner.String())
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.False(t, task.CreatedAt.IsZero())

	tests := []struct {
		name string
		body string
	}{
		{"missing description", `{"completed":true}`},
		{"blank description", `{"description":"   "}`},
		{"completed as string", `{"description":"x","completed":"true"}`},
		{"no body", ``},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPost, "/tasks", token, tc.body).Code)
		})
	}
}

func TestCreateTask_RequiresAuth(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/tasks", "", `{"description":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Please authenticate."}`, rec.Body.String())
}

func TestListTasks(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@x.com")
	other := e.signup(t, "b@x.com")

	e.create(t, token, `{"description":"b first"}`)
	e.create(t, token, `{"description":"a second","completed":true}`)
	e.create(t, token, `{"description":"c third","completed":true}`)
	e.create(t, other, `{"description":"not mine"}`)

	assert.Equal(t, []string{"b first", "a second", "c third"}, descriptions(e.list(t, token, "")))
	assert.Equal(t, []string{"a second", "c third"}, descriptions(e.list(t, token, "?completed=true")))
	assert.Equal(t, []string{"b first"}, descriptions(e.list(t, token, "?completed=false")))
	assert.Equal(t, []string{"c third", "a second", "b first"}, descriptions(e.list(t, token, "?sortBy=createdAt:desc")))
	assert.Equal(t, []string{"a second", "b first", "c third"}, descriptions(e.list(t, token, "?sortBy=description")))
	assert.Len(t, e.list(t, token, "?limit=1"), 1)
	assert.Equal(t, []string{"a second"}, descriptions(e.list(t, token, "?limit=1&skip=1")))
	assert.Equal(t, []string{"c third"}, descriptions(e.list(t, token, "?completed=true&sortBy=createdAt:desc&limit=1")))
	assert.Len(t, e.list(t, token, "?limit=nope&skip=nope"), 3)

	rec := e.do(t, http.MethodGet, "/tasks?skip=10", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetUpdateDeleteTask(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@x.com")
	task := e.create(t, token, `{"description":"write tests"}`)
	path := "/tasks/" + task.ID.String()

	rec := e.do(t, http.MethodGet, path, token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPatch, path, token, `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated store.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, "write tests", updated.Description)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))

	rec = e.do(t, http.MethodDelete, path, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted store.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleted))
	assert.Equal(t, task.ID, deleted.ID)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, path, token, "").Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodDelete, path, token, "").Code)
}

func TestUpdateTask_AllowList(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@x.com")
	task := e.create(t, token, `{"description":"original"}`)
	path := "/tasks/" + task.ID.String()

	tests := []struct {
		name string
		body string
	}{
		{"owner", `{"owner":"` + uuid.NewString() + `"}`},
		{"mixed", `{"description":"changed","_id":"x"}`},
		{"completed as string", `{"completed":"true"}`},
		{"blank description", `{"description":" "}`},
		{"null description", `{"description":null}`},
		{"null completed", `{"completed":null}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPatch, path, token, tc.body).Code)
		})
	}

	rec := e.do(t, http.MethodGet, path, token, "")
	var current store.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	assert.Equal(t, "original", current.Description)
	assert.Equal(t, task.UpdatedAt, current.UpdatedAt)
}

func TestOtherUsersTasksAreNotFound(t *testing.T) {
	e := newEnv(t)
	owner := e.signup(t, "a@x.com")
	intruder := e.signup(t, "b@x.com")
	task := e.create(t, owner, `{"description":"private"}`)
	path := "/tasks/" + task.ID.String()

	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPatch, `{"completed":true}`},
		{http.MethodDelete, ""},
	} {
		rec := e.do(t, tc.method, path, intruder, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method)
	}

	rec := e.do(t, http.MethodGet, path, owner, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var current store.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	assert.False(t, current.Completed)
}

func TestMalformedTaskIDIsNotFound(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@x.com")
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/tasks/123", token, "").Code)
}
