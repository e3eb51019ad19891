package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(f *fixture) http.Handler {
	h := NewHandlers(f.service)
	r := chi.NewRouter()
	r.Post("/users", h.HandleSignup())
	r.Post("/users/login", h.HandleLogin())
	r.Group(func(r chi.Router) {
		r.Use(Guard(f.tokens, f.store))
		r.Post("/users/logout", h.HandleLogout())
		r.Post("/users/logout/all", h.HandleLogoutAll())
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleSignup(t *testing.T) {
	router := newAuthRouter(newFixture(t))

	rec := do(t, router, http.MethodPost, "/users", "", `{"name":"A","email":"a@x.com","password":"Sunrise99"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	raw := rec.Body.String()
	var body struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	assert.Equal(t, "a@x.com", body.User["email"])
	assert.Equal(t, "A", body.User["name"])
	assert.NotEmpty(t, body.User["id"])
	assert.NotEmpty(t, body.Token)
	assert.NotContains(t, raw, "Sunrise99")
	assert.NotContains(t, raw, `"password"`)
	assert.NotContains(t, raw, `"tokens"`)

	rec = do(t, router, http.MethodPost, "/users", "", `{"name":"B","email":"a@x.com","password":"Sunrise99"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"email is already in use"}`, rec.Body.String())
}

func TestHandleLogin(t *testing.T) {
	router := newAuthRouter(newFixture(t))
	require.Equal(t, http.StatusCreated,
		do(t, router, http.MethodPost, "/users", "", `{"name":"A","email":"a@x.com","password":"Sunrise99"}`).Code)

	rec := do(t, router, http.MethodPost, "/users/login", "", `{"email":"a@x.com","password":"wrong-one"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")

	rec = do(t, router, http.MethodPost, "/users/login", "", `{"email":"a@x.com","password":"Sunrise99"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)
}

func TestHandleLogout(t *testing.T) {
	router := newAuthRouter(newFixture(t))

	var first, second AuthResponse
	rec := do(t, router, http.MethodPost, "/users", "", `{"name":"A","email":"a@x.com","password":"Sunrise99"}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	rec = do(t, router, http.MethodPost, "/users/login", "", `{"email":"a@x.com","password":"Sunrise99"}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/users/logout", first.Token, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodPost, "/users/logout", first.Token, "").Code)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/users/logout/all", second.Token, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodPost, "/users/logout/all", second.Token, "").Code)
}
