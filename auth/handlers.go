package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/taskmanager-go/apperror"
	"github.com/user/taskmanager-go/logging"
)

// Handlers exposes the credential operations over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleSignup godoc
// @Summary Sign up
// @Description Creates an account and returns it with a first session token.
// @Tags Users
// @Accept json
// @Produce json
// @Param signupBody body auth.SignupRequest true "Name, email and password"
// @Success 201 {object} auth.AuthResponse "User created"
// @Failure 400 {object} apperror.ErrorResponse "Invalid email, weak password or email already in use"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users [post]
func (h *Handlers) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := DecodeJSON(r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.Signup(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusCreated, resp)
	}
}

// HandleLogin godoc
// @Summary Log in
// @Description Checks credentials and opens an additional session. Existing sessions stay valid.
// @Tags Users
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Email and password"
// @Success 200 {object} auth.AuthResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Unable to login"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeJSON(r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleLogout godoc
// @Summary Log out
// @Description Revokes the token used for this request. Other sessions stay valid.
// @Tags Users
// @Security BearerAuth
// @Success 200 "Logged out"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/logout [post]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		token, tokOK := TokenFromContext(r.Context())
		if !ok || !tokOK {
			WriteError(w, r, apperror.NewUnauthorizedError(unauthenticatedMessage, nil))
			return
		}

		if err := h.service.Logout(r.Context(), user, token); err != nil {
			WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// HandleLogoutAll godoc
// @Summary Log out everywhere
// @Description Revokes every session of the authenticated user.
// @Tags Users
// @Security BearerAuth
// @Success 200 "Logged out of all sessions"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/logout/all [post]
func (h *Handlers) HandleLogoutAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewUnauthorizedError(unauthenticatedMessage, nil))
			return
		}

		if err := h.service.LogoutAll(r.Context(), user); err != nil {
			WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// WriteJSON serializes data to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes any error as the standard JSON error body with its mapped status.
// Errors that are not *apperror.AppError become 500s. Server-side failures are logged
// with their underlying cause, which is never sent to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.FromError(err)

	if appErr.StatusCode() >= http.StatusInternalServerError {
		ctx := r.Context()
		logging.FromContext(ctx).Error(ctx, "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", appErr.StatusCode(),
			"error", appErr.Error(),
		)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
