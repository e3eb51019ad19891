// Package server assembles the HTTP surface of the task manager: the chi router with its
// middleware stack, the route table, the Swagger UI and the health check, plus the
// http.Server lifecycle with graceful shutdown.
package server

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/taskmanager-go/apperror"
	"github.com/user/taskmanager-go/auth"
	"github.com/user/taskmanager-go/config"
	_ "github.com/user/taskmanager-go/docs" // registers the Swagger document
	"github.com/user/taskmanager-go/logging"
	"github.com/user/taskmanager-go/store"
	"github.com/user/taskmanager-go/tasks"
	"github.com/user/taskmanager-go/users"
)

// requestTimeout bounds the handling of a single request.
const requestTimeout = 60 * time.Second

// Dependencies are the collaborators the router dispatches to.
type Dependencies struct {
	Config *config.ServerConfig
	Store  store.Store
	Tokens *auth.TokenIssuer
	Log    logging.Logger

	Auth  *auth.Handlers
	Users *users.UserHandlers
	Tasks *tasks.TaskHandlers
}

// NewRouter builds the application's http.Handler.
func NewRouter(d Dependencies) http.Handler {
	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(contextLogger(d.Log))
	r.Use(recoverJSON)
	r.Use(middleware.Timeout(requestTimeout))

	origins := d.Config.AllowedOrigins
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		// Credentials can not be combined with a wildcard origin.
		AllowCredentials: !allowsAnyOrigin(origins),
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/healthz", healthz(d.Store))

	guard := auth.Guard(d.Tokens, d.Store)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", d.Auth.HandleSignup())
		r.Post("/login", d.Auth.HandleLogin())
		r.Get("/{id}/avatar", d.Users.HandleGetAvatar())

		r.Group(func(r chi.Router) {
			r.Use(guard)

			r.Post("/logout", d.Auth.HandleLogout())
			r.Post("/logout/all", d.Auth.HandleLogoutAll())

			r.Get("/me", d.Users.HandleGetProfile())
			r.Patch("/me", d.Users.HandleUpdateProfile())
			r.Delete("/me", d.Users.HandleDeleteAccount())
			r.Post("/me/avatar", d.Users.HandleUploadAvatar())
			r.Delete("/me/avatar", d.Users.HandleDeleteAvatar())
		})
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(guard)

		r.Post("/", d.Tasks.HandleCreateTask())
		r.Get("/", d.Tasks.HandleListTasks())
		r.Get("/{id}", d.Tasks.HandleGetTask())
		r.Patch("/{id}", d.Tasks.HandleUpdateTask())
		r.Delete("/{id}", d.Tasks.HandleDeleteTask())
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		auth.WriteError(w, r, apperror.NewNotFoundError("Not Found", nil))
	})

	return r
}

// contextLogger puts a logger tagged with the request ID on every request context,
// where logging.FromContext finds it.
func contextLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.With("request_id", middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r.WithContext(logging.NewContext(r.Context(), reqLog)))
		})
	}
}

// recoverJSON turns a panic in a handler into a 500 with the usual JSON error body.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			ctx := r.Context()
			logging.FromContext(ctx).Error(ctx, "panic recovered", "panic", rvr, "stack", string(debug.Stack()))
			auth.WriteError(w, r, apperror.NewInternalError("internal server error", nil))
		}()
		next.ServeHTTP(w, r)
	})
}

// healthz godoc
// @Summary Health check
// @Description Reports whether the store is reachable.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "ok"
// @Failure 503 {object} apperror.ErrorResponse "Store unavailable"
// @Router /healthz [get]
func healthz(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			auth.WriteError(w, r, apperror.NewUnavailableError("store unavailable", err))
			return
		}
		auth.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
