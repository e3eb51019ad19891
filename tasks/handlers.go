package tasks

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/user/taskmanager-go/apperror"
	"github.com/user/taskmanager-go/auth"
	"github.com/user/taskmanager-go/store"
)

// TaskHandlers provides the HTTP handlers of the task routes.
type TaskHandlers struct {
	service *TaskService
}

// NewTaskHandlers creates new TaskHandlers.
func NewTaskHandlers(service *TaskService) *TaskHandlers {
	return &TaskHandlers{service: service}
}

// HandleCreateTask godoc
// @Summary Create a task
// @Description Creates a task owned by the authenticated user.
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body CreateTaskRequest true "Task to create"
// @Success 201 {object} store.Task "Created task"
// @Failure 400 {object} apperror.ErrorResponse "Missing description or wrong field type"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /tasks [post]
func (h *TaskHandlers) HandleCreateTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewUnauthorizedError("Please authenticate.", nil))
			return
		}

		var req CreateTaskRequest
		if err := auth.DecodeJSON(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		task, err := h.service.Create(r.Context(), user.ID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, task)
	}
}

// HandleListTasks godoc
// @Summary List tasks
// @Description Lists the authenticated user's tasks.
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param completed query string false "true for completed tasks, any other value for incomplete ones"
// @Param sortBy query string false "field:direction, e.g. createdAt:desc (createdAt, updatedAt, description, completed)"
// @Param limit query int false "Maximum number of tasks"
// @Param skip query int false "Number of tasks to skip"
// @Success 200 {array} store.Task "Tasks"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /tasks [get]
func (h *TaskHandlers) HandleListTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewUnauthorizedError("Please authenticate.", nil))
			return
		}

		tasks, err := h.service.List(r.Context(), BuildQuery(user.ID, r.URL.Query()))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if tasks == nil {
			tasks = []store.Task{}
		}
		auth.WriteJSON(w, http.StatusOK, tasks)
	}
}

// HandleGetTask godoc
// @Summary Get a task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} store.Task "Task"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 404 {object} apperror.ErrorResponse "Task not found"
// @Router /tasks/{id} [get]
func (h *TaskHandlers) HandleGetTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, id, ok := h.target(w, r)
		if !ok {
			return
		}

		task, err := h.service.Get(r.Context(), id, user)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, task)
	}
}

// HandleUpdateTask godoc
// @Summary Update a task
// @Description Updates description and/or completed. Any other field fails the whole request
// @Description and the task is left untouched.
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param task body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} store.Task "Updated task"
// @Failure 400 {object} apperror.ErrorResponse "Invalid updates"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 404 {object} apperror.ErrorResponse "Task not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /tasks/{id} [patch]
func (h *TaskHandlers) HandleUpdateTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, id, ok := h.target(w, r)
		if !ok {
			return
		}

		var req UpdateTaskRequest
		if err := auth.DecodePatch(r, &req, updatableFields...); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		task, err := h.service.Update(r.Context(), id, user, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, task)
	}
}

// HandleDeleteTask godoc
// @Summary Delete a task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} store.Task "Deleted task"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 404 {object} apperror.ErrorResponse "Task not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /tasks/{id} [delete]
func (h *TaskHandlers) HandleDeleteTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, id, ok := h.target(w, r)
		if !ok {
			return
		}

		task, err := h.service.Delete(r.Context(), id, user)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, task)
	}
}

// target resolves the authenticated owner and the {id} path parameter, writing
// the error response itself when either is unusable. A malformed ID is a 404.
func (h *TaskHandlers) target(w http.ResponseWriter, r *http.Request) (owner, id uuid.UUID, ok bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewUnauthorizedError("Please authenticate.", nil))
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewNotFoundError(notFoundMessage, err))
		return uuid.Nil, uuid.Nil, false
	}
	return user.ID, id, true
}
