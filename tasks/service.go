// Package tasks implements the task routes. Every operation is scoped to the
// authenticated owner: a task that belongs to somebody else is reported exactly
// like one that does not exist.
package tasks

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/user/taskmanager-go/apperror"
	"github.com/user/taskmanager-go/auth"
	"github.com/user/taskmanager-go/logging"
	"github.com/user/taskmanager-go/store"
)

const notFoundMessage = "task not found"

// TaskService provides the task CRUD operations.
type TaskService struct {
	store store.Store
	log   logging.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(st store.Store, log logging.Logger) *TaskService {
	return &TaskService{store: st, log: log}
}

// Create stores a new task for owner.
func (s *TaskService) Create(ctx context.Context, owner uuid.UUID, req CreateTaskRequest) (*store.Task, error) {
	req.Description = strings.TrimSpace(req.Description)
	if err := auth.ValidateStruct(req); err != nil {
		return nil, err
	}

	task := &store.Task{
		Description: req.Description,
		Completed:   req.Completed,
		Owner:       owner,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, apperror.NewDatabaseError("failed to create task", err)
	}

	s.log.Debug(ctx, "task created", "task_id", task.ID, "owner", owner)
	return task, nil
}

// List returns the tasks selected by q.
func (s *TaskService) List(ctx context.Context, q store.TaskQuery) ([]store.Task, error) {
	tasks, err := s.store.ListTasks(ctx, q)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list tasks", err)
	}
	return tasks, nil
}

// Get returns one task of owner.
func (s *TaskService) Get(ctx context.Context, id, owner uuid.UUID) (*store.Task, error) {
	task, err := s.store.GetTask(ctx, id, owner)
	if err != nil {
		return nil, translate(err, "failed to get task")
	}
	return task, nil
}

// Update applies the non-nil fields of req. All fields are validated before the store is touched.
func (s *TaskService) Update(ctx context.Context, id, owner uuid.UUID, req UpdateTaskRequest) (*store.Task, error) {
	var description string
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, apperror.NewValidationError("description is required", nil)
		}
	}

	task, err := s.store.GetTask(ctx, id, owner)
	if err != nil {
		return nil, translate(err, "failed to get task")
	}

	if req.Description != nil {
		task.Description = description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, translate(err, "failed to update task")
	}
	return task, nil
}

// Delete removes one task of owner and returns it.
func (s *TaskService) Delete(ctx context.Context, id, owner uuid.UUID) (*store.Task, error) {
	task, err := s.store.DeleteTask(ctx, id, owner)
	if err != nil {
		return nil, translate(err, "failed to delete task")
	}
	return task, nil
}

func translate(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperror.NewNotFoundError(notFoundMessage, err)
	}
	return apperror.NewDatabaseError(msg, err)
}
