package tasks

// Fields a task update may touch.
var updatableFields = []string{"description", "completed"}

// CreateTaskRequest is the body of POST /tasks. Fields other than these,
// including any attempt to set the owner, are ignored.
type CreateTaskRequest struct {
	Description string `json:"description" validate:"required" example:"Buy groceries"`
	Completed   bool   `json:"completed" example:"false"`
}

// UpdateTaskRequest is the body of PATCH /tasks/{id}. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Description *string `json:"description,omitempty" example:"Buy groceries and milk"`
	Completed   *bool   `json:"completed,omitempty" example:"true"`
}
