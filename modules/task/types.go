package task

import "time"

// TaskRecord is the view of a task exposed by task services.
type TaskRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   *bool  `json:"completed,omitempty"`
}

// CreateTaskResponse is the response after creating a task.
type CreateTaskResponse struct {
	Task TaskRecord `json:"task"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	ID string `json:"id"`
}

// GetTaskResponse is the response for getting a task.
type GetTaskResponse struct {
	Task TaskRecord `json:"task"`
}

// ListTasksRequest is the request for listing tasks. Status is "completed",
// "pending", or empty for no filter.
type ListTasksRequest struct {
	Status string `json:"status,omitempty"`
}

// ListTasksResponse is the response containing a list of tasks.
type ListTasksResponse struct {
	Tasks []TaskRecord `json:"tasks"`
	Total int          `json:"total"`
}

// UpdateTaskRequest is the request for a partial task update.
type UpdateTaskRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// UpdateTaskResponse is the response after updating a task.
type UpdateTaskResponse struct {
	Task TaskRecord `json:"task"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID string `json:"id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
