package task

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the interface other modules use to reach task
// functionality through the service container.
type TaskPort interface {
	Create(ctx context.Context, title, description string, completed *bool) (*TaskRecord, error)
	Get(ctx context.Context, id string) (*TaskRecord, error)
	List(ctx context.Context, status string) ([]TaskRecord, error)
	Update(ctx context.Context, id string, title, description *string, completed *bool) (*TaskRecord, error)
	Delete(ctx context.Context, id string) error
}

// TaskAdapter implements TaskPort using the service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{
		container: container,
	}
}

// Create creates a new task.
func (a *TaskAdapter) Create(ctx context.Context, title, description string, completed *bool) (*TaskRecord, error) {
	req := CreateTaskRequest{Title: title, Description: description, Completed: completed}
	var resp CreateTaskResponse

	if err := call(a, ctx, "create", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// Get retrieves a task by ID.
func (a *TaskAdapter) Get(ctx context.Context, id string) (*TaskRecord, error) {
	req := GetTaskRequest{ID: id}
	var resp GetTaskResponse

	if err := call(a, ctx, "get", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// List returns tasks, optionally filtered by status.
func (a *TaskAdapter) List(ctx context.Context, status string) ([]TaskRecord, error) {
	req := ListTasksRequest{Status: status}
	var resp ListTasksResponse

	if err := call(a, ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Update applies a partial update to a task.
func (a *TaskAdapter) Update(ctx context.Context, id string, title, description *string, completed *bool) (*TaskRecord, error) {
	req := UpdateTaskRequest{ID: id, Title: title, Description: description, Completed: completed}
	var resp UpdateTaskResponse

	if err := call(a, ctx, "update", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// Delete removes a task by ID.
func (a *TaskAdapter) Delete(ctx context.Context, id string) error {
	req := DeleteTaskRequest{ID: id}
	var resp DeleteTaskResponse

	return call(a, ctx, "delete", &req, &resp)
}

func call[T1 any, T2 any](a *TaskAdapter, ctx context.Context, service string, req *T1, resp *T2) error {
	return helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	)
}
