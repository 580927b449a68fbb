package api

import (
	"log"
	"strings"

	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/task"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API. They route requests to
// the auth and task ports and render the response envelope; status-code
// selection is the only logic that lives here.
type Handlers struct {
	authPort auth.AuthPort
	taskPort task.TaskPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, taskPort task.TaskPort) *Handlers {
	return &Handlers{
		authPort: authPort,
		taskPort: taskPort,
	}
}

// Register handles POST /api/auth/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	if violations := Validate(c.Body(), registerRules); violations != nil {
		return c.Status(fiber.StatusBadRequest).JSON(Envelope{
			Success: false,
			Errors:  violations,
		})
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.authPort.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Success: true,
		Data:    user,
	})
}

// Login handles POST /api/auth/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if violations := Validate(c.Body(), loginRules); violations != nil {
		return c.Status(fiber.StatusBadRequest).JSON(Envelope{
			Success: false,
			Errors:  violations,
		})
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	token, err := h.authPort.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success: true,
		Token:   token,
	})
}

// ListUsers handles GET /api/auth/users.
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.authPort.ListUsers(c.UserContext())
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success: true,
		Data:    users,
	})
}

// CreateTask handles POST /api/tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	if violations := Validate(c.Body(), createTaskRules); violations != nil {
		return c.Status(fiber.StatusBadRequest).JSON(Envelope{
			Success: false,
			Errors:  violations,
		})
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	created, err := h.taskPort.Create(c.UserContext(), req.Title, req.Description, req.Completed)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Success: true,
		Data:    created,
	})
}

// ListTasks handles GET /api/tasks with an optional status query filter.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.taskPort.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success: true,
		Data:    tasks,
	})
}

// GetTask handles GET /api/tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	found, err := h.taskPort.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success: true,
		Data:    found,
	})
}

// UpdateTask handles PUT /api/tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	if violations := Validate(c.Body(), updateTaskRules); violations != nil {
		return c.Status(fiber.StatusBadRequest).JSON(Envelope{
			Success: false,
			Errors:  violations,
		})
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.taskPort.Update(c.UserContext(), c.Params("id"), req.Title, req.Description, req.Completed)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success: true,
		Data:    updated,
	})
}

// DeleteTask handles DELETE /api/tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	if err := h.taskPort.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success: true,
		Message: "Task deleted successfully",
	})
}

// mapServiceError is the single place where service errors become HTTP
// status codes. Errors cross the service container as strings, so known
// messages are matched; anything unrecognized becomes a 500 with the
// detail logged server-side only.
func (h *Handlers) mapServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, auth.ErrInvalidCredentials.Error()):
		return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
			Success: false,
			Message: "Invalid credentials",
		})
	case strings.Contains(errStr, auth.ErrUserExists.Error()):
		return c.Status(fiber.StatusConflict).JSON(Envelope{
			Success: false,
			Message: "Email already registered",
		})
	case strings.Contains(errStr, auth.ErrMissingCredentials.Error()):
		return badRequest(c, "Email and password are required")
	case strings.Contains(errStr, auth.ErrInvalidEmail.Error()):
		return badRequest(c, "Must be a valid email")
	case strings.Contains(errStr, auth.ErrPasswordTooLong.Error()):
		return badRequest(c, "Password must be at most 72 characters")
	case strings.Contains(errStr, task.ErrNotFound.Error()):
		return c.Status(fiber.StatusNotFound).JSON(Envelope{
			Success: false,
			Message: "Task not found",
		})
	case strings.Contains(errStr, task.ErrTitleRequired.Error()):
		return badRequest(c, "Title is required")
	case strings.Contains(errStr, task.ErrTitleEmpty.Error()):
		return badRequest(c, "Title cannot be empty if provided")
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(Envelope{
			Success: false,
			Message: "Internal Server Error",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Message: message,
	})
}
