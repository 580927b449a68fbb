package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	domain "github.com/example/task-manager-api/domain/user"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/task"
	"github.com/gofiber/fiber/v2"
)

// mockAuthPort is a configurable AuthPort for handler and middleware tests.
type mockAuthPort struct {
	registerFn      func(ctx context.Context, email, password string) (*auth.UserRecord, error)
	loginFn         func(ctx context.Context, email, password string) (string, error)
	listUsersFn     func(ctx context.Context) ([]auth.UserRecord, error)
	validateTokenFn func(ctx context.Context, token string) (*domain.Claims, error)
}

func (m *mockAuthPort) Register(ctx context.Context, email, password string) (*auth.UserRecord, error) {
	return m.registerFn(ctx, email, password)
}

func (m *mockAuthPort) Login(ctx context.Context, email, password string) (string, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthPort) ListUsers(ctx context.Context) ([]auth.UserRecord, error) {
	return m.listUsersFn(ctx)
}

func (m *mockAuthPort) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	return m.validateTokenFn(ctx, token)
}

// mockTaskPort is a configurable TaskPort for handler tests.
type mockTaskPort struct {
	createFn func(ctx context.Context, title, description string, completed *bool) (*task.TaskRecord, error)
	getFn    func(ctx context.Context, id string) (*task.TaskRecord, error)
	listFn   func(ctx context.Context, status string) ([]task.TaskRecord, error)
	updateFn func(ctx context.Context, id string, title, description *string, completed *bool) (*task.TaskRecord, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockTaskPort) Create(ctx context.Context, title, description string, completed *bool) (*task.TaskRecord, error) {
	return m.createFn(ctx, title, description, completed)
}

func (m *mockTaskPort) Get(ctx context.Context, id string) (*task.TaskRecord, error) {
	return m.getFn(ctx, id)
}

func (m *mockTaskPort) List(ctx context.Context, status string) ([]task.TaskRecord, error) {
	return m.listFn(ctx, status)
}

func (m *mockTaskPort) Update(ctx context.Context, id string, title, description *string, completed *bool) (*task.TaskRecord, error) {
	return m.updateFn(ctx, id, title, description, completed)
}

func (m *mockTaskPort) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// allowAllAuth is a token validator that accepts any token.
func allowAllAuth() *mockAuthPort {
	return &mockAuthPort{
		validateTokenFn: func(_ context.Context, _ string) (*domain.Claims, error) {
			return &domain.Claims{UserID: "user-1", Email: "alice@example.com"}, nil
		},
	}
}

// newTestApp builds a Fiber app with the full route table wired to the
// given ports, matching the production configuration minus middleware.
func newTestApp(authPort auth.AuthPort, taskPort task.TaskPort) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	registerRoutes(app, authPort, taskPort)
	return app
}

// doJSON performs a request with an optional JSON body and decodes the
// envelope from the response.
func doJSON(t *testing.T, app *fiber.App, method, target, body, token string) (int, Envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return resp.StatusCode, envelope
}

// rawBody performs a request and returns the raw response body, for tests
// that compare bodies byte for byte.
func rawBody(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp.StatusCode, string(data)
}
