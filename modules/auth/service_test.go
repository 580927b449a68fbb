package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func setupTestService(t *testing.T) *AuthService {
	t.Helper()

	repo := NewUserRepository(setupTestDB(t))
	hasher := NewPasswordHasher()
	jwt := NewJWTManager(JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: time.Hour,
		Issuer:        "test-issuer",
	})
	return NewAuthService(repo, hasher, jwt)
}

func TestRegister(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.ID == "" {
		t.Error("expected generated user ID")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", user.Email)
	}
	if user.PasswordHash == "123456" {
		t.Error("password must be stored hashed, not as plaintext")
	}
}

func TestRegisterValidation(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	long := make([]byte, 80)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"missing email", "", "123456", ErrMissingCredentials},
		{"missing password", "alice@example.com", "", ErrMissingCredentials},
		{"invalid email", "not-an-email", "123456", ErrInvalidEmail},
		{"password too long", "alice@example.com", string(long), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice@example.com", "123456"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := service.Register(ctx, "alice@example.com", "different")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}

	users, err := service.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user after duplicate registration, got %d", len(users))
	}
}

func TestLogin(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, err := service.Login(ctx, "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := service.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("expected UserID %q, got %q", registered.ID, claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected Email 'alice@example.com', got %q", claims.Email)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice@example.com", "123456"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, unknownErr := service.Login(ctx, "nobody@example.com", "123456")
	_, wrongErr := service.Login(ctx, "alice@example.com", "wrong-password")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("unknown-email and wrong-password errors differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	_, err := service.Login(ctx, "", "123456")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service := setupTestService(t)

	_, err := service.ValidateToken(context.Background(), "not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGetUser(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	found, err := service.GetUser(ctx, registered.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if found.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", found.Email)
	}

	_, err = service.GetUser(ctx, "missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
