package auth

import "time"

// UserRecord is the view of a user exposed by auth services.
// It never carries the password hash.
type UserRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse represents a user registration response.
type RegisterResponse struct {
	User UserRecord `json:"user"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed bearer token issued on login.
type LoginResponse struct {
	Token string `json:"token"`
}

// ListUsersRequest represents a request for all registered users.
type ListUsersRequest struct{}

// ListUsersResponse represents the list of registered users.
type ListUsersResponse struct {
	Users []UserRecord `json:"users"`
	Total int          `json:"total"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Error  string `json:"error,omitempty"`
}

// GetUserRequest represents a get user request.
type GetUserRequest struct {
	UserID string `json:"userId"`
}

// GetUserResponse represents a get user response.
type GetUserResponse struct {
	User UserRecord `json:"user"`
}
