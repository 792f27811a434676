package handler

import "github.com/minishop/store-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---
// Each mutating route has its own typed schema; validation runs before the
// handler touches the body, so handlers can assume the validated shape.
// Omitted booleans decode to their zero value (false).

type signupRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6"`
	// IsActive is accepted for wire compatibility but has no effect:
	// signup always opens a session, so the stored flag is set true.
	IsActive bool `json:"is_active"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    string `json:"email"     validate:"omitempty,email"`
	Password string `json:"password"  validate:"omitempty,min=6"`
}

// --- Response types ---

type sessionResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type logoutResponse struct {
	User    *domain.User `json:"user"`
	Message string       `json:"message"`
}

type updateUserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
