package dto

import "github.com/spec-kit/recruitment-portal/internal/domain"

// LoginRequest payload for signing in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse describes the caller's current identity.
type SessionResponse struct {
	Authenticated bool        `json:"authenticated"`
	Role          domain.Role `json:"role,omitempty"`
	PersonID      int64       `json:"personId,omitempty"`
}

// RegisterRequest payload for creating an applicant account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Pnr      string `json:"pnr"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}
