package dto

import "github.com/hongminglow/eventos-be/internal/models"

// SignupRequest is the body of POST /signup. Name, phone and role seed the
// profile row.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse echoes the access token only when the deployment allows it.
type LoginResponse struct {
	Message string          `json:"message"`
	User    models.Identity `json:"user"`
	Token   string          `json:"token,omitempty"`
}

// ForgotPasswordRequest is the body of POST /forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// UpdateUserRequest is the body of PUT /users/{id}. Omitted fields keep
// their stored value.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Role  *string `json:"role"`
}

// UploadResponse carries the public URL of a relayed image.
type UploadResponse struct {
	ThumbURL string `json:"thumbUrl"`
}
