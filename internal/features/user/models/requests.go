package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" example:"Alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Phone    string `json:"phone" example:"5551234567"`
	Age      int    `json:"age" example:"30"`
	Password string `json:"password" example:"Secret1"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"Secret1"`
}

// UpdateProfileRequest carries the optional profile fields of PUT
// /auth/profile. Nil means "leave unchanged".
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Age   *int    `json:"age,omitempty"`
}

// RoleUpdate is the body of PUT /admin/users/:id/role.
type RoleUpdate struct {
	Role string `json:"role" example:"moderator" enums:"user,moderator,admin"`
}

// StatusUpdate is the body of PUT /admin/users/:id/status.
type StatusUpdate struct {
	IsActive *bool `json:"isActive"`
}

// ResetRequest is the body of POST /auth/password-reset/request.
type ResetRequest struct {
	Email string `json:"email" example:"alice@example.com"`
}

// ResetConfirm is the body of POST /auth/password-reset/reset.
type ResetConfirm struct {
	Email       string `json:"email" example:"alice@example.com"`
	Otp         string `json:"otp" example:"042137"`
	NewPassword string `json:"newPassword" example:"NewPass1"`
}
