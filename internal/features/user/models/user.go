package models

import "time"

// Roles a user can hold. RoleUser is the default for new registrations.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User is the stored form of an account, including credential state. It is
// marshalled as-is into the document store and must never be rendered to a
// caller; use ToResponse for that.
type User struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Age              int        `json:"age"`
	PasswordHash     string     `json:"password"`
	Role             string     `json:"role"`
	IsActive         bool       `json:"isActive"`
	ResetOtp         string     `json:"resetOtp"`
	ResetOtpExpireAt int64      `json:"resetOtpExpireAt"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// UserResponse is the public view of a user.
// @Description Public user fields
type UserResponse struct {
	ID        string     `json:"id" example:"8c2f9a7e-1b7c-4f2a-9d6e-3f1a2b3c4d5e"`
	Name      string     `json:"name" example:"Alice"`
	Email     string     `json:"email" example:"alice@example.com"`
	Phone     string     `json:"phone" example:"5551234567"`
	Age       int        `json:"age" example:"30"`
	Role      string     `json:"role" example:"user" enums:"user,moderator,admin"`
	IsActive  bool       `json:"isActive" example:"true"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ToResponse strips credential state from the stored form.
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Age:       u.Age,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthResponse pairs public user fields with a freshly issued token.
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}
