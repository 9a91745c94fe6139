package model

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,strongpassword"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,strongpassword"`
}

// UpdateInfoRequest fields are optional; nil keeps the stored value.
type UpdateInfoRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" binding:"omitempty,email,max=254"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type UserEnvelope struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// UserResponse is the public projection of User. It never carries the
// password hash or the refresh token.
type UserResponse struct {
	ID      int64  `json:"id"`
	LoginID string `json:"loginId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// AuthUser is the identity attached to a request by the auth middleware.
type AuthUser struct {
	ID      int64
	LoginID string
}

type User struct {
	ID           int64
	LoginID      string
	Name         string
	Email        string
	PasswordHash string  `json:"-"`
	RefreshToken *string `json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:      u.ID,
		LoginID: u.LoginID,
		Name:    u.Name,
		Email:   u.Email,
	}
}
