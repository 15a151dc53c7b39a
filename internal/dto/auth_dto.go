package dto

import "time"

type RequestOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required,len=6"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required,max=100"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	XP        int     `json:"xp"`
	FullName  string  `json:"full_name,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

type UpdateProfileInput struct {
	FullName  *string `json:"full_name" binding:"omitempty,max=100"`
	FirstName *string `json:"first_name" binding:"omitempty,max=50"`
	Bio       *string `json:"bio" binding:"omitempty,max=2000"`
}

type UpdateUserRoleInput struct {
	Role string `json:"role" binding:"required,oneof=admin member"`
}
