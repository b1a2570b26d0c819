package dto

import (
	"time"

	"github.com/yigit/projecthub/internal/app/models"
)

// RegisterRequest is a student self-registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Ayşe Yılmaz"`
	Email    string `json:"email" binding:"required,email" example:"ayse@uni.edu"`
	Phone    string `json:"phone" binding:"required" example:"5551234567"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// LoginRequest authenticates a student, faculty member or admin
type LoginRequest struct {
	Email    string      `json:"email" binding:"required,email" example:"ayse@uni.edu"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role" binding:"required,oneof=student faculty admin" example:"student"`
}

// RefreshTokenRequest carries an opaque refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse is the public identity of the logged in account
type UserResponse struct {
	ID    int64       `json:"id" example:"1"`
	Name  string      `json:"name" example:"Ayşe Yılmaz"`
	Email string      `json:"email" example:"ayse@uni.edu"`
	Role  models.Role `json:"role" example:"student"`
}

// TokenResponse is returned by login, register and refresh
type TokenResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	TokenType    string        `json:"tokenType" example:"Bearer"`
	ExpiresIn    int           `json:"expiresIn" example:"86400"`
	User         *UserResponse `json:"user,omitempty"`
}

// ProfileResponse is the caller's full profile
type ProfileResponse struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	Phone        *string     `json:"phone,omitempty"`
	Description  *string     `json:"description,omitempty"`
	Skills       []string    `json:"skills"`
	DepartmentID *int64      `json:"departmentId,omitempty"`
}

// UpdateProfileRequest edits the caller's profile
type UpdateProfileRequest struct {
	Name        string   `json:"name" binding:"required"`
	Phone       string   `json:"phone"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// CreateResetLinkRequest asks for a password reset link for one account
type CreateResetLinkRequest struct {
	UserID   int64       `json:"userId" binding:"required,gt=0"`
	UserRole models.Role `json:"userRole" binding:"required,oneof=student faculty admin"`
}

// ResetLinkResponse is the generated reset link
type ResetLinkResponse struct {
	Token     string    `json:"token"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expiresAt"`
	Emailed   bool      `json:"emailed"`
}

// ResetTokenStatusResponse reports a valid reset token's owner
type ResetTokenStatusResponse struct {
	Valid    bool        `json:"valid"`
	UserID   int64       `json:"userId"`
	UserRole models.Role `json:"userRole"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}
