package dto

import "github.com/prismedia/news-server/internal/domain"

// SignUpRequest represents a local signup request
type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignUpResponse represents a successful signup
type SignUpResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// UserResponse represents the current authenticated user
type UserResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	ImageURL *string `json:"imageUrl"`
	Role     string  `json:"role"`
}

// UserResponseFromUser maps a user record to its API shape
func UserResponseFromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		ImageURL: user.ImageURL,
		Role:     string(user.Role),
	}
}

// AuthInfoResponse describes the supported authentication methods
type AuthInfoResponse struct {
	Message     string `json:"message"`
	LoginURL    string `json:"loginUrl"`
	CallbackURL string `json:"callbackUrl"`
}

// MessageResponse is a plain success message
type MessageResponse struct {
	Message string `json:"message"`
}
