package domain

import "time"

// AuthProvider identifies how a user account was created
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// Role is the authority granted to a user
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// User represents a user in the system.
// Password is nil for accounts created through an OAuth2 provider.
type User struct {
	ID            int64        `json:"id" db:"id"`
	Name          string       `json:"name" db:"name"`
	Email         string       `json:"email" db:"email"`
	ImageURL      *string      `json:"imageUrl" db:"image_url"`
	EmailVerified bool         `json:"emailVerified" db:"email_verified"`
	Password      *string      `json:"-" db:"password"`
	Provider      AuthProvider `json:"provider" db:"provider"`
	ProviderID    *string      `json:"-" db:"provider_id"`
	Role          Role         `json:"role" db:"role"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
}
