package domain

// Principal is the resolved identity attached to an authenticated request.
// It lives only for the duration of the request and is passed explicitly
// through the gin context rather than through any ambient global state.
type Principal struct {
	ID         int64
	Email      string
	Password   *string
	Role       Role
	Attributes map[string]any
}

// NewPrincipal builds a request principal from a user record
func NewPrincipal(user *User) *Principal {
	return &Principal{
		ID:         user.ID,
		Email:      user.Email,
		Password:   user.Password,
		Role:       user.Role,
		Attributes: map[string]any{},
	}
}
