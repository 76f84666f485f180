package api

import "github.com/mmynk/expensetracker/internal/models"

// User is the outward representation of a user account.
// It has no credential field.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}

// NewUser builds the view of u.
func NewUser(u *models.User) *User {
	return &User{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	User *User `json:"user"`
}

// LoginRequest carries a username or an email in Identifier.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserByUsernameRequest struct {
	Username string `json:"username"`
}

type GetUserByEmailRequest struct {
	Email string `json:"email"`
}

type GetUserResponse struct {
	User *User `json:"user"`
}
