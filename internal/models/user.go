package models

// User represents a registered user account.
type User struct {
	// ID is the store-assigned identifier for the user.
	ID ID

	// Username is the login name (unique across all users).
	Username string

	// Email is the user's email address (unique across all users).
	// It can be used in place of the username at login.
	Email string

	// PasswordHash is the hashed credential. It never leaves the process.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64
}
