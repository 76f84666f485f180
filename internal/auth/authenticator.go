package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/expensetracker/internal/models"
	"github.com/mmynk/expensetracker/internal/storage"
)

// ErrAuthenticationFailed covers both an unknown identifier and a wrong
// credential, so callers cannot probe which accounts exist.
var ErrAuthenticationFailed = errors.New("invalid username, email or password")

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID   models.ID
	Username string
}

// PrincipalFor returns the principal representing user.
func PrincipalFor(user *models.User) Principal {
	return Principal{UserID: user.ID, Username: user.Username}
}

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account with the given username, email and credential.
	// Returns storage.ErrDuplicateIdentity if the username or email is taken.
	Register(ctx context.Context, username, email, credential string) (*models.User, error)

	// Authenticate verifies an identifier (username or email) and credential.
	// Returns ErrAuthenticationFailed on any mismatch.
	Authenticate(ctx context.Context, identifier, credential string) (Principal, error)
}

// Resolver implements Authenticator on top of a user store and a credential hasher.
type Resolver struct {
	users  storage.UserStore
	hasher Hasher
}

var _ Authenticator = (*Resolver)(nil)

// NewResolver creates a new password-based authentication resolver.
func NewResolver(users storage.UserStore, hasher Hasher) *Resolver {
	return &Resolver{
		users:  users,
		hasher: hasher,
	}
}

// Register hashes the credential and stores a new user.
// Input is not validated beyond the store's uniqueness rules.
func (r *Resolver) Register(ctx context.Context, username, email, credential string) (*models.User, error) {
	hashed, err := r.hasher.Hash(credential)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := r.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate tries identifier as a username first, then as an email.
func (r *Resolver) Authenticate(ctx context.Context, identifier, credential string) (Principal, error) {
	user, err := r.lookup(ctx, identifier)
	if err != nil {
		return Principal{}, err
	}

	if !r.hasher.Verify(credential, user.PasswordHash) {
		return Principal{}, ErrAuthenticationFailed
	}

	return PrincipalFor(user), nil
}

func (r *Resolver) lookup(ctx context.Context, identifier string) (*models.User, error) {
	user, err := r.users.GetUserByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user, err = r.users.GetUserByEmail(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return nil, ErrAuthenticationFailed
}
