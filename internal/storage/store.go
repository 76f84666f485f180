// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/expensetracker/internal/models"
)

var (
	// ErrNotFound indicates a well-formed identifier that matches no record.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidIdentifier indicates an identifier string the store cannot parse.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrDuplicateIdentity indicates a username or email that is already taken.
	ErrDuplicateIdentity = errors.New("username or email already registered")
)

// IDParser converts the external string form of an identifier into a models.ID.
// It never touches the database.
type IDParser interface {
	// ParseID returns ErrInvalidIdentifier if raw is not a well-formed identifier.
	ParseID(raw string) (models.ID, error)
}

// UserStore defines user persistence operations.
type UserStore interface {
	IDParser

	// CreateUser persists a new user. user.ID and user.CreatedAt are populated by the store.
	// Returns ErrDuplicateIdentity if the username or email already exists; nothing is written in that case.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID returns ErrNotFound if no user has the given ID.
	GetUserByID(ctx context.Context, id models.ID) (*models.User, error)

	// GetUserByUsername returns ErrNotFound if no user has the given username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail returns ErrNotFound if no user has the given email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// ExpenseStore defines expense persistence operations.
type ExpenseStore interface {
	IDParser

	// CreateExpense persists a new expense. expense.ID and expense.CreatedAt are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense returns ErrNotFound if no expense has the given ID.
	GetExpense(ctx context.Context, id models.ID) (*models.Expense, error)

	// ListExpensesByOwner returns the owner's expenses in insertion order.
	ListExpensesByOwner(ctx context.Context, ownerID models.ID) ([]models.Expense, error)

	// UpdateExpense replaces title, amount, category and date of an existing expense.
	// ID, owner and creation time are never written. Returns ErrNotFound if the expense is gone.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense returns ErrNotFound if no expense has the given ID.
	DeleteExpense(ctx context.Context, id models.ID) error
}

// Store combines every storage capability behind one backend.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	ExpenseStore

	// Close releases any resources held by the store.
	Close() error
}
