// Package access enforces owner-only access to expense records.
//
// Every operation takes the request's principal explicitly. Ownership is
// re-read from the store on each call and compared against the principal's
// current user record; nothing is cached between requests.
//
// Update and Delete run their checks in a fixed order:
//
//  1. parse the identifier (storage.ErrInvalidIdentifier), without store access
//  2. load the expense (storage.ErrNotFound)
//  3. resolve the principal to a user (ErrUnauthenticated)
//  4. compare owners (ErrForbidden)
//
// so a missing record is never reported as forbidden, and no write happens
// unless every check passed.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/expensetracker/internal/auth"
	"github.com/mmynk/expensetracker/internal/models"
	"github.com/mmynk/expensetracker/internal/storage"
)

var (
	// ErrUnauthenticated means the principal no longer maps to a known user.
	ErrUnauthenticated = errors.New("principal does not match a known user")

	// ErrForbidden means the principal is known but does not own the expense.
	ErrForbidden = errors.New("expense belongs to another user")

	// ErrInvalidExpense means the submitted expense breaks a data invariant.
	ErrInvalidExpense = errors.New("invalid expense")
)

// Operation names used in logs and decision metrics.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// DecisionRecorder observes the outcome of every guard operation.
type DecisionRecorder interface {
	RecordDecision(op string, err error)
}

// Guard checks expense ownership before delegating to the stores.
type Guard struct {
	users    storage.UserStore
	expenses storage.ExpenseStore
	recorder DecisionRecorder
	logger   *slog.Logger
}

// NewGuard creates a Guard. recorder may be nil.
func NewGuard(users storage.UserStore, expenses storage.ExpenseStore, recorder DecisionRecorder, logger *slog.Logger) *Guard {
	return &Guard{
		users:    users,
		expenses: expenses,
		recorder: recorder,
		logger:   logger,
	}
}

// List returns every expense owned by the principal.
func (g *Guard) List(ctx context.Context, p auth.Principal) (expenses []models.Expense, err error) {
	defer func() { g.record(OpList, p, "", err) }()

	user, err := g.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	return g.expenses.ListExpensesByOwner(ctx, user.ID)
}

// Create stores input as a new expense owned by the principal.
// Any OwnerID on input is ignored.
func (g *Guard) Create(ctx context.Context, p auth.Principal, input models.Expense) (_ *models.Expense, err error) {
	defer func() { g.record(OpCreate, p, "", err) }()

	user, err := g.resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := validate(input); err != nil {
		return nil, err
	}

	expense := &models.Expense{OwnerID: user.ID}
	expense.ApplyMutable(input)

	if err := g.expenses.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Update replaces title, amount, category and date of the expense named by
// rawID with the values in patch. Every mutable field is overwritten, including
// with zero values.
func (g *Guard) Update(ctx context.Context, p auth.Principal, rawID string, patch models.Expense) (_ *models.Expense, err error) {
	defer func() { g.record(OpUpdate, p, rawID, err) }()

	existing, err := g.authorize(ctx, p, rawID)
	if err != nil {
		return nil, err
	}
	if err := validate(patch); err != nil {
		return nil, err
	}

	existing.ApplyMutable(patch)
	if err := g.expenses.UpdateExpense(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the expense named by rawID.
func (g *Guard) Delete(ctx context.Context, p auth.Principal, rawID string) (err error) {
	defer func() { g.record(OpDelete, p, rawID, err) }()

	existing, err := g.authorize(ctx, p, rawID)
	if err != nil {
		return err
	}

	return g.expenses.DeleteExpense(ctx, existing.ID)
}

// authorize runs parse, load, resolve and owner comparison, in that order.
func (g *Guard) authorize(ctx context.Context, p auth.Principal, rawID string) (*models.Expense, error) {
	id, err := g.expenses.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	existing, err := g.expenses.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := g.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	if existing.OwnerID != user.ID {
		return nil, ErrForbidden
	}
	return existing, nil
}

// resolve maps the principal to the current user record.
func (g *Guard) resolve(ctx context.Context, p auth.Principal) (*models.User, error) {
	if p.UserID == "" {
		return nil, ErrUnauthenticated
	}

	user, err := g.users.GetUserByID(ctx, p.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principal: %w", err)
	}
	return user, nil
}

func validate(e models.Expense) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidExpense)
	}
	return nil
}

func (g *Guard) record(op string, p auth.Principal, rawID string, err error) {
	if g.recorder != nil {
		g.recorder.RecordDecision(op, err)
	}
	if err == nil {
		return
	}
	g.logger.Debug("Expense access denied or failed",
		"op", op,
		"username", p.Username,
		"expense_id", rawID,
		"error", err,
	)
}
