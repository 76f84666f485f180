package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/expensetracker/internal/access"
	"github.com/mmynk/expensetracker/internal/calculator"
	"github.com/mmynk/expensetracker/pkg/api"
	"github.com/mmynk/expensetracker/pkg/api/apiconnect"
)

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the Connect ExpenseService on top of the access guard.
type ExpenseService struct {
	guard  *access.Guard
	logger *slog.Logger
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(guard *access.Guard, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{guard: guard, logger: logger}
}

// ListExpenses returns every expense owned by the caller.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	principal, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.guard.List(ctx, principal)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("ListExpenses successful", "user_id", principal.UserID, "count", len(expenses))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: api.NewExpenses(expenses)}), nil
}

// CreateExpense records a new expense owned by the caller.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	principal, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := s.guard.Create(ctx, principal, req.Msg.Expense.Model())
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense created", "expense_id", expense.ID, "user_id", expense.OwnerID)
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: api.NewExpense(expense)}), nil
}

// UpdateExpense replaces the editable fields of one of the caller's expenses.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	principal, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := s.guard.Update(ctx, principal, req.Msg.ID, req.Msg.Expense.Model())
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense updated", "expense_id", expense.ID, "user_id", expense.OwnerID)
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: api.NewExpense(expense)}), nil
}

// DeleteExpense removes one of the caller's expenses.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	principal, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Delete(ctx, principal, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense deleted", "expense_id", req.Msg.ID, "user_id", principal.UserID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// SummarizeExpenses totals the caller's expenses per category.
func (s *ExpenseService) SummarizeExpenses(ctx context.Context, req *connect.Request[api.SummarizeExpensesRequest]) (*connect.Response[api.SummarizeExpensesResponse], error) {
	principal, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.guard.List(ctx, principal)
	if err != nil {
		return nil, toConnectError(err)
	}

	summary := calculator.Summarize(expenses)
	s.logger.Debug("Expenses summarized", "user_id", principal.UserID, "count", summary.Count, "total", summary.Total)
	return connect.NewResponse(api.NewSummary(summary)), nil
}
