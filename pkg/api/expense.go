package api

import (
	"github.com/mmynk/expensetracker/internal/calculator"
	"github.com/mmynk/expensetracker/internal/models"
)

// Expense is the outward representation of an expense.
type Expense struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	Date      string  `json:"date"`
	UserID    string  `json:"userId"`
	CreatedAt int64   `json:"createdAt"`
}

// NewExpense builds the view of e.
func NewExpense(e *models.Expense) *Expense {
	return &Expense{
		ID:        e.ID.String(),
		Title:     e.Title,
		Amount:    e.Amount,
		Category:  e.Category,
		Date:      e.Date,
		UserID:    e.OwnerID.String(),
		CreatedAt: e.CreatedAt,
	}
}

// NewExpenses builds views for a list of expenses. The result is never nil.
func NewExpenses(expenses []models.Expense) []*Expense {
	views := make([]*Expense, len(expenses))
	for i := range expenses {
		views[i] = NewExpense(&expenses[i])
	}
	return views
}

// ExpenseInput is the client-supplied body of an expense.
// UserID is accepted for compatibility with older clients; the server
// always replaces it with the caller's own ID.
type ExpenseInput struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	UserID   string  `json:"userId,omitempty"`
}

// Model converts the input into a domain expense without an ID.
func (in *ExpenseInput) Model() models.Expense {
	if in == nil {
		return models.Expense{}
	}
	return models.Expense{
		Title:    in.Title,
		Amount:   in.Amount,
		Category: in.Category,
		Date:     in.Date,
		OwnerID:  models.ID(in.UserID),
	}
}

type ListExpensesRequest struct{}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type CreateExpenseRequest struct {
	Expense *ExpenseInput `json:"expense"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	ID      string        `json:"id"`
	Expense *ExpenseInput `json:"expense"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ID string `json:"id"`
}

type DeleteExpenseResponse struct{}

type SummarizeExpensesRequest struct{}

// CategoryTotal is the aggregate of one expense category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"`
}

type SummarizeExpensesResponse struct {
	Total      float64          `json:"total"`
	Count      int              `json:"count"`
	Categories []*CategoryTotal `json:"categories"`
}

// NewSummary builds the response for a computed summary.
func NewSummary(s calculator.Summary) *SummarizeExpensesResponse {
	resp := &SummarizeExpensesResponse{
		Total:      s.Total,
		Count:      s.Count,
		Categories: make([]*CategoryTotal, len(s.Categories)),
	}
	for i, c := range s.Categories {
		resp.Categories[i] = &CategoryTotal{Category: c.Category, Total: c.Total, Count: c.Count, Share: c.Share}
	}
	return resp
}
