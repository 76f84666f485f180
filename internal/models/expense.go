package models

// Expense represents a single expense record belonging to one user.
type Expense struct {
	// ID is the store-assigned identifier for the expense.
	ID ID

	// Title is a short description of the expense. Must not be empty.
	Title string

	// Amount is the amount spent. No currency is modeled.
	Amount float64

	// Category is free text chosen by the user (e.g., "food", "rent").
	Category string

	// Date is the date of the expense as supplied by the client.
	// The format is not validated.
	Date string

	// OwnerID is the ID of the user who owns this expense.
	// Set once at creation and never changed.
	OwnerID ID

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ApplyMutable copies the user-editable fields from src onto e.
// ID, OwnerID and CreatedAt are left untouched.
func (e *Expense) ApplyMutable(src Expense) {
	e.Title = src.Title
	e.Amount = src.Amount
	e.Category = src.Category
	e.Date = src.Date
}
